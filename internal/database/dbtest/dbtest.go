// Package dbtest provides throwaway databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rgrams-coder/mmles/internal/database"
	"github.com/rgrams-coder/mmles/internal/models"
)

// NewTestDB opens a private in-memory SQLite database with every table migrated.
// Each call gets its own database, so tests can run in parallel.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.Options{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err, "open sqlite test database")
	require.NoError(t, database.AutoMigrate(db), "migrate test database")

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// CreateUser stores u with password hashed at the minimum bcrypt cost.
func CreateUser(t *testing.T, db *gorm.DB, u *models.User, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u.PasswordHash = string(hash)
	if u.PaymentStatus == "" {
		u.PaymentStatus = models.PaymentStatusCompleted
	}
	if u.LibraryPaymentStatus == "" {
		u.LibraryPaymentStatus = models.LibraryPaymentNone
	}

	require.NoError(t, db.Create(u).Error, "create user %s", u.Username)
	return u
}
