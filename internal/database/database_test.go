package database_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rgrams-coder/mmles/internal/database"
	"github.com/rgrams-coder/mmles/internal/database/dbtest"
	"github.com/rgrams-coder/mmles/internal/models"
)

func TestIsDuplicateKey_DriverErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"postgres", &pgconn.PgError{Code: "23505"}, true},
		{"postgres other", &pgconn.PgError{Code: "23503"}, false},
		{"mysql", &mysqldriver.MySQLError{Number: 1062}, true},
		{"wrapped", fmt.Errorf("insert: %w", &mysqldriver.MySQLError{Number: 1062}), true},
		{"sqlite text", errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)"), true},
		{"other", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, database.IsDuplicateKey(tc.err))
		})
	}
}

func TestUniqueIndexes_SQLite(t *testing.T) {
	db := dbtest.NewTestDB(t)

	dbtest.CreateUser(t, db, &models.User{Username: "alice", Email: "a@x.io"}, "p1")

	err := db.Create(&models.User{Username: "alice", Email: "other@x.io", PasswordHash: "h"}).Error
	require.Error(t, err)
	assert.True(t, database.IsDuplicateKey(err))

	err = db.Create(&models.User{Username: "bob", Email: "a@x.io", PasswordHash: "h"}).Error
	require.Error(t, err)
	assert.True(t, database.IsDuplicateKey(err))
}

func TestUniqueViolation_Postgres(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err = db.Create(&models.User{Username: "alice", Email: "a@x.io", PasswordHash: "h"}).Error

	require.Error(t, err)
	assert.True(t, database.IsDuplicateKey(err))
}

func TestDialector_Unsupported(t *testing.T) {
	_, err := database.Dialector("oracle", "dsn")
	assert.Error(t, err)
}
