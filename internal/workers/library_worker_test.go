package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/mmles/internal/database/dbtest"
	"github.com/rgrams-coder/mmles/internal/models"
	"github.com/rgrams-coder/mmles/internal/repositories"
)

func TestLibraryPaymentWorker_RunOnce(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()

	stale := dbtest.CreateUser(t, db, &models.User{
		Username: "stale", Email: "stale@example.com", Status: models.CategoryStudents,
		LibraryPaymentStatus: models.LibraryPaymentPending,
	}, "pw")
	fresh := dbtest.CreateUser(t, db, &models.User{
		Username: "fresh", Email: "fresh@example.com", Status: models.CategoryStudents,
		LibraryPaymentStatus: models.LibraryPaymentPending,
	}, "pw")
	paid := dbtest.CreateUser(t, db, &models.User{
		Username: "paid", Email: "paid@example.com", Status: models.CategoryStudents,
		LibraryPaymentStatus: models.LibraryPaymentCompleted, HasLibraryAccess: true,
	}, "pw")

	old := time.Now().Add(-48 * time.Hour)
	for _, id := range []string{stale.ID, paid.ID} {
		require.NoError(t, db.Model(&models.User{}).Where("id = ?", id).UpdateColumn("updated_at", old).Error)
	}

	repo := repositories.NewUserRepository()
	w := NewLibraryPaymentWorker(db, repo, 24*time.Hour)

	n, err := w.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	status := func(id string) models.LibraryPaymentStatus {
		u, err := repo.FindByID(db, id)
		require.NoError(t, err)
		return u.LibraryPaymentStatus
	}
	assert.Equal(t, models.LibraryPaymentNone, status(stale.ID))
	assert.Equal(t, models.LibraryPaymentPending, status(fresh.ID))
	assert.Equal(t, models.LibraryPaymentCompleted, status(paid.ID))

	n, err = w.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLibraryPaymentWorker_StopsWithContext(t *testing.T) {
	w := NewLibraryPaymentWorker(dbtest.NewTestDB(t), repositories.NewUserRepository(), time.Hour)
	w.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	cancel()
}
