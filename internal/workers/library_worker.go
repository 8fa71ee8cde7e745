package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rgrams-coder/mmles/internal/logger"
	"github.com/rgrams-coder/mmles/internal/repositories"
)

const defaultSweepInterval = time.Hour

// LibraryPaymentWorker clears library checkouts that were opened but never verified,
// so the profile stops showing them as pending. The gateway orders stay; a late
// verification still grants access.
type LibraryPaymentWorker struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
}

func NewLibraryPaymentWorker(db *gorm.DB, userRepo repositories.UserRepository, ttl time.Duration) *LibraryPaymentWorker {
	return &LibraryPaymentWorker{
		db:       db,
		userRepo: userRepo,
		ttl:      ttl,
		interval: defaultSweepInterval,
		now:      time.Now,
	}
}

// Start runs the sweep every interval until ctx is done.
func (w *LibraryPaymentWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("Library payment worker stopped")
				return
			case <-ticker.C:
				if _, err := w.RunOnce(ctx); err != nil {
					logger.Error("Error resetting stale library payments", "error", err)
				}
			}
		}
	}()
}

// RunOnce performs a single sweep and returns how many users were reset.
func (w *LibraryPaymentWorker) RunOnce(ctx context.Context) (int64, error) {
	n, err := w.userRepo.ResetStaleLibraryPending(w.db.WithContext(ctx), w.now().Add(-w.ttl))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info("Reset stale library payments", "count", n)
	}
	return n, nil
}
