package services_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rgrams-coder/mmles/internal/auth"
	"github.com/rgrams-coder/mmles/internal/database/dbtest"
	"github.com/rgrams-coder/mmles/internal/email"
	"github.com/rgrams-coder/mmles/internal/events"
	"github.com/rgrams-coder/mmles/internal/models"
	"github.com/rgrams-coder/mmles/internal/payment/paymenttest"
	"github.com/rgrams-coder/mmles/internal/repositories"
	"github.com/rgrams-coder/mmles/internal/services"
	"github.com/rgrams-coder/mmles/internal/storage"
)

const testSecret = paymenttest.KeySecret

type env struct {
	db        *gorm.DB
	gateway   *paymenttest.Gateway
	mailer    *email.RecordingProvider
	publisher *events.RecordingPublisher
	tokens    *auth.TokenManager
	userRepo  repositories.UserRepository
	orderRepo repositories.PaymentOrderRepository

	auth        services.AuthService
	users       services.UserService
	payments    services.PaymentService
	submissions services.SubmissionService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		db:        dbtest.NewTestDB(t),
		gateway:   &paymenttest.Gateway{},
		mailer:    email.NewRecordingProvider(),
		publisher: &events.RecordingPublisher{},
		tokens:    auth.NewTokenManager("jwt-test-secret", time.Hour),
		userRepo:  repositories.NewUserRepository(),
		orderRepo: repositories.NewPaymentOrderRepository(),
	}
	e.build(t, e.userRepo)
	return e
}

// build wires the services over userRepo so tests can wrap the repository.
func (e *env) build(t *testing.T, userRepo repositories.UserRepository) {
	t.Helper()

	store, err := storage.NewLocalStorage(storage.Config{Type: "local", BasePath: t.TempDir()})
	require.NoError(t, err)

	hasher := &auth.PasswordHasher{Cost: 4}
	notifications := services.NewNotificationService(e.mailer, e.publisher)
	uploads := services.NewUploadService(store, &services.UploadConfig{
		MaxFileSize:  1024,
		AllowedTypes: services.GetDefaultUploadConfig().AllowedTypes,
	})

	e.auth = services.NewAuthService(userRepo, e.orderRepo, e.gateway, hasher, e.tokens, notifications)
	e.users = services.NewUserService(userRepo, hasher)
	e.payments = services.NewPaymentService(userRepo, e.orderRepo, e.gateway, "INR", notifications)
	e.submissions = services.NewSubmissionService(userRepo, repositories.NewSubmissionRepository(), uploads, notifications)
}

func (e *env) createUser(t *testing.T, username string, status models.MemberCategory) *models.User {
	t.Helper()
	return dbtest.CreateUser(t, e.db, &models.User{
		Username: username,
		Email:    username + "@example.com",
		Name:     "User " + username,
		Status:   status,
	}, "secret-pass")
}

// barrierRepo holds every caller of the registration pre-check until n callers have
// passed it, so all of them race into the insert.
type barrierRepo struct {
	repositories.UserRepository
	wg *sync.WaitGroup
}

func newBarrierRepo(inner repositories.UserRepository, n int) *barrierRepo {
	wg := &sync.WaitGroup{}
	wg.Add(n)
	return &barrierRepo{UserRepository: inner, wg: wg}
}

func (r *barrierRepo) ExistsByUsernameOrEmail(db *gorm.DB, username, email string) (bool, error) {
	exists, err := r.UserRepository.ExistsByUsernameOrEmail(db, username, email)
	r.wg.Done()
	r.wg.Wait()
	return exists, err
}

var errGatewayDown = errors.New("gateway down")

// staleOrderRepo answers the next `pending` lookups with the order as it was before
// payment, the view a transaction gets when a concurrent one commits after its read.
type staleOrderRepo struct {
	repositories.PaymentOrderRepository
	pending int
}

func (r *staleOrderRepo) FindByGatewayID(db *gorm.DB, gatewayOrderID string) (*models.PaymentOrder, error) {
	order, err := r.PaymentOrderRepository.FindByGatewayID(db, gatewayOrderID)
	if err != nil || r.pending == 0 {
		return order, err
	}
	r.pending--
	order.Status = models.OrderStatusCreated
	order.PaymentID = ""
	order.PaidAt = nil
	return order, nil
}

// useStaleOrders rewires the services over a staleOrderRepo.
func (e *env) useStaleOrders(t *testing.T) *staleOrderRepo {
	t.Helper()
	stale := &staleOrderRepo{PaymentOrderRepository: e.orderRepo}
	e.orderRepo = stale
	e.build(t, e.userRepo)
	return stale
}
