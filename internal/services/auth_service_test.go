package services_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/mmles/internal/events"
	"github.com/rgrams-coder/mmles/internal/models"
	"github.com/rgrams-coder/mmles/internal/payment"
	"github.com/rgrams-coder/mmles/internal/services/dto"
	"github.com/rgrams-coder/mmles/pkg/apperrors"
)

func registerRequest(username, mail, orderID, paymentID string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:  username,
		Email:     mail,
		Password:  "pw-" + username,
		Name:      "Name " + username,
		Phone:     "9999999999",
		Status:    models.CategoryStudents,
		OrderID:   orderID,
		PaymentID: paymentID,
		Signature: payment.Sign(testSecret, orderID, paymentID),
	}
}

func TestCheckAvailability(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.createUser(t, "alice", models.CategoryStudents)

	resp, err := e.auth.CheckAvailability(ctx, e.db, &dto.AvailabilityRequest{Username: "alice", Email: "new@example.com"})
	require.NoError(t, err)
	assert.False(t, resp.UsernameAvailable)
	assert.True(t, resp.EmailAvailable)

	resp, err = e.auth.CheckAvailability(ctx, e.db, &dto.AvailabilityRequest{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.True(t, resp.UsernameAvailable, "omitted username is reported available")
	assert.False(t, resp.EmailAvailable)
}

func TestRegister_Success(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	resp, err := e.auth.Register(ctx, e.db, registerRequest("alice", "alice@example.com", "order_1", "pay_1"))
	require.NoError(t, err)
	assert.Equal(t, "Registration successful", resp.Message)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, models.PaymentStatusCompleted, resp.User.PaymentStatus)
	assert.False(t, resp.User.HasLibraryAccess)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")

	stored, err := e.userRepo.FindByUsername(e.db, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "pw-alice", stored.PasswordHash)
	assert.Equal(t, "pay_1", stored.PaymentID)
	assert.Equal(t, models.LibraryPaymentNone, stored.LibraryPaymentStatus)

	assert.Len(t, e.publisher.OfType(events.UserRegistered), 1)
	require.Len(t, e.mailer.Messages(), 1)
	assert.Equal(t, []string{"alice@example.com"}, e.mailer.Messages()[0].To)
}

func TestRegister_LesseePayload(t *testing.T) {
	e := newEnv(t)
	req := registerRequest("acme", "acme@example.com", "order_1", "pay_1")
	req.Status = models.CategoryCompany
	req.CompanyName = "Acme Mining"
	req.Minerals = "Iron ore"

	_, err := e.auth.Register(context.Background(), e.db, req)
	require.NoError(t, err)

	stored, err := e.userRepo.FindByUsername(e.db, "acme")
	require.NoError(t, err)
	details := stored.Details()
	assert.Equal(t, models.PayloadLessee, details.Kind)
	require.NotNil(t, details.Lessee)
	assert.Equal(t, "Acme Mining", details.Lessee.CompanyName)
	assert.Equal(t, "Iron ore", details.Lessee.Minerals)
}

func TestRegister_CategoryMismatch(t *testing.T) {
	e := newEnv(t)
	req := registerRequest("bob", "bob@example.com", "order_1", "pay_1")
	req.LicenseNo = "LIC-1" // dealer field on a student

	_, err := e.auth.Register(context.Background(), e.db, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCategoryDetails)
}

func TestRegister_Collision(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.auth.Register(ctx, e.db, registerRequest("alice", "alice@example.com", "order_1", "pay_1"))
	require.NoError(t, err)

	_, err = e.auth.Register(ctx, e.db, registerRequest("alice", "other@example.com", "order_2", "pay_2"))
	require.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Equal(t, "Email or username already exists", appErr.Message)
}

func TestRegister_InvalidSignature(t *testing.T) {
	e := newEnv(t)
	req := registerRequest("alice", "alice@example.com", "order_1", "pay_1")
	req.Signature = payment.Sign("wrong-secret", "order_1", "pay_1")

	_, err := e.auth.Register(context.Background(), e.db, req)
	require.ErrorIs(t, err, apperrors.ErrInvalidPaymentSignature)

	exists, err := e.userRepo.ExistsByUsername(e.db, "alice")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, e.publisher.Events())
}

func TestRegister_ConsumesRegistrationOrder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	order, err := e.payments.CreateRegistrationOrder(ctx, e.db, &dto.CreateOrderRequest{Status: models.CategoryStudents})
	require.NoError(t, err)

	_, err = e.auth.Register(ctx, e.db, registerRequest("alice", "alice@example.com", order.OrderID, "pay_1"))
	require.NoError(t, err)

	stored, err := e.orderRepo.FindByGatewayID(e.db, order.OrderID)
	require.NoError(t, err)
	assert.True(t, stored.IsPaid())
	assert.Equal(t, "pay_1", stored.PaymentID)

	// the same order cannot pay for a second account
	_, err = e.auth.Register(ctx, e.db, registerRequest("bob", "bob@example.com", order.OrderID, "pay_2"))
	assert.ErrorIs(t, err, apperrors.ErrPaymentAlreadyUsed)
}

func TestRegister_OrderConsumedAfterRead(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	order, err := e.payments.CreateRegistrationOrder(ctx, e.db, &dto.CreateOrderRequest{Status: models.CategoryStudents})
	require.NoError(t, err)
	_, err = e.auth.Register(ctx, e.db, registerRequest("alice", "alice@example.com", order.OrderID, "pay_1"))
	require.NoError(t, err)

	// bob's transaction still sees the order unpaid; the claim on it must fail
	e.useStaleOrders(t).pending = 1
	_, err = e.auth.Register(ctx, e.db, registerRequest("bob", "bob@example.com", order.OrderID, "pay_1"))
	assert.ErrorIs(t, err, apperrors.ErrPaymentAlreadyUsed)

	var count int64
	require.NoError(t, e.db.Model(&models.User{}).Where("username = ?", "bob").Count(&count).Error)
	assert.Zero(t, count, "the user insert is rolled back")

	stored, err := e.orderRepo.FindByGatewayID(e.db, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "pay_1", stored.PaymentID)
}

func TestRegister_ConcurrentSameUsername(t *testing.T) {
	e := newEnv(t)
	e.build(t, newBarrierRepo(e.userRepo, 2))
	ctx := context.Background()

	reqs := []*dto.RegisterRequest{
		registerRequest("alice", "alice1@example.com", "order_1", "pay_1"),
		registerRequest("alice", "alice2@example.com", "order_2", "pay_2"),
	}

	errs := make([]error, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req *dto.RegisterRequest) {
			defer wg.Done()
			_, errs[i] = e.auth.Register(ctx, e.db, req)
		}(i, req)
	}
	wg.Wait()

	var ok, collisions int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperrors.Is(err, apperrors.ErrUserAlreadyExists):
			collisions++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, collisions)

	var count int64
	require.NoError(t, e.db.Model(&models.User{}).Where("username = ?", "alice").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.createUser(t, "alice", models.CategoryOfficials)

	_, err := e.auth.Login(ctx, e.db, &dto.LoginRequest{Username: "alice", Password: "nope"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, unknownErr := e.auth.Login(ctx, e.db, &dto.LoginRequest{Username: "ghost", Password: "secret-pass"})
	require.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	assert.Equal(t, err.Error(), unknownErr.Error(), "both failures look the same")

	resp, err := e.auth.Login(ctx, e.db, &dto.LoginRequest{Username: "alice", Password: "secret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := e.tokens.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.WithinDuration(t, resp.ExpiresAt, claims.ExpiresAt.Time, time.Second)
}
