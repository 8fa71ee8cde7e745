package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/mmles/internal/events"
	"github.com/rgrams-coder/mmles/internal/models"
	"github.com/rgrams-coder/mmles/internal/payment"
	"github.com/rgrams-coder/mmles/internal/services/dto"
	"github.com/rgrams-coder/mmles/pkg/apperrors"
)

func TestCreateRegistrationOrder(t *testing.T) {
	tests := []struct {
		name       string
		req        dto.CreateOrderRequest
		wantAmount int64
		wantErr    error
	}{
		{"student fee", dto.CreateOrderRequest{Status: models.CategoryStudents}, 100000, nil},
		{"company fee", dto.CreateOrderRequest{Status: models.CategoryCompany}, 500000, nil},
		{"dealer fee", dto.CreateOrderRequest{Status: models.CategoryMineralDealers}, 200000, nil},
		{"category wins over amount", dto.CreateOrderRequest{Amount: 1, Status: models.CategoryResearchers}, 100000, nil},
		{"plain amount", dto.CreateOrderRequest{Amount: 2000}, 200000, nil},
		{"no amount", dto.CreateOrderRequest{}, 0, apperrors.ErrInvalidPaymentAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)

			resp, err := e.payments.CreateRegistrationOrder(context.Background(), e.db, &tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, resp.Amount)
			assert.Equal(t, "INR", resp.Currency)
			assert.Equal(t, "rzp_test_key", resp.KeyID)

			order, err := e.orderRepo.FindByGatewayID(e.db, resp.OrderID)
			require.NoError(t, err)
			assert.Equal(t, models.OrderPurposeRegistration, order.Purpose)
			assert.Nil(t, order.UserID)
			assert.Contains(t, order.Receipt, "reg_")
		})
	}
}

func TestCreateRegistrationOrder_GatewayDown(t *testing.T) {
	e := newEnv(t)
	e.gateway.FailWith(errGatewayDown)

	_, err := e.payments.CreateRegistrationOrder(context.Background(), e.db, &dto.CreateOrderRequest{Amount: 2000})
	require.ErrorIs(t, err, apperrors.ErrPaymentGateway)

	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 500, appErr.HTTPCode)
}

func TestLibraryAccess_Flow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.createUser(t, "alice", models.CategoryResearchers)

	order, err := e.payments.CreateLibraryOrder(ctx, e.db, user.ID, &dto.LibraryOrderRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 700000, order.Amount)

	pending, err := e.userRepo.FindByID(e.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LibraryPaymentPending, pending.LibraryPaymentStatus)
	assert.False(t, pending.HasLibraryAccess)

	req := &dto.VerifyLibraryPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_lib_1",
		Signature: payment.Sign(testSecret, order.OrderID, "pay_lib_1"),
	}
	resp, err := e.payments.VerifyLibraryPayment(ctx, e.db, user.ID, req)
	require.NoError(t, err)
	assert.True(t, resp.Verified)

	granted, err := e.userRepo.FindByID(e.db, user.ID)
	require.NoError(t, err)
	assert.True(t, granted.HasLibraryAccess)
	assert.Equal(t, models.LibraryPaymentCompleted, granted.LibraryPaymentStatus)
	assert.Equal(t, "pay_lib_1", granted.LibraryPaymentID)
	require.NotNil(t, granted.LibraryPaidAt)

	// replay reapplies the same state without a second receipt
	_, err = e.payments.VerifyLibraryPayment(ctx, e.db, user.ID, req)
	require.NoError(t, err)
	assert.Len(t, e.publisher.OfType(events.LibraryAccessGranted), 1)
	assert.Len(t, e.mailer.Messages(), 1)
}

func TestVerifyLibraryPayment_BadSignature(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.createUser(t, "alice", models.CategoryStudents)

	order, err := e.payments.CreateLibraryOrder(ctx, e.db, user.ID, &dto.LibraryOrderRequest{})
	require.NoError(t, err)

	_, err = e.payments.VerifyLibraryPayment(ctx, e.db, user.ID, &dto.VerifyLibraryPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_1",
		Signature: "deadbeef",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidPaymentSignature)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, map[string]interface{}{"verified": false}, appErr.Details)

	stored, err := e.userRepo.FindByID(e.db, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.HasLibraryAccess)
}

func TestVerifyLibraryPayment_OrderChecks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.createUser(t, "alice", models.CategoryStudents)
	bob := e.createUser(t, "bob", models.CategoryStudents)

	aliceOrder, err := e.payments.CreateLibraryOrder(ctx, e.db, alice.ID, &dto.LibraryOrderRequest{})
	require.NoError(t, err)
	regOrder, err := e.payments.CreateRegistrationOrder(ctx, e.db, &dto.CreateOrderRequest{Amount: 2000})
	require.NoError(t, err)

	verify := func(orderID string) error {
		_, err := e.payments.VerifyLibraryPayment(ctx, e.db, bob.ID, &dto.VerifyLibraryPaymentRequest{
			OrderID:   orderID,
			PaymentID: "pay_x",
			Signature: payment.Sign(testSecret, orderID, "pay_x"),
		})
		return err
	}

	assert.ErrorIs(t, verify(aliceOrder.OrderID), apperrors.ErrNotResourceOwner)
	assert.ErrorIs(t, verify(regOrder.OrderID), apperrors.ErrOrderPurposeMismatch)
	assert.ErrorIs(t, verify("order_unknown"), apperrors.ErrOrderNotFound)

	_, err = e.payments.CreateLibraryOrder(ctx, e.db, bob.ID, &dto.LibraryOrderRequest{UserID: alice.ID})
	assert.ErrorIs(t, err, apperrors.ErrNotResourceOwner)
}

func TestVerifyLibraryPayment_OrderPaidAfterRead(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.createUser(t, "alice", models.CategoryStudents)

	order, err := e.payments.CreateLibraryOrder(ctx, e.db, user.ID, &dto.LibraryOrderRequest{})
	require.NoError(t, err)

	verify := func(paymentID string) error {
		_, err := e.payments.VerifyLibraryPayment(ctx, e.db, user.ID, &dto.VerifyLibraryPaymentRequest{
			OrderID:   order.OrderID,
			PaymentID: paymentID,
			Signature: payment.Sign(testSecret, order.OrderID, paymentID),
		})
		return err
	}
	require.NoError(t, verify("pay_lib_1"))

	stale := e.useStaleOrders(t)
	stale.pending = 1
	assert.ErrorIs(t, verify("pay_lib_2"), apperrors.ErrPaymentAlreadyUsed)
	stale.pending = 1
	assert.NoError(t, verify("pay_lib_1"), "the winning payment may replay")
	assert.Len(t, e.publisher.OfType(events.LibraryAccessGranted), 1)

	granted, err := e.userRepo.FindByID(e.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "pay_lib_1", granted.LibraryPaymentID)
}
