package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rgrams-coder/mmles/internal/logger"
	"github.com/rgrams-coder/mmles/internal/models"
	"github.com/rgrams-coder/mmles/internal/payment"
	"github.com/rgrams-coder/mmles/internal/repositories"
	"github.com/rgrams-coder/mmles/internal/services/dto"
	"github.com/rgrams-coder/mmles/pkg/apperrors"
)

type PaymentService interface {
	CreateRegistrationOrder(ctx context.Context, db *gorm.DB, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	CreateLibraryOrder(ctx context.Context, db *gorm.DB, callerID string, req *dto.LibraryOrderRequest) (*dto.OrderResponse, error)
	VerifyLibraryPayment(ctx context.Context, db *gorm.DB, callerID string, req *dto.VerifyLibraryPaymentRequest) (*dto.VerifyLibraryPaymentResponse, error)
}

type PaymentServiceImpl struct {
	userRepo      repositories.UserRepository
	orderRepo     repositories.PaymentOrderRepository
	gateway       payment.Gateway
	currency      string
	notifications NotificationService
	now           func() time.Time
}

func NewPaymentService(
	userRepo repositories.UserRepository,
	orderRepo repositories.PaymentOrderRepository,
	gateway payment.Gateway,
	currency string,
	notifications NotificationService,
) PaymentService {
	if currency == "" {
		currency = "INR"
	}
	return &PaymentServiceImpl{
		userRepo:      userRepo,
		orderRepo:     orderRepo,
		gateway:       gateway,
		currency:      currency,
		notifications: notifications,
		now:           time.Now,
	}
}

// CreateRegistrationOrder prices the order by category when one is given, otherwise
// by the supplied amount.
func (s *PaymentServiceImpl) CreateRegistrationOrder(ctx context.Context, db *gorm.DB, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	amount := req.Amount
	if req.Status != "" {
		amount = req.Status.RegistrationFee()
	}
	if amount <= 0 {
		return nil, apperrors.ErrInvalidPaymentAmount
	}

	receipt := "reg_" + uuid.NewString()[:8]
	order, err := s.createOrder(ctx, db, models.OrderPurposeRegistration, nil, amount, receipt)
	if err != nil {
		return nil, err
	}
	return s.orderResponse(order), nil
}

// CreateLibraryOrder prices the library fee by the caller's category and moves the
// caller to libraryPaymentStatus=pending.
func (s *PaymentServiceImpl) CreateLibraryOrder(ctx context.Context, db *gorm.DB, callerID string, req *dto.LibraryOrderRequest) (*dto.OrderResponse, error) {
	db = db.WithContext(ctx)

	if req.UserID != "" && req.UserID != callerID {
		return nil, apperrors.ErrNotResourceOwner
	}

	user, err := loadUser(db, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}

	receipt := "lib_" + uuid.NewString()[:8]
	order, err := s.createOrder(ctx, db, models.OrderPurposeLibraryAccess, &user.ID, user.Status.LibraryFee(), receipt)
	if err != nil {
		return nil, err
	}

	// a user who already has access keeps status completed
	if !user.HasLibraryAccess {
		if err := s.userRepo.SetLibraryPaymentStatus(db, user.ID, models.LibraryPaymentPending); err != nil {
			return nil, apperrors.DatabaseError(err, "Failed to update library payment status")
		}
	}

	return s.orderResponse(order), nil
}

// VerifyLibraryPayment grants library access for a verified library order of the
// caller. Verifying the same payment again reapplies the same state.
func (s *PaymentServiceImpl) VerifyLibraryPayment(ctx context.Context, db *gorm.DB, callerID string, req *dto.VerifyLibraryPaymentRequest) (*dto.VerifyLibraryPaymentResponse, error) {
	db = db.WithContext(ctx)

	if req.UserID != "" && req.UserID != callerID {
		return nil, apperrors.ErrNotResourceOwner
	}

	if err := s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		logger.CtxWarn(ctx, "Library payment signature rejected", "order_id", req.OrderID)
		return nil, apperrors.ErrInvalidPaymentSignature.WithDetails(map[string]interface{}{"verified": false})
	}

	user, err := loadUser(db, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error, "Failed to verify payment")
	}
	defer tx.Rollback()

	order, err := s.orderRepo.FindByGatewayID(tx, req.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.DatabaseError(err, "Failed to verify payment")
	}
	if order.Purpose != models.OrderPurposeLibraryAccess {
		return nil, apperrors.ErrOrderPurposeMismatch
	}
	if !order.BelongsTo(user.ID) {
		return nil, apperrors.ErrNotResourceOwner
	}
	if order.IsPaid() && order.PaymentID != req.PaymentID {
		return nil, apperrors.ErrPaymentAlreadyUsed
	}

	firstGrant := !order.IsPaid()
	paidAt := s.now().UTC()
	if firstGrant {
		err := s.orderRepo.MarkPaid(tx, order.ID, req.PaymentID, paidAt)
		if errors.Is(err, repositories.ErrOrderAlreadyPaid) {
			// a concurrent verification won; only the same payment may replay it
			order, err = s.orderRepo.FindByGatewayID(tx, req.OrderID)
			if err == nil && order.PaymentID != req.PaymentID {
				return nil, apperrors.ErrPaymentAlreadyUsed
			}
			firstGrant = false
		}
		if err != nil {
			return nil, apperrors.DatabaseError(err, "Failed to verify payment")
		}
	}
	if order.PaidAt != nil && !firstGrant {
		paidAt = *order.PaidAt
	}

	if err := s.userRepo.GrantLibraryAccess(tx, user.ID, repositories.LibraryGrant{PaymentID: req.PaymentID, PaidAt: paidAt}); err != nil {
		return nil, apperrors.DatabaseError(err, "Failed to verify payment")
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err, "Failed to verify payment")
	}

	user.HasLibraryAccess = true
	user.LibraryPaymentStatus = models.LibraryPaymentCompleted
	user.LibraryPaymentID = req.PaymentID
	user.LibraryPaidAt = &paidAt

	logger.CtxInfo(ctx, "Library access granted", "order_id", req.OrderID)
	if firstGrant {
		s.notifications.LibraryAccessGranted(ctx, user, order.Amount/100)
	}

	return &dto.VerifyLibraryPaymentResponse{
		Verified: true,
		Message:  "Library access granted",
		User:     dto.NewUserDTO(user),
	}, nil
}

func (s *PaymentServiceImpl) createOrder(ctx context.Context, db *gorm.DB, purpose models.OrderPurpose, userID *string, amountINR int64, receipt string) (*models.PaymentOrder, error) {
	gwOrder, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:   payment.ToPaise(amountINR),
		Currency: s.currency,
		Receipt:  receipt,
		Notes:    map[string]string{"purpose": string(purpose)},
	})
	if err != nil {
		logger.CtxWithError(ctx, "Payment gateway order creation failed", err, "purpose", purpose)
		return nil, apperrors.ErrPaymentGateway.WithError(err)
	}

	amount, currency := gwOrder.Amount, gwOrder.Currency
	if amount == 0 {
		amount = payment.ToPaise(amountINR)
	}
	if currency == "" {
		currency = s.currency
	}

	order := &models.PaymentOrder{
		GatewayOrderID: gwOrder.ID,
		Purpose:        purpose,
		UserID:         userID,
		Amount:         amount,
		Currency:       currency,
		Receipt:        receipt,
		Status:         models.OrderStatusCreated,
	}
	if err := s.orderRepo.Create(db.WithContext(ctx), order); err != nil {
		return nil, apperrors.DatabaseError(err, "Failed to store payment order")
	}

	logger.CtxInfo(ctx, "Payment order created", "order_id", order.GatewayOrderID, "purpose", purpose, "amount", order.Amount)
	return order, nil
}

func (s *PaymentServiceImpl) orderResponse(order *models.PaymentOrder) *dto.OrderResponse {
	return &dto.OrderResponse{
		KeyID:    s.gateway.KeyID(),
		Amount:   order.Amount,
		Currency: order.Currency,
		OrderID:  order.GatewayOrderID,
	}
}
