package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rgrams-coder/mmles/internal/auth"
	"github.com/rgrams-coder/mmles/internal/logger"
	"github.com/rgrams-coder/mmles/internal/models"
	"github.com/rgrams-coder/mmles/internal/payment"
	"github.com/rgrams-coder/mmles/internal/repositories"
	"github.com/rgrams-coder/mmles/internal/services/dto"
	"github.com/rgrams-coder/mmles/pkg/apperrors"
)

type AuthService interface {
	CheckAvailability(ctx context.Context, db *gorm.DB, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error)
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	orderRepo     repositories.PaymentOrderRepository
	gateway       payment.Gateway
	hasher        *auth.PasswordHasher
	tokens        *auth.TokenManager
	notifications NotificationService
	now           func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	orderRepo repositories.PaymentOrderRepository,
	gateway payment.Gateway,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	notifications NotificationService,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		orderRepo:     orderRepo,
		gateway:       gateway,
		hasher:        hasher,
		tokens:        tokens,
		notifications: notifications,
		now:           time.Now,
	}
}

// CheckAvailability looks each supplied field up on its own.
func (s *AuthServiceImpl) CheckAvailability(ctx context.Context, db *gorm.DB, req *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	db = db.WithContext(ctx)
	resp := &dto.AvailabilityResponse{UsernameAvailable: true, EmailAvailable: true}

	if req.Username != "" {
		taken, err := s.userRepo.ExistsByUsername(db, req.Username)
		if err != nil {
			return nil, apperrors.DatabaseError(err, "Server error during availability check")
		}
		resp.UsernameAvailable = !taken
	}

	if req.Email != "" {
		taken, err := s.userRepo.ExistsByEmail(db, req.Email)
		if err != nil {
			return nil, apperrors.DatabaseError(err, "Server error during availability check")
		}
		resp.EmailAvailable = !taken
	}

	return resp, nil
}

// Register creates the account once the checkout signature verifies. The pre-check
// only gives a fast answer; the unique indexes decide races.
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	db = db.WithContext(ctx)

	details, err := req.CategoryFields.Details(req.Status)
	if err != nil {
		return nil, apperrors.ErrInvalidCategoryDetails.WithDetails(map[string]string{"status": err.Error()})
	}
	if err := auth.ValidateNewPassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}

	taken, err := s.userRepo.ExistsByUsernameOrEmail(db, req.Username, req.Email)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "Server error during registration")
	}
	if taken {
		return nil, apperrors.ErrUserAlreadyExists
	}

	if err := s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		logger.CtxWarn(ctx, "Registration payment signature rejected", "order_id", req.OrderID, "username", req.Username)
		return nil, apperrors.ErrInvalidPaymentSignature
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:             req.Username,
		Email:                req.Email,
		PasswordHash:         hash,
		Name:                 req.Name,
		Phone:                req.Phone,
		Status:               req.Status,
		CategoryDetails:      datatypes.NewJSONType(details),
		PaymentStatus:        models.PaymentStatusCompleted,
		PaymentID:            req.PaymentID,
		HasLibraryAccess:     false,
		LibraryPaymentStatus: models.LibraryPaymentNone,
	}

	if err := s.persistRegistration(db, user, req.OrderID); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "User registered", "user_id", user.ID, "username", user.Username, "status", user.Status)
	s.notifications.UserRegistered(ctx, user)

	return &dto.RegisterResponse{
		Message: "Registration successful",
		User:    dto.NewUserDTO(user),
	}, nil
}

// persistRegistration inserts the user and consumes the registration order, if this
// service created one, in one transaction.
func (s *AuthServiceImpl) persistRegistration(db *gorm.DB, user *models.User, orderID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.DatabaseError(tx.Error, "Server error during registration")
	}
	defer tx.Rollback()

	order, err := s.orderRepo.FindByGatewayID(tx, orderID)
	switch {
	case errors.Is(err, repositories.ErrOrderNotFound):
		// order created outside this service; the signature is the proof of payment
		order = nil
	case err != nil:
		return apperrors.DatabaseError(err, "Server error during registration")
	case order.Purpose != models.OrderPurposeRegistration:
		return apperrors.ErrOrderPurposeMismatch
	case order.IsPaid():
		return apperrors.ErrPaymentAlreadyUsed
	}

	if err := s.userRepo.Create(tx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrUserAlreadyExists
		}
		return apperrors.DatabaseError(err, "Server error during registration")
	}

	if order != nil {
		if err := s.orderRepo.MarkPaid(tx, order.ID, user.PaymentID, s.now()); err != nil {
			if errors.Is(err, repositories.ErrOrderAlreadyPaid) {
				// another registration consumed the order after our read
				return apperrors.ErrPaymentAlreadyUsed
			}
			return apperrors.DatabaseError(err, "Server error during registration")
		}
	}

	if err := tx.Commit().Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrUserAlreadyExists
		}
		return apperrors.DatabaseError(err, "Server error during registration")
	}
	return nil
}

// Login answers unknown username and wrong password identically.
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(db.WithContext(ctx), req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err, "Server error")
	}

	if !s.hasher.Check(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "User logged in", "user_id", user.ID)

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.NewUserDTO(user),
	}, nil
}
