package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rgrams-coder/mmles/internal/auth"
	"github.com/rgrams-coder/mmles/internal/logger"
	"github.com/rgrams-coder/mmles/internal/models"
	"github.com/rgrams-coder/mmles/internal/repositories"
	"github.com/rgrams-coder/mmles/internal/services/dto"
	"github.com/rgrams-coder/mmles/pkg/apperrors"
)

type UserService interface {
	GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserDTO, error)
	GetByUsername(ctx context.Context, db *gorm.DB, callerID, username string) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, callerID, username string, req *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error)
	ChangePassword(ctx context.Context, db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	hasher   *auth.PasswordHasher
}

func NewUserService(userRepo repositories.UserRepository, hasher *auth.PasswordHasher) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserDTO, error) {
	user, err := loadUser(db.WithContext(ctx), s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserDTO(user), nil
}

// GetByUsername - only the owner may read a profile by username.
func (s *UserServiceImpl) GetByUsername(ctx context.Context, db *gorm.DB, callerID, username string) (*dto.UserDTO, error) {
	user, err := s.ownedUser(db.WithContext(ctx), callerID, username)
	if err != nil {
		return nil, err
	}
	return dto.NewUserDTO(user), nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, db *gorm.DB, callerID, username string, req *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error) {
	db = db.WithContext(ctx)

	user, err := s.ownedUser(db, callerID, username)
	if err != nil {
		return nil, err
	}

	details, err := req.MergeDetails(user.Details())
	if err != nil {
		return nil, apperrors.ErrInvalidCategoryDetails.WithDetails(map[string]string{"status": err.Error()})
	}

	err = s.userRepo.UpdateProfile(db, user.ID, repositories.ProfileUpdate{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Status:          req.Status,
		CategoryDetails: details,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, apperrors.DatabaseError(err, "Failed to update profile")
	}

	updated, err := loadUser(db, s.userRepo, user.ID)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Profile updated")
	return &dto.UpdateProfileResponse{
		Message: "Profile updated successfully",
		User:    dto.NewUserDTO(updated),
	}, nil
}

// ChangePassword keeps outstanding tokens valid; there is no revocation list.
func (s *UserServiceImpl) ChangePassword(ctx context.Context, db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	db = db.WithContext(ctx)

	user, err := loadUser(db, s.userRepo, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Check(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrWrongPassword
	}
	if err := auth.ValidateNewPassword(req.NewPassword); err != nil {
		return apperrors.ValidationError(map[string]string{"newPassword": err.Error()})
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, user.ID, hash); err != nil {
		return apperrors.DatabaseError(err, "Failed to change password")
	}

	logger.CtxInfo(ctx, "Password changed")
	return nil
}

// ownedUser loads the user named username and checks callerID owns it. An unknown
// username answers 403 too, so the endpoint cannot be used to discover usernames.
func (s *UserServiceImpl) ownedUser(db *gorm.DB, callerID, username string) (*models.User, error) {
	caller, err := loadUser(db, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if caller.Username != username {
		return nil, apperrors.ErrNotResourceOwner
	}
	return caller, nil
}

func loadUser(db *gorm.DB, repo repositories.UserRepository, userID string) (*models.User, error) {
	user, err := repo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.DatabaseError(err, "Failed to load user")
	}
	return user, nil
}
