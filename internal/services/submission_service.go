package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rgrams-coder/mmles/internal/logger"
	"github.com/rgrams-coder/mmles/internal/models"
	"github.com/rgrams-coder/mmles/internal/repositories"
	"github.com/rgrams-coder/mmles/internal/services/dto"
	"github.com/rgrams-coder/mmles/pkg/apperrors"
)

// SubmissionService handles legal-advice requests and mining-plan queries.
type SubmissionService interface {
	Submit(ctx context.Context, db *gorm.DB, req *dto.CreateSubmissionRequest) (*dto.SubmissionDTO, error)
	ListMine(ctx context.Context, db *gorm.DB, kind models.SubmissionKind, callerID string) ([]*dto.SubmissionDTO, error)
	ListByUsername(ctx context.Context, db *gorm.DB, kind models.SubmissionKind, callerID, username string) ([]*dto.SubmissionDTO, error)
	OpenAttachment(ctx context.Context, db *gorm.DB, kind models.SubmissionKind, callerID, id string) (*dto.StoredFile, error)
}

type submissionService struct {
	userRepo       repositories.UserRepository
	submissionRepo repositories.SubmissionRepository
	uploads        UploadService
	notifications  NotificationService
}

func NewSubmissionService(
	userRepo repositories.UserRepository,
	submissionRepo repositories.SubmissionRepository,
	uploads UploadService,
	notifications NotificationService,
) SubmissionService {
	return &submissionService{
		userRepo:       userRepo,
		submissionRepo: submissionRepo,
		uploads:        uploads,
		notifications:  notifications,
	}
}

func (s *submissionService) Submit(ctx context.Context, db *gorm.DB, req *dto.CreateSubmissionRequest) (*dto.SubmissionDTO, error) {
	db = db.WithContext(ctx)

	if !req.Kind.IsValid() {
		return nil, apperrors.NewNotFoundError("Unknown request kind")
	}

	user, err := loadUser(db, s.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}
	if req.Username != "" && req.Username != user.Username {
		return nil, apperrors.ErrNotResourceOwner
	}

	sub := &models.Submission{
		Username:    user.Username,
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.SubmissionStatusPending,
	}

	if req.File != nil {
		att, err := s.uploads.Store(ctx, req.Kind, user.Username, req.File)
		if err != nil {
			return nil, err
		}
		sub.Attachment = att
	}

	if err := s.submissionRepo.Create(db, req.Kind, sub); err != nil {
		if rmErr := s.uploads.Remove(ctx, sub.Attachment); rmErr != nil {
			logger.CtxWithError(ctx, "Failed to remove orphaned upload", rmErr, "path", sub.Attachment.FilePath)
		}
		return nil, apperrors.DatabaseError(err, "Failed to save request")
	}

	logger.CtxInfo(ctx, "Submission created", "kind", req.Kind, "id", sub.ID)
	s.notifications.SubmissionCreated(ctx, user, req.Kind, sub)

	return dto.NewSubmissionDTO(req.Kind, sub), nil
}

func (s *submissionService) ListMine(ctx context.Context, db *gorm.DB, kind models.SubmissionKind, callerID string) ([]*dto.SubmissionDTO, error) {
	db = db.WithContext(ctx)

	user, err := loadUser(db, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	return s.list(db, kind, user.Username)
}

// ListByUsername - owner only.
func (s *submissionService) ListByUsername(ctx context.Context, db *gorm.DB, kind models.SubmissionKind, callerID, username string) ([]*dto.SubmissionDTO, error) {
	db = db.WithContext(ctx)

	user, err := loadUser(db, s.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if user.Username != username {
		return nil, apperrors.ErrNotResourceOwner
	}
	return s.list(db, kind, user.Username)
}

func (s *submissionService) list(db *gorm.DB, kind models.SubmissionKind, username string) ([]*dto.SubmissionDTO, error) {
	rows, err := s.submissionRepo.ListByUsername(db, kind, username)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "Failed to load requests")
	}

	out := make([]*dto.SubmissionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, dto.NewSubmissionDTO(kind, &rows[i]))
	}
	return out, nil
}

// OpenAttachment returns the stored file of a submission owned by callerID.
func (s *submissionService) OpenAttachment(ctx context.Context, db *gorm.DB, kind models.SubmissionKind, callerID, id string) (*dto.StoredFile, error) {
	db = db.WithContext(ctx)

	if !kind.IsValid() {
		return nil, apperrors.ErrFileNotFound
	}

	sub, err := s.submissionRepo.FindByID(db, kind, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, apperrors.DatabaseError(err, "Failed to load request")
	}
	if sub.UserID != callerID {
		return nil, apperrors.ErrNotResourceOwner
	}

	rc, err := s.uploads.Open(ctx, sub.Attachment)
	if err != nil {
		return nil, err
	}
	return &dto.StoredFile{
		FileName: sub.Attachment.FileName,
		MimeType: sub.Attachment.MimeType,
		Size:     sub.Attachment.FileSize,
		Content:  rc,
	}, nil
}
