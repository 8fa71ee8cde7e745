package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/rgrams-coder/mmles/internal/logger"
	"github.com/rgrams-coder/mmles/internal/models"
	"github.com/rgrams-coder/mmles/internal/services/dto"
	"github.com/rgrams-coder/mmles/internal/storage"
	"github.com/rgrams-coder/mmles/pkg/apperrors"
)

// UploadService validates and stores submission attachments.
type UploadService interface {
	Store(ctx context.Context, kind models.SubmissionKind, username string, file *dto.FileUpload) (models.Attachment, error)
	Open(ctx context.Context, att models.Attachment) (io.ReadCloser, error)
	Remove(ctx context.Context, att models.Attachment) error
	MaxFileSize() int64
}

// UploadConfig - limits applied to every attachment.
type UploadConfig struct {
	MaxFileSize  int64
	AllowedTypes []string
}

func GetDefaultUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxFileSize: 10 * 1024 * 1024,
		AllowedTypes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"image/jpeg",
			"image/png",
			"text/plain",
		},
	}
}

type uploadService struct {
	storage storage.Storage
	config  *UploadConfig
}

func NewUploadService(storage storage.Storage, config *UploadConfig) UploadService {
	if config == nil {
		config = GetDefaultUploadConfig()
	}
	return &uploadService{
		storage: storage,
		config:  config,
	}
}

func (s *uploadService) MaxFileSize() int64 {
	return s.config.MaxFileSize
}

// Store reads at most MaxFileSize+1 bytes, sniffs the content type and saves the file
// under <kind>/<username>/<uuid><ext>.
func (s *uploadService) Store(ctx context.Context, kind models.SubmissionKind, username string, file *dto.FileUpload) (models.Attachment, error) {
	if file == nil || file.Reader == nil {
		return models.Attachment{}, apperrors.NewBadRequestError("File is empty")
	}
	if file.Size > s.config.MaxFileSize {
		return models.Attachment{}, apperrors.ErrFileTooLarge.WithDetails(map[string]interface{}{"maxSize": s.config.MaxFileSize})
	}

	data, err := io.ReadAll(io.LimitReader(file.Reader, s.config.MaxFileSize+1))
	if err != nil {
		return models.Attachment{}, apperrors.InternalError(err)
	}
	if int64(len(data)) > s.config.MaxFileSize {
		return models.Attachment{}, apperrors.ErrFileTooLarge.WithDetails(map[string]interface{}{"maxSize": s.config.MaxFileSize})
	}
	if len(data) == 0 {
		return models.Attachment{}, apperrors.NewBadRequestError("File is empty")
	}

	mtype := mimetype.Detect(data)
	if !s.isAllowed(mtype) {
		logger.CtxWarn(ctx, "Rejected upload", "mime", mtype.String(), "file", file.FileName)
		return models.Attachment{}, apperrors.ErrInvalidFileType.WithDetails(map[string]interface{}{"mimeType": mtype.String()})
	}

	ext := strings.ToLower(filepath.Ext(file.FileName))
	if ext == "" {
		ext = mtype.Extension()
	}
	key := string(kind) + "/" + username + "/" + uuid.NewString() + ext

	if err := s.storage.Save(ctx, key, bytes.NewReader(data), int64(len(data)), baseMime(mtype.String())); err != nil {
		return models.Attachment{}, apperrors.InternalError(err)
	}

	return models.Attachment{
		FileName: filepath.Base(file.FileName),
		FilePath: key,
		FileSize: int64(len(data)),
		MimeType: baseMime(mtype.String()),
	}, nil
}

func (s *uploadService) Open(ctx context.Context, att models.Attachment) (io.ReadCloser, error) {
	if !att.HasFile() {
		return nil, apperrors.ErrFileNotFound
	}
	rc, err := s.storage.Get(ctx, att.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return rc, nil
}

// Remove is used to clean up after a failed insert.
func (s *uploadService) Remove(ctx context.Context, att models.Attachment) error {
	if !att.HasFile() {
		return nil
	}
	return s.storage.Delete(ctx, att.FilePath)
}

// isAllowed walks the sniffed type's parents, so a docx (detected as a zip subtype)
// matches its own entry.
func (s *uploadService) isAllowed(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		for _, allowed := range s.config.AllowedTypes {
			if m.Is(allowed) {
				return true
			}
		}
	}
	return false
}

// baseMime drops parameters such as "; charset=utf-8".
func baseMime(m string) string {
	if i := strings.Index(m, ";"); i >= 0 {
		return strings.TrimSpace(m[:i])
	}
	return m
}
