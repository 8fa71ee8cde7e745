package dto

import (
	"io"
	"time"

	"github.com/rgrams-coder/mmles/internal/models"
)

// SubmissionForm - multipart fields of both submission forms.
type SubmissionForm struct {
	Title       string `form:"title" validate:"required,max=255"`
	Description string `form:"description" validate:"required,max=10000"`
	Username    string `form:"username" validate:"omitempty,username"`
}

// FileUpload - an attachment as received from the client.
type FileUpload struct {
	FileName string
	Size     int64
	Reader   io.Reader
}

type CreateSubmissionRequest struct {
	Kind        models.SubmissionKind
	UserID      string
	Username    string // optional claim from the form, must match the caller
	Title       string
	Description string
	File        *FileUpload
}

type SubmissionDTO struct {
	ID          string                  `json:"id"`
	Username    string                  `json:"username"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	FileName    string                  `json:"fileName,omitempty"`
	FileSize    int64                   `json:"fileSize,omitempty"`
	MimeType    string                  `json:"mimeType,omitempty"`
	FileURL     string                  `json:"fileUrl,omitempty"`
	Status      models.SubmissionStatus `json:"status"`
	Response    string                  `json:"response,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
}

func NewSubmissionDTO(kind models.SubmissionKind, s *models.Submission) *SubmissionDTO {
	out := &SubmissionDTO{
		ID:          s.ID,
		Username:    s.Username,
		Title:       s.Title,
		Description: s.Description,
		Status:      s.Status,
		Response:    s.Response,
		CreatedAt:   s.CreatedAt,
	}
	if s.Attachment.HasFile() {
		out.FileName = s.Attachment.FileName
		out.FileSize = s.Attachment.FileSize
		out.MimeType = s.Attachment.MimeType
		out.FileURL = "/api/files/" + string(kind) + "/" + s.ID
	}
	return out
}

// StoredFile - a stored attachment opened for download.
type StoredFile struct {
	FileName string
	MimeType string
	Size     int64
	Content  io.ReadCloser
}
