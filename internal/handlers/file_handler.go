package handlers

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rgrams-coder/mmles/internal/logger"
	"github.com/rgrams-coder/mmles/internal/models"
	"github.com/rgrams-coder/mmles/internal/services"
)

type FileHandler struct {
	*BaseHandler
	submissionService services.SubmissionService
}

func NewFileHandler(base *BaseHandler, submissionService services.SubmissionService) *FileHandler {
	return &FileHandler{
		BaseHandler:       base,
		submissionService: submissionService,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	files := rg.Group("/files")
	files.Use(authMW)
	{
		files.GET("/:kind/:id", h.ServeFile)
	}
}

// ServeFile godoc
// @Summary Download the attachment of an own submission
// @Tags files
// @Produce octet-stream
// @Security BearerAuth
// @Param kind path string true "legal-advice or mining-plan"
// @Param id path string true "Submission id"
// @Param download query bool false "Send as attachment"
// @Success 200 {file} file
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /files/{kind}/{id} [get]
func (h *FileHandler) ServeFile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	kind := models.SubmissionKind(c.Param("kind"))
	file, err := h.submissionService.OpenAttachment(c.Request.Context(), h.GetDB(c), kind, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Content.Close()

	disposition := "inline"
	if c.Query("download") == "true" {
		disposition = "attachment"
	}

	c.Header("Content-Type", file.MimeType)
	if file.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(file.Size, 10))
	}
	c.Header("Cache-Control", "private, max-age=0")
	c.Header("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": file.FileName}))
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, file.Content); err != nil {
		// headers are already sent
		logger.CtxWithError(c.Request.Context(), "File stream interrupted", err, "kind", kind)
		_ = c.Error(fmt.Errorf("stream file: %w", err))
	}
}
