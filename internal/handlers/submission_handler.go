package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rgrams-coder/mmles/internal/logger"
	"github.com/rgrams-coder/mmles/internal/models"
	"github.com/rgrams-coder/mmles/internal/services"
	"github.com/rgrams-coder/mmles/internal/services/dto"
	"github.com/rgrams-coder/mmles/pkg/apperrors"
)

const (
	// maxMultipartMemory - form parts above this spill to temp files.
	maxMultipartMemory = 8 << 20
	// formOverhead - room for the text fields and part headers around the file.
	formOverhead = 1 << 20
)

// SubmissionHandler serves one submission kind. Both kinds share the form; they differ
// in the response key and in how the caller lists them.
type SubmissionHandler struct {
	*BaseHandler
	kind              models.SubmissionKind
	itemKey           string
	maxUpload         int64
	submissionService services.SubmissionService
}

func NewLegalAdviceHandler(base *BaseHandler, submissionService services.SubmissionService, maxUpload int64) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler:       base,
		kind:              models.KindLegalAdvice,
		itemKey:           "request",
		maxUpload:         maxUpload,
		submissionService: submissionService,
	}
}

func NewMiningPlanHandler(base *BaseHandler, submissionService services.SubmissionService, maxUpload int64) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler:       base,
		kind:              models.KindMiningPlan,
		itemKey:           "query",
		maxUpload:         maxUpload,
		submissionService: submissionService,
	}
}

func (h *SubmissionHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := rg.Group("/" + string(h.kind))
	group.Use(authMW)
	{
		group.POST("/submit", h.Submit)

		switch h.kind {
		case models.KindLegalAdvice:
			group.GET("/requests", h.ListMine)
		case models.KindMiningPlan:
			group.GET("/queries/:username", h.ListByUsername)
		}
	}
}

// Submit godoc
// @Summary Submit a legal-advice request or a mining-plan query
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param username formData string false "Must match the caller when sent"
// @Param file formData file false "Attachment"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /legal-advice/submit [post]
// @Router /mining-plan/submit [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	// nothing past the limit is read, so an oversized upload never reaches disk
	maxBody := h.maxUpload + formOverhead
	if c.Request.ContentLength > maxBody {
		h.rejectTooLarge(c)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)

	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.rejectTooLarge(c)
			return
		}
		apperrors.HandleError(c, apperrors.NewBadRequestError("failed to parse form: "+err.Error()))
		return
	}

	var form dto.SubmissionForm
	if !h.BindAndValidate_Form(c, &form) {
		return
	}

	req := &dto.CreateSubmissionRequest{
		Kind:        h.kind,
		UserID:      userID,
		Username:    form.Username,
		Title:       form.Title,
		Description: form.Description,
	}

	fileHeader, err := c.FormFile("file")
	switch {
	case err == nil:
		file, err := fileHeader.Open()
		if err != nil {
			h.HandleServiceError(c, apperrors.NewBadRequestError("failed to read uploaded file"))
			return
		}
		defer file.Close()
		req.File = &dto.FileUpload{FileName: fileHeader.Filename, Size: fileHeader.Size, Reader: file}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// the attachment is optional
	default:
		logger.CtxWithError(c.Request.Context(), "Failed to read multipart file", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid file field"))
		return
	}

	sub, err := h.submissionService.Submit(c.Request.Context(), h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Submitted successfully",
		h.itemKey: sub,
	})
}

func (h *SubmissionHandler) rejectTooLarge(c *gin.Context) {
	c.Header("Connection", "close")
	h.HandleServiceError(c, apperrors.ErrFileTooLarge.WithDetails(map[string]interface{}{"maxSize": h.maxUpload}))
}

// ListMine godoc
// @Summary Caller's legal-advice requests, newest first
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SubmissionDTO
// @Router /legal-advice/requests [get]
func (h *SubmissionHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.submissionService.ListMine(c.Request.Context(), h.GetDB(c), h.kind, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// ListByUsername godoc
// @Summary Mining-plan queries of a user (owner only), newest first
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {array} dto.SubmissionDTO
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /mining-plan/queries/{username} [get]
func (h *SubmissionHandler) ListByUsername(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.submissionService.ListByUsername(c.Request.Context(), h.GetDB(c), h.kind, userID, c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}
