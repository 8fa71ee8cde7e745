package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rgrams-coder/mmles/internal/services"
	"github.com/rgrams-coder/mmles/internal/services/dto"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	payment := rg.Group("/payment")
	{
		// registration happens before an account exists
		payment.POST("/create-order", h.CreateOrder)

		payment.POST("/create-library-access-order", authMW, h.CreateLibraryOrder)
		payment.POST("/verify-library-payment", authMW, h.VerifyLibraryPayment)
	}
}

// CreateOrder godoc
// @Summary Create a registration payment order
// @Tags payment
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Amount in INR or member category"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /payment/create-order [post]
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.paymentService.CreateRegistrationOrder(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateLibraryOrder godoc
// @Summary Create a library access payment order
// @Tags payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LibraryOrderRequest false "Optional user id, must be the caller"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /payment/create-library-access-order [post]
func (h *PaymentHandler) CreateLibraryOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.LibraryOrderRequest
	// the body is optional
	if c.Request.ContentLength != 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.paymentService.CreateLibraryOrder(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyLibraryPayment godoc
// @Summary Verify a library access payment
// @Tags payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VerifyLibraryPaymentRequest true "Razorpay checkout result"
// @Success 200 {object} dto.VerifyLibraryPaymentResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /payment/verify-library-payment [post]
func (h *PaymentHandler) VerifyLibraryPayment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyLibraryPaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.paymentService.VerifyLibraryPayment(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
