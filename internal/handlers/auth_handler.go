package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rgrams-coder/mmles/internal/services"
	"github.com/rgrams-coder/mmles/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes mounts the public account routes under /users.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("/check-availability", h.CheckAvailability)
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
	}
}

// CheckAvailability godoc
// @Summary Check username and email availability
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.AvailabilityRequest true "Username and/or email"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /users/check-availability [post]
func (h *AuthHandler) CheckAvailability(c *gin.Context) {
	var req dto.AvailabilityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.CheckAvailability(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Register godoc
// @Summary Register a paid member
// @Description Verifies the Razorpay signature of the registration payment and creates the account.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration form with payment proof"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
