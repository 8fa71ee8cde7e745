package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rgrams-coder/mmles/internal/auth"
	"github.com/rgrams-coder/mmles/internal/logger"
	"github.com/rgrams-coder/mmles/pkg/apperrors"
	"github.com/rgrams-coder/mmles/pkg/contextkeys"
)

// AuthMiddleware requires a valid bearer token and stores its user in the gin context
// and in the logging context.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Rejected bearer token", "error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(contextkeys.UserIDKey, claims.UserID)
		c.Set(contextkeys.UsernameKey, claims.Username)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// GetUserID returns the authenticated user id, or "" outside AuthMiddleware.
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

// GetUsername returns the authenticated username, or "" outside AuthMiddleware.
func GetUsername(c *gin.Context) string {
	return c.GetString(contextkeys.UsernameKey)
}
