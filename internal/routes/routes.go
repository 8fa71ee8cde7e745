package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rgrams-coder/mmles/docs"
	"github.com/rgrams-coder/mmles/internal/handlers"
	"github.com/rgrams-coder/mmles/internal/logger"
)

// RegisterRoutes mounts the API under /api and the swagger UI under /swagger.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMW gin.HandlerFunc,
) {
	api := ginRouter.Group("/api")
	{
		appHandlers.HealthHandler.RegisterRoutes(api)
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api, authMW)
		appHandlers.PaymentHandler.RegisterRoutes(api, authMW)
		appHandlers.LegalAdviceHandler.RegisterRoutes(api, authMW)
		appHandlers.MiningPlanHandler.RegisterRoutes(api, authMW)
		appHandlers.FileHandler.RegisterRoutes(api, authMW)
	}

	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logger.Debug("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
