package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "kariyer_backend/docs"
	"kariyer_backend/internal/handlers"
	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/middleware"
	"kariyer_backend/ws"
)

// RegisterRoutes mounts the HTTP API, the chat websocket, swagger and the health check.
func RegisterRoutes(
	ginRouter *gin.Engine,
	db *gorm.DB,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.Handler,
	authn *middleware.Authenticator,
) {
	ginRouter.GET("/health", healthCheck(db))
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.SubscriptionHandler.RegisterRoutes(api)
		appHandlers.ConsultantHandler.RegisterRoutes(api)
		appHandlers.ChatHandler.RegisterRoutes(api)
		appHandlers.CVHandler.RegisterRoutes(api)
		appHandlers.JobHandler.RegisterRoutes(api)
		appHandlers.MediaHandler.RegisterRoutes(api)
		appHandlers.FileHandler.RegisterRoutes(api)
		appHandlers.SettingsHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
		appHandlers.WhatsAppHandler.RegisterRoutes(api)
	}

	wsGroup := api.Group("/ws")
	wsGroup.Use(authn.Required())
	{
		wsGroup.GET("/chat", wsHandler.ServeChat)
	}
	logger.Info("WebSocket route /api/v1/ws/chat registered")
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
