package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/venkyden/Roomivo/internal/config"
	"github.com/venkyden/Roomivo/internal/http/handler"
	httpmiddleware "github.com/venkyden/Roomivo/internal/http/middleware"
	"github.com/venkyden/Roomivo/internal/middleware"
	"github.com/venkyden/Roomivo/internal/ws"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(
	cfg config.Config,
	authHandler *handler.AuthHandler,
	propertyHandler *handler.PropertyHandler,
	applicationHandler *handler.ApplicationHandler,
	contractHandler *handler.ContractHandler,
	messageHandler *handler.MessageHandler,
	imageHandler *handler.ImageHandler,
	wsHandler *ws.Handler,
	authMiddleware *httpmiddleware.Auth,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(nil))
	if rateLimiter != nil {
		r.Use(rateLimiter.Handler())
	}
	r.Use(middleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	healthy := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/", healthy)
	r.GET("/api/health", healthy)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", authMiddleware.ValidateJWT, authHandler.Me)
			auth.PUT("/profile", authMiddleware.ValidateJWT, authHandler.UpdateProfile)
		}

		properties := api.Group("/properties")
		{
			properties.GET("", propertyHandler.Search)
			properties.GET("/:id", propertyHandler.Get)
			properties.POST("", authMiddleware.ValidateJWT, propertyHandler.Create)
			properties.PUT("/:id", authMiddleware.ValidateJWT, propertyHandler.Update)
			properties.DELETE("/:id", authMiddleware.ValidateJWT, propertyHandler.Delete)
		}

		api.GET("/my-properties", authMiddleware.ValidateJWT, propertyHandler.Mine)
		api.GET("/matches", authMiddleware.ValidateJWT, propertyHandler.Matched)

		applications := api.Group("/applications", authMiddleware.ValidateJWT)
		{
			applications.POST("", applicationHandler.Submit)
			applications.GET("", applicationHandler.List)
			applications.PUT("/:id", applicationHandler.Review)
		}

		contracts := api.Group("/contracts", authMiddleware.ValidateJWT)
		{
			contracts.POST("", contractHandler.Create)
			contracts.GET("/:applicationId", contractHandler.GetByApplication)
			contracts.POST("/:id/sign", contractHandler.Sign)
		}

		messages := api.Group("/messages", authMiddleware.ValidateJWT)
		{
			messages.POST("", messageHandler.Send)
			messages.GET("/:propertyId/:otherUserId", messageHandler.Conversation)
		}
		api.GET("/conversations", authMiddleware.ValidateJWT, messageHandler.Conversations)

		images := api.Group("/images")
		{
			images.POST("/upload", authMiddleware.ValidateJWT, imageHandler.Upload)
			images.GET("/:publicId", imageHandler.Serve)
			images.DELETE("/delete/:publicId", authMiddleware.ValidateJWT, imageHandler.Remove)
		}
	}

	r.GET("/ws", wsHandler.Serve)

	return r
}
