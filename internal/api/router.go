package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ayumi/capgen/internal/api/handler"
	"github.com/ayumi/capgen/internal/api/middleware"
	"github.com/ayumi/capgen/internal/config"
	"github.com/ayumi/capgen/internal/logger"
	"github.com/ayumi/capgen/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	generationService *service.GenerationService,
	cfg *config.Config,
	log *logger.Logger,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	pageHandler := handler.NewPageHandler()
	captionHandler := handler.NewCaptionHandler(generationService, cfg.Upload.MaxSizeMB<<20)
	sessionHandler := handler.NewSessionHandler(generationService)

	// Page and health check
	r.GET("/", pageHandler.Page)
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Captions
		v1.POST("/captions/text", captionHandler.GenerateFromText)
		v1.POST("/captions/image", captionHandler.GenerateFromImage)
		v1.POST("/captions/:id/copy", captionHandler.Copy)

		// Session
		v1.GET("/session", sessionHandler.Snapshot)
		v1.POST("/session/clear", sessionHandler.Clear)
	}

	return r
}
