package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/intentpulse-backend/internal/http/handlers"
	httpMW "github.com/yungbote/intentpulse-backend/internal/http/middleware"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler      *httpH.AuthHandler
	AuthMiddleware   *httpMW.AuthMiddleware
	IntentHandler    *httpH.IntentHandler
	AnalyticsHandler *httpH.AnalyticsHandler
	HealthHandler    *httpH.HealthHandler

	CORSAllowOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSAllowOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
			protected.GET("/me", cfg.AuthHandler.GetMe)
		}

		// Intent records
		if cfg.IntentHandler != nil {
			protected.POST("/intent/upload", cfg.IntentHandler.Upload)
			protected.GET("/intent/records", cfg.IntentHandler.ListRecords)
			protected.GET("/intent/weeks", cfg.IntentHandler.ListWeeks)
			protected.GET("/intent/stats", cfg.IntentHandler.Stats)
			protected.GET("/intent/export", cfg.IntentHandler.Export)
		}

		// Analytics
		if cfg.AnalyticsHandler != nil {
			protected.GET("/analytics/dashboard", cfg.AnalyticsHandler.Dashboard)
			protected.GET("/analytics/opportunities", cfg.AnalyticsHandler.Opportunities)
		}
	}

	return r
}
