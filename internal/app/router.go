package app

import (
	ihttp "github.com/yungbote/intentpulse-backend/internal/http"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *ihttp.Server {
	return ihttp.NewServer(ihttp.RouterConfig{
		Log:              log,
		HealthHandler:    handlers.Health,
		AuthHandler:      handlers.Auth,
		AuthMiddleware:   middleware.Auth,
		IntentHandler:    handlers.Intent,
		AnalyticsHandler: handlers.Analytics,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})
}
