package app

import (
	httpH "github.com/yungbote/intentpulse-backend/internal/http/handlers"
	httpMW "github.com/yungbote/intentpulse-backend/internal/http/middleware"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	Intent    *httpH.IntentHandler
	Analytics *httpH.AnalyticsHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(),
		Auth:      httpH.NewAuthHandler(services.Auth, services.User),
		Intent:    httpH.NewIntentHandler(log, services.Upload, services.Intent, services.Export),
		Analytics: httpH.NewAnalyticsHandler(log, services.Analytics),
	}
}

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}
