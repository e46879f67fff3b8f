package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/intentpulse-backend/internal/ingest"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
	"github.com/yungbote/intentpulse-backend/internal/platform/rediscache"
	"github.com/yungbote/intentpulse-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	User      services.UserService
	Upload    services.UploadService
	Intent    services.IntentService
	Analytics services.AnalyticsService
	Export    services.ExportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, cache *rediscache.Cache) Services {
	log.Info("Wiring services...")

	authService := services.NewAuthService(
		db, log,
		repos.User,
		repos.UserToken,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	userService := services.NewUserService(db, log, repos.User)

	ingestor := ingest.NewIngestor(log, repos.Record, repos.UploadRun, cfg.BatchSize)
	uploadService := services.NewUploadService(log, ingestor, cache, cfg.ReadOnly)

	intentService := services.NewIntentService(db, log, repos.Record)
	analyticsService := services.NewAnalyticsService(log, intentService, cache, cfg.Taxonomy)
	exportService := services.NewExportService(log, intentService)

	return Services{
		Auth:      authService,
		User:      userService,
		Upload:    uploadService,
		Intent:    intentService,
		Analytics: analyticsService,
		Export:    exportService,
	}
}
