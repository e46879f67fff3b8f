package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/intentpulse-backend/internal/data/db"
	ihttp "github.com/yungbote/intentpulse-backend/internal/http"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
	"github.com/yungbote/intentpulse-backend/internal/platform/rediscache"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *ihttp.Server
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	cache *rediscache.Cache
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	dbService, err := db.NewService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := dbService.DB()

	// Cache is optional; a nil *Cache always misses.
	var cache *rediscache.Cache
	if cfg.RedisAddr != "" {
		cache, err = rediscache.New(log, cfg.RedisAddr, "analytics", cfg.CacheTTL)
		if err != nil {
			log.Warn("Redis unavailable, analytics cache disabled", "error", err)
			cache = nil
		}
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, cache)
	handlerset := wireHandlers(log, serviceset)
	middleware := wireMiddleware(log, serviceset)
	server := wireRouter(log, cfg, handlerset, middleware)

	return &App{
		Log:      log,
		DB:       theDB,
		Server:   server,
		Router:   server.Engine,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		cache:    cache,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cache != nil {
		a.cache.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
