package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/intentpulse-backend/internal/analytics"
	"github.com/yungbote/intentpulse-backend/internal/platform/envutil"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
)

type Config struct {
	Port string

	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// ReadOnly blocks uploads while leaving reads up.
	ReadOnly bool

	BatchSize int

	RedisAddr string
	CacheTTL  time.Duration

	CORSAllowOrigins []string

	Taxonomy analytics.Taxonomy
}

// fileConfig is the optional YAML overlay. Pointer fields so an absent
// key leaves the env-derived value untouched.
type fileConfig struct {
	Port             *string             `yaml:"port"`
	ReadOnly         *bool               `yaml:"read_only"`
	BatchSize        *int                `yaml:"batch_size"`
	CORSAllowOrigins []string            `yaml:"cors_allow_origins"`
	Taxonomy         *analytics.Taxonomy `yaml:"taxonomy"`
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:            envutil.String("PORT", "8080"),
		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL:  envutil.Duration("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL: envutil.Duration("REFRESH_TOKEN_TTL", 24*time.Hour),
		ReadOnly:        envutil.Bool("READ_ONLY", false),
		BatchSize:       envutil.Int("UPLOAD_BATCH_SIZE", 50),
		RedisAddr:       envutil.String("REDIS_ADDR", ""),
		CacheTTL:        envutil.Duration("ANALYTICS_CACHE_TTL", 5*time.Minute),
	}
	if origins := envutil.String("CORS_ALLOW_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, o)
			}
		}
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFileConfig(&cfg, path); err != nil {
			log.Warn("Config file ignored", "path", path, "error", err)
		} else {
			log.Info("Applied config file overlay", "path", path)
		}
	}
	return cfg
}

func applyFileConfig(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if fc.Port != nil {
		cfg.Port = *fc.Port
	}
	if fc.ReadOnly != nil {
		cfg.ReadOnly = *fc.ReadOnly
	}
	if fc.BatchSize != nil {
		cfg.BatchSize = *fc.BatchSize
	}
	if len(fc.CORSAllowOrigins) > 0 {
		cfg.CORSAllowOrigins = fc.CORSAllowOrigins
	}
	if fc.Taxonomy != nil {
		cfg.Taxonomy = *fc.Taxonomy
	}
	return nil
}
