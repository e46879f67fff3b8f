package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/intentpulse-backend/internal/domain"
)

func (s *Service) AutoMigrateAll() error {
	if s == nil || s.db == nil {
		return fmt.Errorf("db service not initialized")
	}
	return AutoMigrateAll(s.db)
}

func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&domain.User{},
		&domain.UserToken{},

		&domain.UploadRun{},
		&domain.IntentRecord{},
	)
}
