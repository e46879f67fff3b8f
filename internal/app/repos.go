package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/intentpulse-backend/internal/data/repos/identity"
	"github.com/yungbote/intentpulse-backend/internal/data/repos/intent"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
)

type Repos struct {
	User      identity.UserRepo
	UserToken identity.UserTokenRepo
	Record    intent.RecordRepo
	UploadRun intent.UploadRunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      identity.NewUserRepo(db, log),
		UserToken: identity.NewUserTokenRepo(db, log),
		Record:    intent.NewRecordRepo(db, log),
		UploadRun: intent.NewUploadRunRepo(db, log),
	}
}
