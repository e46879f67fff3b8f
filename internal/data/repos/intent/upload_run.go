package intent

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/intentpulse-backend/internal/domain"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
)

type UploadRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, runs []*domain.UploadRun) ([]*domain.UploadRun, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.UploadRun, error)
	GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*domain.UploadRun, error)
}

type uploadRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUploadRunRepo(db *gorm.DB, baseLog *logger.Logger) UploadRunRepo {
	repoLog := baseLog.With("repo", "UploadRunRepo")
	return &uploadRunRepo{db: db, log: repoLog}
}

func (r *uploadRunRepo) Create(ctx context.Context, tx *gorm.DB, runs []*domain.UploadRun) ([]*domain.UploadRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(runs) == 0 {
		return []*domain.UploadRun{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *uploadRunRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.UploadRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.UploadRun
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *uploadRunRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*domain.UploadRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.UploadRun
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
