package intent

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/intentpulse-backend/internal/domain"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
)

// Filter narrows a record listing. Date and WeekLabel are exact-match
// only; nil means "any".
type Filter struct {
	Date      *string
	WeekLabel *string
	UserID    *uuid.UUID
	Limit     int
}

type RecordRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, records []*domain.IntentRecord) ([]*domain.IntentRecord, error)
	List(ctx context.Context, tx *gorm.DB, filter Filter) ([]*domain.IntentRecord, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.IntentRecord, error)
	DistinctWeekLabels(ctx context.Context, tx *gorm.DB) ([]string, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
	CountDistinctCompanies(ctx context.Context, tx *gorm.DB) (int64, error)
	AverageScore(ctx context.Context, tx *gorm.DB) (float64, error)
	DeleteByUploadRun(ctx context.Context, tx *gorm.DB, uploadRunID uuid.UUID) (int64, error)
}

type recordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecordRepo(db *gorm.DB, baseLog *logger.Logger) RecordRepo {
	repoLog := baseLog.With("repo", "IntentRecordRepo")
	return &recordRepo{db: db, log: repoLog}
}

func (r *recordRepo) CreateBatch(ctx context.Context, tx *gorm.DB, records []*domain.IntentRecord) ([]*domain.IntentRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(records) == 0 {
		return []*domain.IntentRecord{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *recordRepo) List(ctx context.Context, tx *gorm.DB, filter Filter) ([]*domain.IntentRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Model(&domain.IntentRecord{})
	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	}
	if filter.WeekLabel != nil {
		query = query.Where("week_label = ?", *filter.WeekLabel)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var results []*domain.IntentRecord
	if err := query.
		Order("date DESC, created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *recordRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.IntentRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.IntentRecord
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

func (r *recordRepo) DistinctWeekLabels(ctx context.Context, tx *gorm.DB) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var labels []string
	if err := transaction.WithContext(ctx).
		Model(&domain.IntentRecord{}).
		Where("week_label IS NOT NULL AND week_label <> ''").
		Distinct("week_label").
		Order("week_label").
		Pluck("week_label", &labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *recordRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.IntentRecord{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recordRepo) CountDistinctCompanies(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.IntentRecord{}).
		Distinct("company_name").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recordRepo) AverageScore(ctx context.Context, tx *gorm.DB) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	// Rows with an unparseable source score carry score_valid=false and
	// are excluded from every numeric read.
	var avg *float64
	if err := transaction.WithContext(ctx).
		Model(&domain.IntentRecord{}).
		Where("score_valid = ?", true).
		Select("AVG(score)").
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *recordRepo) DeleteByUploadRun(ctx context.Context, tx *gorm.DB, uploadRunID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Where("upload_run_id = ?", uploadRunID).
		Delete(&domain.IntentRecord{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
