package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	intentrepo "github.com/yungbote/intentpulse-backend/internal/data/repos/intent"
	"github.com/yungbote/intentpulse-backend/internal/domain"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
)

type IntentStats struct {
	TotalRecords      int64   `json:"total_records"`
	DistinctCompanies int64   `json:"distinct_companies"`
	AverageScore      float64 `json:"average_score"`
	WeekCount         int     `json:"week_count"`
}

type IntentService interface {
	List(ctx context.Context, filter intentrepo.Filter) ([]*domain.IntentRecord, error)
	Weeks(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (*IntentStats, error)
}

type intentService struct {
	db      *gorm.DB
	log     *logger.Logger
	records intentrepo.RecordRepo
}

func NewIntentService(db *gorm.DB, baseLog *logger.Logger, records intentrepo.RecordRepo) IntentService {
	serviceLog := baseLog.With("service", "IntentService")
	return &intentService{
		db:      db,
		log:     serviceLog,
		records: records,
	}
}

// List fetches records with exact-match filters. On a filtered query
// failure it retries once without filters; a second failure surfaces
// to the caller instead of degrading to an empty result, so the UI can
// tell an outage from an empty table.
func (is *intentService) List(ctx context.Context, filter intentrepo.Filter) ([]*domain.IntentRecord, error) {
	rows, err := is.records.List(ctx, nil, filter)
	if err == nil {
		return rows, nil
	}
	is.log.Warn("filtered record fetch failed, retrying unfiltered", "error", err)

	rows, retryErr := is.records.List(ctx, nil, intentrepo.Filter{Limit: filter.Limit})
	if retryErr != nil {
		return nil, fmt.Errorf("load intent records: %w", retryErr)
	}
	return rows, nil
}

func (is *intentService) Weeks(ctx context.Context) ([]string, error) {
	labels, err := is.records.DistinctWeekLabels(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load week labels: %w", err)
	}
	return labels, nil
}

func (is *intentService) Stats(ctx context.Context) (*IntentStats, error) {
	var stats IntentStats
	var labels []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := is.records.CountAll(gctx, nil)
		if err != nil {
			return fmt.Errorf("count records: %w", err)
		}
		stats.TotalRecords = n
		return nil
	})
	g.Go(func() error {
		n, err := is.records.CountDistinctCompanies(gctx, nil)
		if err != nil {
			return fmt.Errorf("count companies: %w", err)
		}
		stats.DistinctCompanies = n
		return nil
	})
	g.Go(func() error {
		avg, err := is.records.AverageScore(gctx, nil)
		if err != nil {
			return fmt.Errorf("average score: %w", err)
		}
		stats.AverageScore = avg
		return nil
	})
	g.Go(func() error {
		ls, err := is.records.DistinctWeekLabels(gctx, nil)
		if err != nil {
			return fmt.Errorf("week labels: %w", err)
		}
		labels = ls
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.WeekCount = len(labels)
	return &stats, nil
}
