package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/intentpulse-backend/internal/analytics"
	intentrepo "github.com/yungbote/intentpulse-backend/internal/data/repos/intent"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
	"github.com/yungbote/intentpulse-backend/internal/platform/rediscache"
)

// DashboardSnapshot is everything the dashboard's charts need for one
// filter combination, computed in a single pass over the record set.
type DashboardSnapshot struct {
	TotalRecords int                           `json:"total_records"`
	Companies    []analytics.CompanyAggregate  `json:"companies"`
	Histogram    []analytics.HistogramBucket   `json:"histogram"`
	Categories   []analytics.DistributionEntry `json:"categories"`
	Topics       []analytics.DistributionEntry `json:"topics"`
	Trend        []analytics.WeekStat          `json:"trend"`
}

type AnalyticsService interface {
	Dashboard(ctx context.Context, filter intentrepo.Filter) (*DashboardSnapshot, error)
	Opportunities(ctx context.Context, filter intentrepo.Filter) ([]analytics.Opportunity, error)
}

type analyticsService struct {
	log      *logger.Logger
	intent   IntentService
	cache    *rediscache.Cache
	taxonomy analytics.Taxonomy
}

func NewAnalyticsService(baseLog *logger.Logger, intent IntentService, cache *rediscache.Cache, taxonomy analytics.Taxonomy) AnalyticsService {
	serviceLog := baseLog.With("service", "AnalyticsService")
	if len(taxonomy.Categories) == 0 && len(taxonomy.Topics) == 0 {
		taxonomy = analytics.DefaultTaxonomy()
	}
	return &analyticsService{
		log:      serviceLog,
		intent:   intent,
		cache:    cache,
		taxonomy: taxonomy,
	}
}

func cacheKey(kind string, filter intentrepo.Filter) string {
	date, week := "", ""
	if filter.Date != nil {
		date = *filter.Date
	}
	if filter.WeekLabel != nil {
		week = *filter.WeekLabel
	}
	return fmt.Sprintf("%s:date=%s|week=%s", kind, date, week)
}

func (s *analyticsService) Dashboard(ctx context.Context, filter intentrepo.Filter) (*DashboardSnapshot, error) {
	key := cacheKey("dashboard", filter)

	var cached DashboardSnapshot
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, rediscache.ErrMiss) {
		s.log.Warn("analytics cache read failed", "key", key, "error", err)
	}

	records, err := s.intent.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	snapshot := &DashboardSnapshot{
		TotalRecords: len(records),
		Companies:    analytics.CompanyScores(records),
		Histogram:    analytics.ScoreHistogram(records),
		Categories:   analytics.CategoryDistribution(records),
		Topics:       analytics.TopicDistribution(records),
		Trend:        analytics.WeeklyTrend(records),
	}

	if err := s.cache.Set(ctx, key, snapshot); err != nil {
		s.log.Warn("analytics cache write failed", "key", key, "error", err)
	}
	return snapshot, nil
}

func (s *analyticsService) Opportunities(ctx context.Context, filter intentrepo.Filter) ([]analytics.Opportunity, error) {
	records, err := s.intent.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return analytics.RankOpportunities(records, s.taxonomy), nil
}
