package analytics

import (
	"github.com/yungbote/intentpulse-backend/internal/domain"
)

type HistogramBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ScoreHistogram buckets valid scores into the dashboard's fixed
// ranges. Every valid record lands in exactly one bucket (scores below
// the nominal range fall into the first, above into the last), so the
// bucket counts always sum to the number of valid records.
func ScoreHistogram(records []*domain.IntentRecord) []HistogramBucket {
	buckets := []HistogramBucket{
		{Label: "0-59"},
		{Label: "60-69"},
		{Label: "70-79"},
		{Label: "80-89"},
		{Label: "90-100"},
	}
	for _, rec := range records {
		if rec == nil || !rec.ScoreValid {
			continue
		}
		switch s := rec.Score; {
		case s < 60:
			buckets[0].Count++
		case s < 70:
			buckets[1].Count++
		case s < 80:
			buckets[2].Count++
		case s < 90:
			buckets[3].Count++
		default:
			buckets[4].Count++
		}
	}
	return buckets
}
