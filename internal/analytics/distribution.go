package analytics

import (
	"sort"

	"github.com/yungbote/intentpulse-backend/internal/domain"
)

type DistributionEntry struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// CategoryDistribution counts valid records per category and converts
// the counts to percent-of-total for chart rendering.
func CategoryDistribution(records []*domain.IntentRecord) []DistributionEntry {
	return distribution(records, func(r *domain.IntentRecord) string { return r.Category })
}

// TopicDistribution is CategoryDistribution over the topic field.
func TopicDistribution(records []*domain.IntentRecord) []DistributionEntry {
	return distribution(records, func(r *domain.IntentRecord) string { return r.Topic })
}

func distribution(records []*domain.IntentRecord, field func(*domain.IntentRecord) string) []DistributionEntry {
	order := make([]string, 0)
	counts := make(map[string]int)
	total := 0

	for _, rec := range records {
		if rec == nil || !rec.ScoreValid {
			continue
		}
		v := field(rec)
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
		total++
	}

	out := make([]DistributionEntry, 0, len(order))
	for _, v := range order {
		entry := DistributionEntry{Value: v, Count: counts[v]}
		if total > 0 {
			entry.Percent = float64(counts[v]) / float64(total) * 100
		}
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
