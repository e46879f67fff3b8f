package analytics

import (
	"math"
	"sort"

	"github.com/yungbote/intentpulse-backend/internal/domain"
)

type WeekStat struct {
	WeekLabel string `json:"week_label"`
	Count     int    `json:"count"`
	AvgScore  int    `json:"avg_score"`
}

// WeeklyTrend folds valid records by their upload week label. Records
// without a label are left out; the label is a free-text reporting tag,
// not derived from the record date.
func WeeklyTrend(records []*domain.IntentRecord) []WeekStat {
	type acc struct {
		count int
		total int
	}
	groups := make(map[string]*acc)

	for _, rec := range records {
		if rec == nil || !rec.ScoreValid {
			continue
		}
		if rec.WeekLabel == nil || *rec.WeekLabel == "" {
			continue
		}
		g, ok := groups[*rec.WeekLabel]
		if !ok {
			g = &acc{}
			groups[*rec.WeekLabel] = g
		}
		g.count++
		g.total += rec.Score
	}

	out := make([]WeekStat, 0, len(groups))
	for label, g := range groups {
		out = append(out, WeekStat{
			WeekLabel: label,
			Count:     g.count,
			AvgScore:  int(math.Round(float64(g.total) / float64(g.count))),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WeekLabel < out[j].WeekLabel
	})
	return out
}
