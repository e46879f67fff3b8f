package analytics

import (
	"math"
	"sort"

	"github.com/yungbote/intentpulse-backend/internal/domain"
)

// CompanyAggregate is the per-company fold of a record set. Derived on
// every call, never persisted.
type CompanyAggregate struct {
	CompanyName string   `json:"company_name"`
	Count       int      `json:"count"`
	AvgScore    int      `json:"avg_score"`
	Topics      []string `json:"topics"`
	Categories  []string `json:"categories"`
}

// CompanyScores groups records by exact company name and computes
// count, rounded average score and the unique topic/category sets.
// Records with an invalid score are excluded entirely; a blank company
// name still forms its own group. Output is sorted by average score
// descending, ties keeping first-seen order.
func CompanyScores(records []*domain.IntentRecord) []CompanyAggregate {
	type acc struct {
		count      int
		total      int
		topics     []string
		topicSeen  map[string]bool
		categories []string
		catSeen    map[string]bool
	}

	order := make([]string, 0)
	groups := make(map[string]*acc)

	for _, rec := range records {
		if rec == nil || !rec.ScoreValid {
			continue
		}
		g, ok := groups[rec.CompanyName]
		if !ok {
			g = &acc{topicSeen: make(map[string]bool), catSeen: make(map[string]bool)}
			groups[rec.CompanyName] = g
			order = append(order, rec.CompanyName)
		}
		g.count++
		g.total += rec.Score
		if rec.Topic != "" && !g.topicSeen[rec.Topic] {
			g.topicSeen[rec.Topic] = true
			g.topics = append(g.topics, rec.Topic)
		}
		if rec.Category != "" && !g.catSeen[rec.Category] {
			g.catSeen[rec.Category] = true
			g.categories = append(g.categories, rec.Category)
		}
	}

	out := make([]CompanyAggregate, 0, len(order))
	for _, name := range order {
		g := groups[name]
		out = append(out, CompanyAggregate{
			CompanyName: name,
			Count:       g.count,
			AvgScore:    int(math.Round(float64(g.total) / float64(g.count))),
			Topics:      g.topics,
			Categories:  g.categories,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgScore > out[j].AvgScore
	})
	return out
}
