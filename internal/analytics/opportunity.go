package analytics

import (
	"sort"
	"strings"

	"github.com/yungbote/intentpulse-backend/internal/domain"
)

// Taxonomy is the keyword set that marks a category or topic as
// relevant to the sales team's offering. Matching is case-insensitive
// substring, checked in both directions so "CLOUD MIGRATION" matches
// the keyword "cloud".
type Taxonomy struct {
	Categories []string `yaml:"categories" json:"categories"`
	Topics     []string `yaml:"topics" json:"topics"`
}

const (
	categoryMatchWeight = 2.0
	topicMatchWeight    = 1.5
)

// DefaultTaxonomy returns the built-in keyword set used when no custom
// taxonomy is configured.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Categories: []string{
			"hospital & health care",
			"information technology",
			"computer software",
			"financial services",
			"telecommunications",
		},
		Topics: []string{
			"cloud migration",
			"cloud",
			"security",
			"data analytics",
			"artificial intelligence",
			"digital transformation",
		},
	}
}

type Opportunity struct {
	CompanyName    string  `json:"company_name"`
	Count          int     `json:"count"`
	AvgScore       float64 `json:"avg_score"`
	RelevanceScore float64 `json:"relevance_score"`
}

// RankOpportunities scores each company against the taxonomy:
// every valid record contributes score × multiplier, where the
// multiplier grows when the record's category or topic matches the
// taxonomy, and the sum is normalized by the company's record count.
// Only companies whose relevance beats their own plain average are
// kept, sorted by relevance descending.
func RankOpportunities(records []*domain.IntentRecord, tax Taxonomy) []Opportunity {
	type acc struct {
		count     int
		total     float64
		relevance float64
	}

	order := make([]string, 0)
	groups := make(map[string]*acc)

	for _, rec := range records {
		if rec == nil || !rec.ScoreValid {
			continue
		}
		g, ok := groups[rec.CompanyName]
		if !ok {
			g = &acc{}
			groups[rec.CompanyName] = g
			order = append(order, rec.CompanyName)
		}
		multiplier := 1.0
		if matchesAny(rec.Category, tax.Categories) {
			multiplier += categoryMatchWeight
		}
		if matchesAny(rec.Topic, tax.Topics) {
			multiplier += topicMatchWeight
		}
		g.count++
		g.total += float64(rec.Score)
		g.relevance += float64(rec.Score) * multiplier
	}

	out := make([]Opportunity, 0, len(order))
	for _, name := range order {
		g := groups[name]
		avg := g.total / float64(g.count)
		relevance := g.relevance / float64(g.count)
		if relevance <= avg {
			continue
		}
		out = append(out, Opportunity{
			CompanyName:    name,
			Count:          g.count,
			AvgScore:       avg,
			RelevanceScore: relevance,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})
	return out
}

func matchesAny(value string, keywords []string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return false
	}
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if strings.Contains(v, k) || strings.Contains(k, v) {
			return true
		}
	}
	return false
}
