package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yungbote/intentpulse-backend/internal/domain"
)

// Required header columns. A file missing any of these is rejected
// before any row is transformed.
var RequiredColumns = []string{"Date", "Company Name", "Topic", "Category", "Score"}

// FormatError reports a file rejected at the header stage.
type FormatError struct {
	Reason         string
	MissingColumns []string
}

func (e *FormatError) Error() string {
	if len(e.MissingColumns) > 0 {
		return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.MissingColumns, ", "))
	}
	return e.Reason
}

// columnSetters is the single declarative mapping from source header to
// record field. Every transformer variant of the upload path goes
// through this table, so recognized columns cannot drift between
// call sites. Headers not listed here are ignored.
var columnSetters = map[string]func(*domain.IntentRecord, string){
	"Date":         func(r *domain.IntentRecord, v string) { r.Date = v },
	"Company Name": func(r *domain.IntentRecord, v string) { r.CompanyName = v },
	"Topic":        func(r *domain.IntentRecord, v string) { r.Topic = v },
	"Category":     func(r *domain.IntentRecord, v string) { r.Category = v },
	"Score": func(r *domain.IntentRecord, v string) {
		r.Score, r.ScoreValid = parseScore(v)
	},
	"Website": func(r *domain.IntentRecord, v string) { r.Website = v },
	"Secondary Industry Hierarchical Category": func(r *domain.IntentRecord, v string) { r.SecondaryIndustry = v },
	"Alexa Rank": func(r *domain.IntentRecord, v string) { r.AlexaRank = parseOptionalInt(v) },
	"Employees":  func(r *domain.IntentRecord, v string) { r.Employees = parseOptionalInt(v) },
}

// parseScore keeps the source contract for the score column: an empty
// cell counts as zero, and any leading integer prefix counts as the
// score ("8.5" reads as 8). Only a cell with no digit prefix at all
// yields an invalid score, persisted but excluded from aggregation
// downstream.
func parseScore(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, true
	}
	prefix := leadingInt(v)
	if prefix == "" {
		return 0, false
	}
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, false
	}
	return n, true
}

// leadingInt returns the optional-sign digit prefix of v, empty when v
// does not start with an integer.
func leadingInt(v string) string {
	i := 0
	if i < len(v) && (v[i] == '+' || v[i] == '-') {
		i++
	}
	j := i
	for j < len(v) && v[j] >= '0' && v[j] <= '9' {
		j++
	}
	if j == i {
		return ""
	}
	return v[:j]
}

func parseOptionalInt(v string) *int {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
