package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yungbote/intentpulse-backend/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestRoundTrip(t *testing.T) {
	week := "W1 2024"
	records := []*domain.IntentRecord{
		{
			Date:              "2024-01-01",
			CompanyName:       "Acme, Inc.",
			Topic:             "cloud migration",
			Category:          "Tech",
			Score:             80,
			ScoreValid:        true,
			Website:           "acme.com",
			SecondaryIndustry: "Software",
			AlexaRank:         intPtr(1200),
			Employees:         intPtr(500),
			WeekLabel:         &week,
		},
		{
			Date:        "2024-01-02",
			CompanyName: "Globex",
			Topic:       "security",
			Category:    "Tech",
			Score:       0,
			ScoreValid:  false,
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		t.Fatalf("Write: %v", err)
	}

	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed) != len(records) {
		t.Fatalf("round trip length: %d != %d", len(parsed), len(records))
	}

	for i, orig := range records {
		got := parsed[i]
		if got.Date != orig.Date || got.CompanyName != orig.CompanyName ||
			got.Topic != orig.Topic || got.Category != orig.Category {
			t.Fatalf("record %d: %+v != %+v", i, got, orig)
		}
		if got.ScoreValid != orig.ScoreValid {
			t.Fatalf("record %d score validity: %v != %v", i, got.ScoreValid, orig.ScoreValid)
		}
		if orig.ScoreValid && got.Score != orig.Score {
			t.Fatalf("record %d score: %d != %d", i, got.Score, orig.Score)
		}
	}

	// Enrichment inside the 9 columns survives; the week label does not.
	first := parsed[0]
	if first.Website != "acme.com" || first.AlexaRank == nil || *first.AlexaRank != 1200 {
		t.Fatalf("exported enrichment lost: %+v", first)
	}
	if first.WeekLabel != nil {
		t.Fatalf("week label should be lost on export, got %v", *first.WeekLabel)
	}
}

func TestWriteQuotesCommas(t *testing.T) {
	records := []*domain.IntentRecord{
		{Date: "2024-01-01", CompanyName: "Acme, Inc.", Topic: "cloud", Category: "Tech", Score: 80, ScoreValid: true},
	}
	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `"Acme, Inc."`) {
		t.Fatalf("comma-bearing name not quoted:\n%s", buf.String())
	}
}

func TestWriteEmptyRecords(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
}
