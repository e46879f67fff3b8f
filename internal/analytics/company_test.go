package analytics

import (
	"reflect"
	"testing"

	"github.com/yungbote/intentpulse-backend/internal/domain"
)

func rec(company, topic, category string, score int) *domain.IntentRecord {
	return &domain.IntentRecord{
		Date:        "2024-01-01",
		CompanyName: company,
		Topic:       topic,
		Category:    category,
		Score:       score,
		ScoreValid:  true,
	}
}

func invalidRec(company string) *domain.IntentRecord {
	r := rec(company, "cloud", "Tech", 0)
	r.ScoreValid = false
	return r
}

func TestCompanyScores(t *testing.T) {
	records := []*domain.IntentRecord{
		rec("Acme", "cloud", "Tech", 80),
		rec("Acme", "security", "Tech", 60),
		rec("Globex", "cloud", "Tech", 90),
		invalidRec("Phantom"),
	}

	got := CompanyScores(records)
	if len(got) != 2 {
		t.Fatalf("expected 2 companies (invalid-score row excluded), got %d", len(got))
	}

	if got[0].CompanyName != "Globex" || got[0].AvgScore != 90 || got[0].Count != 1 {
		t.Fatalf("first entry: %+v", got[0])
	}
	acme := got[1]
	if acme.CompanyName != "Acme" || acme.AvgScore != 70 || acme.Count != 2 {
		t.Fatalf("acme entry: %+v", acme)
	}
	if !reflect.DeepEqual(acme.Topics, []string{"cloud", "security"}) {
		t.Fatalf("acme topics: %v", acme.Topics)
	}
	if !reflect.DeepEqual(acme.Categories, []string{"Tech"}) {
		t.Fatalf("acme categories: %v", acme.Categories)
	}
}

func TestCompanyScoresKeepsBlankCompanyBucket(t *testing.T) {
	records := []*domain.IntentRecord{
		rec("", "cloud", "Tech", 40),
		rec("", "ai", "Tech", 60),
	}
	got := CompanyScores(records)
	if len(got) != 1 || got[0].CompanyName != "" || got[0].Count != 2 || got[0].AvgScore != 50 {
		t.Fatalf("blank bucket: %+v", got)
	}
}

func TestCompanyScoresRounding(t *testing.T) {
	records := []*domain.IntentRecord{
		rec("Acme", "a", "c", 70),
		rec("Acme", "b", "c", 71),
	}
	got := CompanyScores(records)
	if got[0].AvgScore != 71 {
		t.Fatalf("avg of 70,71 should round to 71, got %d", got[0].AvgScore)
	}
}

func TestCompanyScoresStableTies(t *testing.T) {
	records := []*domain.IntentRecord{
		rec("First", "a", "c", 80),
		rec("Second", "a", "c", 80),
		rec("Third", "a", "c", 80),
	}
	got := CompanyScores(records)
	names := []string{got[0].CompanyName, got[1].CompanyName, got[2].CompanyName}
	if !reflect.DeepEqual(names, []string{"First", "Second", "Third"}) {
		t.Fatalf("ties must keep input order, got %v", names)
	}
}

func TestCompanyScoresIdempotent(t *testing.T) {
	records := []*domain.IntentRecord{
		rec("Acme", "cloud", "Tech", 80),
		rec("Globex", "ai", "Tech", 75),
		invalidRec("Acme"),
	}
	first := CompanyScores(records)
	second := CompanyScores(records)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated aggregation differs:\n%+v\n%+v", first, second)
	}
}

func TestCompanyScoresEmptyInput(t *testing.T) {
	if got := CompanyScores(nil); len(got) != 0 {
		t.Fatalf("nil input: %+v", got)
	}
	if got := CompanyScores([]*domain.IntentRecord{invalidRec("Acme")}); len(got) != 0 {
		t.Fatalf("only invalid rows: %+v", got)
	}
}
