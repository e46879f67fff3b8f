package analytics

import (
	"testing"

	"github.com/yungbote/intentpulse-backend/internal/domain"
)

func TestScoreHistogramBuckets(t *testing.T) {
	records := []*domain.IntentRecord{
		rec("A", "t", "c", 0),
		rec("B", "t", "c", 59),
		rec("C", "t", "c", 60),
		rec("D", "t", "c", 69),
		rec("E", "t", "c", 70),
		rec("F", "t", "c", 85),
		rec("G", "t", "c", 90),
		rec("H", "t", "c", 100),
		invalidRec("I"),
	}

	got := ScoreHistogram(records)
	want := map[string]int{
		"0-59":   2,
		"60-69":  2,
		"70-79":  1,
		"80-89":  1,
		"90-100": 2,
	}
	for _, b := range got {
		if b.Count != want[b.Label] {
			t.Fatalf("bucket %s = %d, want %d", b.Label, b.Count, want[b.Label])
		}
	}
}

func TestScoreHistogramCountsEveryValidRecordOnce(t *testing.T) {
	records := []*domain.IntentRecord{
		rec("A", "t", "c", 12),
		rec("B", "t", "c", 64),
		rec("C", "t", "c", 78),
		rec("D", "t", "c", 95),
		rec("E", "t", "c", -5),  // below nominal range, first bucket
		rec("F", "t", "c", 140), // above nominal range, last bucket
		invalidRec("G"),
		invalidRec("H"),
	}

	valid := 0
	for _, r := range records {
		if r.ScoreValid {
			valid++
		}
	}

	total := 0
	for _, b := range ScoreHistogram(records) {
		total += b.Count
	}
	if total != valid {
		t.Fatalf("histogram total %d != valid record count %d", total, valid)
	}
}

func TestScoreHistogramEmptyInput(t *testing.T) {
	got := ScoreHistogram(nil)
	if len(got) != 5 {
		t.Fatalf("expected the 5 fixed buckets, got %d", len(got))
	}
	for _, b := range got {
		if b.Count != 0 {
			t.Fatalf("bucket %s should be empty", b.Label)
		}
	}
}
