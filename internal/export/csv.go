package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/yungbote/intentpulse-backend/internal/domain"
	"github.com/yungbote/intentpulse-backend/internal/ingest"
)

// Header is the fixed export column set. Fields outside it (week
// label, uploader, ids) are intentionally dropped on export.
var Header = []string{
	"Date",
	"Company Name",
	"Topic",
	"Category",
	"Score",
	"Website",
	"Secondary Industry Hierarchical Category",
	"Alexa Rank",
	"Employees",
}

// Write serializes records as a quote-correct CSV download. A record
// whose score never parsed exports as "NaN", which re-ingests as an
// invalid score again instead of silently becoming zero.
func Write(w io.Writer, records []*domain.IntentRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		score := "NaN"
		if rec.ScoreValid {
			score = strconv.Itoa(rec.Score)
		}
		row := []string{
			rec.Date,
			rec.CompanyName,
			rec.Topic,
			rec.Category,
			score,
			rec.Website,
			rec.SecondaryIndustry,
			optionalInt(rec.AlexaRank),
			optionalInt(rec.Employees),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Parse reads an exported file back into records. It is the same
// reader the upload path uses, so an export always re-ingests cleanly.
func Parse(r io.Reader) ([]domain.IntentRecord, error) {
	return ingest.ParseFile(r)
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
