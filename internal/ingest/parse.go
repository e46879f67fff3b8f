package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yungbote/intentpulse-backend/internal/domain"
)

// ParseFile reads a delimited intent file: first line is the header,
// every following non-blank line becomes one IntentRecord. The reader
// is quote-aware, so commas inside quoted company names do not shift
// columns. Returns a *FormatError when the header is unusable.
func ParseFile(r io.Reader) ([]domain.IntentRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &FormatError{Reason: fmt.Sprintf("malformed csv on line %d: %v", pe.Line, pe.Err)}
		}
		return nil, fmt.Errorf("read delimited file: %w", err)
	}
	if len(rows) < 2 {
		return nil, &FormatError{Reason: "file has no data rows"}
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	if err := ValidateHeader(headers); err != nil {
		return nil, err
	}

	records := make([]domain.IntentRecord, 0, len(rows)-1)
	for _, fields := range rows[1:] {
		rec, ok := TransformRow(headers, fields)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// ValidateHeader checks that every required column is present. Extra
// columns are fine and ignored later.
func ValidateHeader(headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &FormatError{Reason: "missing required columns", MissingColumns: missing}
	}
	return nil
}

// TransformRow maps one data row into a record via the column table.
// Rows that are entirely blank are skipped (second return false) and
// produce no record. Missing trailing cells read as empty strings.
func TransformRow(headers []string, fields []string) (domain.IntentRecord, bool) {
	blank := true
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			blank = false
			break
		}
	}
	if blank {
		return domain.IntentRecord{}, false
	}

	rec := domain.IntentRecord{ScoreValid: true}
	for i, header := range headers {
		setter, known := columnSetters[header]
		if !known {
			continue
		}
		value := ""
		if i < len(fields) {
			value = strings.TrimSpace(fields[i])
		}
		setter(&rec, value)
	}
	return rec, true
}
