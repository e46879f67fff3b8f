package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFileRejectsMissingColumns(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		missing string
	}{
		{
			name:    "no score column",
			input:   "Date,Company Name,Topic,Category\n2024-01-01,Acme,cloud,Tech\n",
			missing: "Score",
		},
		{
			name:    "no company column",
			input:   "Date,Topic,Category,Score\n2024-01-01,cloud,Tech,80\n",
			missing: "Company Name",
		},
		{
			name:    "unrelated header",
			input:   "Foo,Bar\n1,2\n",
			missing: "Date",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records, err := ParseFile(strings.NewReader(tc.input))
			if err == nil {
				t.Fatalf("expected error, got %d records", len(records))
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FormatError, got %T: %v", err, err)
			}
			found := false
			for _, col := range fe.MissingColumns {
				if col == tc.missing {
					found = true
				}
			}
			if !found {
				t.Fatalf("missing columns %v do not include %q", fe.MissingColumns, tc.missing)
			}
			if records != nil {
				t.Fatalf("no records should be produced on format error")
			}
		})
	}
}

func TestParseFileRejectsHeaderOnlyFile(t *testing.T) {
	_, err := ParseFile(strings.NewReader("Date,Company Name,Topic,Category,Score\n"))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError for header-only file, got %v", err)
	}
}

func TestParseFileRejectsMalformedQuoting(t *testing.T) {
	input := "Date,Company Name,Topic,Category,Score\n" +
		"2024-01-01,\"Acme,cloud,Tech,70\n"
	_, err := ParseFile(strings.NewReader(input))
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError for unclosed quote, got %T: %v", err, err)
	}
	if !strings.Contains(fe.Reason, "malformed csv") {
		t.Fatalf("reason = %q", fe.Reason)
	}
}

func TestParseFileTransformsRows(t *testing.T) {
	input := "Date,Company Name,Topic,Category,Score,Website,Alexa Rank,Employees,Unknown Col\n" +
		"2024-01-01,Acme,cloud,Tech,80,acme.com,1200,500,junk\n" +
		"2024-01-01,\"Initech, Inc.\",security,Tech,65,,,,\n" +
		"   \n" +
		"2024-01-02,Globex,cloud,Tech,notanumber\n" +
		"2024-01-03,Hooli,ai,Tech,\n"

	records, err := ParseFile(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records (blank row skipped), got %d", len(records))
	}

	acme := records[0]
	if acme.CompanyName != "Acme" || acme.Score != 80 || !acme.ScoreValid {
		t.Fatalf("acme row: %+v", acme)
	}
	if acme.Website != "acme.com" {
		t.Fatalf("website not mapped: %+v", acme)
	}
	if acme.AlexaRank == nil || *acme.AlexaRank != 1200 {
		t.Fatalf("alexa rank not coerced: %+v", acme.AlexaRank)
	}
	if acme.Employees == nil || *acme.Employees != 500 {
		t.Fatalf("employees not coerced: %+v", acme.Employees)
	}

	// Quoted comma must not shift columns.
	initech := records[1]
	if initech.CompanyName != "Initech, Inc." {
		t.Fatalf("quoted company name mangled: %q", initech.CompanyName)
	}
	if initech.Score != 65 || !initech.ScoreValid {
		t.Fatalf("initech score shifted: %+v", initech)
	}
	if initech.AlexaRank != nil {
		t.Fatalf("empty alexa rank should be nil")
	}

	// Non-numeric score is kept but flagged invalid, and the short row
	// pads missing trailing cells.
	globex := records[2]
	if globex.ScoreValid || globex.Score != 0 {
		t.Fatalf("non-numeric score should be invalid: %+v", globex)
	}
	if globex.Website != "" {
		t.Fatalf("missing trailing cell should be empty: %+v", globex)
	}

	// Empty score cell counts as zero, still valid.
	hooli := records[3]
	if !hooli.ScoreValid || hooli.Score != 0 {
		t.Fatalf("empty score should be valid zero: %+v", hooli)
	}
}

func TestTransformRowScoreContract(t *testing.T) {
	headers := []string{"Date", "Company Name", "Topic", "Category", "Score"}
	cases := []struct {
		raw   string
		score int
		valid bool
	}{
		{"80", 80, true},
		{"0", 0, true},
		{"100", 100, true},
		{"", 0, true},
		{"notanumber", 0, false},
		{"NaN", 0, false},
		{"8.5", 8, true},
		{"-3.7", -3, true},
		{"12px", 12, true},
		{"+5", 5, true},
		{"-", 0, false},
		{".5", 0, false},
	}
	for _, tc := range cases {
		rec, ok := TransformRow(headers, []string{"2024-01-01", "Acme", "cloud", "Tech", tc.raw})
		if !ok {
			t.Fatalf("row with score %q skipped", tc.raw)
		}
		if rec.Score != tc.score || rec.ScoreValid != tc.valid {
			t.Fatalf("score %q: got (%d, %v), want (%d, %v)", tc.raw, rec.Score, rec.ScoreValid, tc.score, tc.valid)
		}
	}
}

func TestTransformRowSkipsBlankRows(t *testing.T) {
	headers := []string{"Date", "Company Name", "Topic", "Category", "Score"}
	if _, ok := TransformRow(headers, []string{"", "  ", "", "", ""}); ok {
		t.Fatalf("blank row should be skipped")
	}
	if _, ok := TransformRow(headers, []string{}); ok {
		t.Fatalf("empty row should be skipped")
	}
}
