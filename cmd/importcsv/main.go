package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/intentpulse-backend/internal/app"
	"github.com/yungbote/intentpulse-backend/internal/ingest"
	"github.com/yungbote/intentpulse-backend/internal/platform/ctxutil"
)

type fileList []string

func (l *fileList) String() string { return strings.Join(*l, ",") }
func (l *fileList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v != "" {
		*l = append(*l, v)
	}
	return nil
}

func main() {
	var files fileList
	var week string
	var user string
	var dryRun bool
	flag.Var(&files, "file", "csv file to import (repeatable)")
	flag.StringVar(&week, "week", "", "week label stamped on every imported row")
	flag.StringVar(&user, "user", "", "user id to attribute the import to")
	flag.BoolVar(&dryRun, "dry-run", false, "parse and report counts without persisting")
	flag.Parse()

	if len(files) == 0 {
		fmt.Println("no -file given")
		os.Exit(1)
	}

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()
	if user != "" {
		id, err := uuid.Parse(strings.TrimSpace(user))
		if err != nil {
			fmt.Printf("invalid -user: %v\n", err)
			os.Exit(1)
		}
		ctx = ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: id})
	}

	var weekLabel *string
	if w := strings.TrimSpace(week); w != "" {
		weekLabel = &w
	}

	exitCode := 0
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			fmt.Printf("open %s: %v\n", path, err)
			exitCode = 1
			continue
		}

		if dryRun {
			parsed, err := ingest.ParseFile(f)
			f.Close()
			if err != nil {
				fmt.Printf("[dry-run] %s: %v\n", path, err)
				exitCode = 1
				continue
			}
			valid := 0
			for _, rec := range parsed {
				if rec.ScoreValid {
					valid++
				}
			}
			fmt.Printf("[dry-run] %s: %d rows (%d with usable scores)\n", path, len(parsed), valid)
			continue
		}

		result, err := application.Services.Upload.UploadFile(ctx, filepath.Base(path), f, weekLabel)
		f.Close()
		if err != nil {
			fmt.Printf("import %s: %v\n", path, err)
			exitCode = 1
			continue
		}
		if errors.Is(result.Err, ingest.ErrTotalInsert) {
			fmt.Printf("import %s: no rows saved (%d batches failed)\n", path, len(result.BatchErrors))
			exitCode = 1
			continue
		}
		if errors.Is(result.Err, ingest.ErrPartialInsert) {
			fmt.Printf("import %s: partial, inserted=%d failed=%d\n", path, result.InsertedCount, result.FailedCount)
			exitCode = 1
			continue
		}
		fmt.Printf("import %s: inserted=%d\n", path, result.InsertedCount)
	}
	os.Exit(exitCode)
}
