package ingest

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	intentrepo "github.com/yungbote/intentpulse-backend/internal/data/repos/intent"
	"github.com/yungbote/intentpulse-backend/internal/domain"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
)

const DefaultBatchSize = 50

var (
	// ErrTotalInsert means every batch failed and nothing was persisted.
	ErrTotalInsert = errors.New("no records could be saved")
	// ErrPartialInsert means at least one batch failed but others landed.
	// Callers must surface this as degraded success, not as failure.
	ErrPartialInsert = errors.New("some records could not be saved")
)

type BatchError struct {
	Batch int    `json:"batch"`
	Size  int    `json:"size"`
	Error string `json:"error"`
}

type Result struct {
	UploadRunID   uuid.UUID    `json:"upload_run_id"`
	RowCount      int          `json:"row_count"`
	InsertedCount int          `json:"inserted_count"`
	FailedCount   int          `json:"failed_count"`
	Status        string       `json:"status"`
	BatchErrors   []BatchError `json:"batch_errors,omitempty"`
	Err           error        `json:"-"`
}

type Options struct {
	FileName  string
	WeekLabel *string
	UserID    *uuid.UUID
}

type Ingestor struct {
	log       *logger.Logger
	records   intentrepo.RecordRepo
	runs      intentrepo.UploadRunRepo
	batchSize int
}

func NewIngestor(baseLog *logger.Logger, records intentrepo.RecordRepo, runs intentrepo.UploadRunRepo, batchSize int) *Ingestor {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Ingestor{
		log:       baseLog.With("component", "Ingestor"),
		records:   records,
		runs:      runs,
		batchSize: batchSize,
	}
}

// Ingest persists the parsed records in fixed-size batches, submitted
// sequentially in input order. A failed batch does not stop later
// batches; there is no rollback across batches. The week label and
// uploader are stamped onto every row before the first insert.
func (ing *Ingestor) Ingest(ctx context.Context, parsed []domain.IntentRecord, opts Options) Result {
	runID := uuid.New()

	rows := make([]*domain.IntentRecord, len(parsed))
	for i := range parsed {
		rec := parsed[i]
		rec.ID = uuid.New()
		rec.WeekLabel = opts.WeekLabel
		rec.UserID = opts.UserID
		rec.UploadRunID = &runID
		rows[i] = &rec
	}

	res := Result{UploadRunID: runID, RowCount: len(rows)}

	for start := 0; start < len(rows); start += ing.batchSize {
		end := start + ing.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]
		batchNo := start/ing.batchSize + 1

		if _, err := ing.records.CreateBatch(ctx, nil, batch); err != nil {
			ing.log.Error("batch insert failed", "batch", batchNo, "size", len(batch), "error", err)
			res.FailedCount += len(batch)
			res.BatchErrors = append(res.BatchErrors, BatchError{
				Batch: batchNo,
				Size:  len(batch),
				Error: err.Error(),
			})
			continue
		}
		res.InsertedCount += len(batch)
	}

	switch {
	case len(res.BatchErrors) == 0:
		res.Status = domain.UploadRunStatusCompleted
	case res.InsertedCount == 0:
		res.Status = domain.UploadRunStatusFailed
		res.Err = ErrTotalInsert
	default:
		res.Status = domain.UploadRunStatusPartial
		res.Err = ErrPartialInsert
	}

	ing.recordRun(ctx, runID, opts, &res)
	return res
}

// recordRun writes the audit row for the upload. Best effort: a failed
// audit write never changes the ingest outcome.
func (ing *Ingestor) recordRun(ctx context.Context, runID uuid.UUID, opts Options, res *Result) {
	if ing.runs == nil {
		return
	}
	run := &domain.UploadRun{
		ID:            runID,
		UserID:        opts.UserID,
		FileName:      opts.FileName,
		WeekLabel:     opts.WeekLabel,
		RowCount:      res.RowCount,
		InsertedCount: res.InsertedCount,
		FailedCount:   res.FailedCount,
		Status:        res.Status,
	}
	if len(res.BatchErrors) > 0 {
		if raw, err := json.Marshal(res.BatchErrors); err == nil {
			run.BatchErrors = datatypes.JSON(raw)
		}
	}
	if _, err := ing.runs.Create(ctx, nil, []*domain.UploadRun{run}); err != nil {
		ing.log.Warn("could not record upload run", "upload_run_id", runID, "error", err)
	}
}
