package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/intentpulse-backend/internal/domain"
	"github.com/yungbote/intentpulse-backend/internal/ingest"
	"github.com/yungbote/intentpulse-backend/internal/platform/ctxutil"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
	"github.com/yungbote/intentpulse-backend/internal/platform/rediscache"
)

// ErrReadOnly rejects writes when the service runs in read-only mode.
var ErrReadOnly = fmt.Errorf("service is in read-only mode")

type UploadService interface {
	UploadFile(ctx context.Context, fileName string, r io.Reader, weekLabel *string) (*ingest.Result, error)
}

type uploadService struct {
	log      *logger.Logger
	ingestor *ingest.Ingestor
	cache    *rediscache.Cache
	readOnly bool
}

func NewUploadService(baseLog *logger.Logger, ingestor *ingest.Ingestor, cache *rediscache.Cache, readOnly bool) UploadService {
	serviceLog := baseLog.With("service", "UploadService")
	return &uploadService{
		log:      serviceLog,
		ingestor: ingestor,
		cache:    cache,
		readOnly: readOnly,
	}
}

// UploadFile runs the whole ingestion path for one uploaded file:
// extension check, header validation, row transform, batched persist.
// A partial insert comes back as a Result with Err set to
// ingest.ErrPartialInsert, not as a failed call.
func (us *uploadService) UploadFile(ctx context.Context, fileName string, r io.Reader, weekLabel *string) (*ingest.Result, error) {
	if us.readOnly {
		return nil, ErrReadOnly
	}
	if !strings.HasSuffix(strings.ToLower(fileName), ".csv") {
		return nil, &ingest.FormatError{Reason: "only .csv files are accepted"}
	}

	parsed, err := ingest.ParseFile(r)
	if err != nil {
		return nil, err
	}

	if weekLabel != nil {
		trimmed := strings.TrimSpace(*weekLabel)
		if trimmed == "" {
			weekLabel = nil
		} else {
			weekLabel = &trimmed
		}
	}

	var userID *uuid.UUID
	if rd := ctxutil.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil {
		id := rd.UserID
		userID = &id
	}

	res := us.ingestor.Ingest(ctx, parsed, ingest.Options{
		FileName:  fileName,
		WeekLabel: weekLabel,
		UserID:    userID,
	})

	us.log.Info("upload processed",
		"file", fileName,
		"rows", res.RowCount,
		"inserted", res.InsertedCount,
		"failed", res.FailedCount,
		"status", res.Status,
	)

	if res.InsertedCount > 0 && res.Status != domain.UploadRunStatusFailed {
		if err := us.cache.InvalidatePrefix(ctx); err != nil {
			us.log.Warn("analytics cache invalidation failed", "error", err)
		}
	}

	return &res, nil
}
