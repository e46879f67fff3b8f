package services

import (
	"context"
	"io"

	intentrepo "github.com/yungbote/intentpulse-backend/internal/data/repos/intent"
	"github.com/yungbote/intentpulse-backend/internal/export"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
)

type ExportService interface {
	WriteCSV(ctx context.Context, filter intentrepo.Filter, w io.Writer) (int, error)
}

type exportService struct {
	log    *logger.Logger
	intent IntentService
}

func NewExportService(baseLog *logger.Logger, intent IntentService) ExportService {
	serviceLog := baseLog.With("service", "ExportService")
	return &exportService{log: serviceLog, intent: intent}
}

// WriteCSV streams the filtered record set as the fixed-column export.
// Returns the number of records written.
func (es *exportService) WriteCSV(ctx context.Context, filter intentrepo.Filter, w io.Writer) (int, error) {
	records, err := es.intent.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	if err := export.Write(w, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
