package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	intentrepo "github.com/yungbote/intentpulse-backend/internal/data/repos/intent"
	"github.com/yungbote/intentpulse-backend/internal/http/response"
	"github.com/yungbote/intentpulse-backend/internal/ingest"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
	"github.com/yungbote/intentpulse-backend/internal/services"
)

type IntentHandler struct {
	log           *logger.Logger
	uploadService services.UploadService
	intentService services.IntentService
	exportService services.ExportService
}

func NewIntentHandler(
	log *logger.Logger,
	uploadService services.UploadService,
	intentService services.IntentService,
	exportService services.ExportService,
) *IntentHandler {
	return &IntentHandler{
		log:           log.With("handler", "IntentHandler"),
		uploadService: uploadService,
		intentService: intentService,
		exportService: exportService,
	}
}

// Upload ingests one multipart file. Partial batch failure is a
// qualified success: 200 with status "partial" and both counts, so the
// UI can tell the user how many rows did not land.
func (h *IntentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}

	var weekLabel *string
	if v := c.PostForm("week_label"); v != "" {
		weekLabel = &v
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}
	defer f.Close()

	res, err := h.uploadService.UploadFile(c.Request.Context(), fileHeader.Filename, f, weekLabel)
	if err != nil {
		var fe *ingest.FormatError
		switch {
		case errors.As(err, &fe):
			response.RespondError(c, http.StatusBadRequest, "invalid_format", err)
		case errors.Is(err, services.ErrReadOnly):
			response.RespondError(c, http.StatusServiceUnavailable, "read_only", err)
		default:
			h.log.Error("upload failed", "file", fileHeader.Filename, "error", err)
			response.RespondError(c, http.StatusInternalServerError, "upload_failed", err)
		}
		return
	}

	if errors.Is(res.Err, ingest.ErrTotalInsert) {
		c.JSON(http.StatusBadGateway, gin.H{
			"status":        res.Status,
			"upload_run_id": res.UploadRunID,
			"row_count":     res.RowCount,
			"inserted":      res.InsertedCount,
			"failed":        res.FailedCount,
			"message":       fmt.Sprintf("parsed %d records but none could be saved", res.RowCount),
		})
		return
	}

	payload := gin.H{
		"status":        res.Status,
		"upload_run_id": res.UploadRunID,
		"row_count":     res.RowCount,
		"inserted":      res.InsertedCount,
		"failed":        res.FailedCount,
	}
	if errors.Is(res.Err, ingest.ErrPartialInsert) {
		payload["message"] = fmt.Sprintf("processed %d records; %d could not be saved", res.InsertedCount, res.FailedCount)
	}
	response.RespondOK(c, payload)
}

func (h *IntentHandler) ListRecords(c *gin.Context) {
	filter := filterFromQuery(c)

	records, err := h.intentService.List(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("ListRecords failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "load_records_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"records": records})
}

func (h *IntentHandler) ListWeeks(c *gin.Context) {
	weeks, err := h.intentService.Weeks(c.Request.Context())
	if err != nil {
		h.log.Error("ListWeeks failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "load_weeks_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"weeks": weeks})
}

func (h *IntentHandler) Stats(c *gin.Context) {
	stats, err := h.intentService.Stats(c.Request.Context())
	if err != nil {
		h.log.Error("Stats failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "load_stats_failed", err)
		return
	}
	response.RespondOK(c, stats)
}

func (h *IntentHandler) Export(c *gin.Context) {
	filter := filterFromQuery(c)

	fileName := fmt.Sprintf("intent-records-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)

	n, err := h.exportService.WriteCSV(c.Request.Context(), filter, c.Writer)
	if err != nil {
		h.log.Error("Export failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "export_failed", err)
		return
	}
	h.log.Info("export served", "records", n, "file", fileName)
}

func filterFromQuery(c *gin.Context) intentrepo.Filter {
	var filter intentrepo.Filter
	if v := c.Query("date"); v != "" {
		filter.Date = &v
	}
	if v := c.Query("week_label"); v != "" {
		filter.WeekLabel = &v
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	return filter
}
