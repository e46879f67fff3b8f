package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	intentrepo "github.com/yungbote/intentpulse-backend/internal/data/repos/intent"
	"github.com/yungbote/intentpulse-backend/internal/domain"
	"github.com/yungbote/intentpulse-backend/internal/ingest"
	"github.com/yungbote/intentpulse-backend/internal/platform/logger"
	"github.com/yungbote/intentpulse-backend/internal/services"
)

type fakeUploadService struct {
	result *ingest.Result
	err    error
}

func (f *fakeUploadService) UploadFile(ctx context.Context, fileName string, r io.Reader, weekLabel *string) (*ingest.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeIntentService struct {
	records []*domain.IntentRecord
	weeks   []string
	stats   *services.IntentStats
}

func (f *fakeIntentService) List(ctx context.Context, filter intentrepo.Filter) ([]*domain.IntentRecord, error) {
	return f.records, nil
}

func (f *fakeIntentService) Weeks(ctx context.Context) ([]string, error) {
	return f.weeks, nil
}

func (f *fakeIntentService) Stats(ctx context.Context) (*services.IntentStats, error) {
	return f.stats, nil
}

func handlerLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func newUploadRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "records.csv")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte(body)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/intent/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func uploadRouter(t *testing.T, upload services.UploadService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewIntentHandler(handlerLogger(t), upload, &fakeIntentService{}, nil)
	r := gin.New()
	r.POST("/api/intent/upload", h.Upload)
	return r
}

func TestUploadPartialReturnsOKWithCounts(t *testing.T) {
	upload := &fakeUploadService{result: &ingest.Result{
		UploadRunID:   uuid.New(),
		RowCount:      150,
		InsertedCount: 100,
		FailedCount:   50,
		Status:        domain.UploadRunStatusPartial,
		Err:           ingest.ErrPartialInsert,
	}}
	r := uploadRouter(t, upload)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newUploadRequest(t, "Date,Company Name,Topic,Category,Score\n2024-01-01,Acme,T,C,70\n"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != domain.UploadRunStatusPartial {
		t.Fatalf("status field = %v, want partial", body["status"])
	}
	if body["inserted"].(float64) != 100 || body["failed"].(float64) != 50 {
		t.Fatalf("counts = %v/%v, want 100/50", body["inserted"], body["failed"])
	}
	if body["message"] == nil {
		t.Fatalf("partial response should carry a message")
	}
}

func TestUploadTotalFailureReturnsBadGateway(t *testing.T) {
	upload := &fakeUploadService{result: &ingest.Result{
		UploadRunID: uuid.New(),
		RowCount:    10,
		FailedCount: 10,
		Status:      domain.UploadRunStatusFailed,
		Err:         ingest.ErrTotalInsert,
	}}
	r := uploadRouter(t, upload)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newUploadRequest(t, "Date,Company Name,Topic,Category,Score\n2024-01-01,Acme,T,C,70\n"))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
}

func TestUploadFormatErrorReturnsBadRequest(t *testing.T) {
	upload := &fakeUploadService{err: &ingest.FormatError{
		Reason:         "missing required columns",
		MissingColumns: []string{"Score"},
	}}
	r := uploadRouter(t, upload)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newUploadRequest(t, "Date,Company Name\n2024-01-01,Acme\n"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if envelope.Error.Code != "invalid_format" {
		t.Fatalf("error code = %q, want invalid_format", envelope.Error.Code)
	}
}

func TestUploadReadOnlyReturnsServiceUnavailable(t *testing.T) {
	upload := &fakeUploadService{err: services.ErrReadOnly}
	r := uploadRouter(t, upload)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newUploadRequest(t, "Date,Company Name,Topic,Category,Score\n2024-01-01,Acme,T,C,70\n"))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestStatsPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	intent := &fakeIntentService{stats: &services.IntentStats{
		TotalRecords:      12,
		DistinctCompanies: 4,
		AverageScore:      71.5,
		WeekCount:         2,
	}}
	h := NewIntentHandler(handlerLogger(t), nil, intent, nil)
	r := gin.New()
	r.GET("/api/intent/stats", h.Stats)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/intent/stats", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var stats services.IntentStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stats.TotalRecords != 12 || stats.AverageScore != 71.5 {
		t.Fatalf("stats = %+v", stats)
	}
}
