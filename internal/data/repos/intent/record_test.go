package intent

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/intentpulse-backend/internal/data/repos/testutil"
	"github.com/yungbote/intentpulse-backend/internal/domain"
)

func TestRecordRepoCreateAndList(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewRecordRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "recordrepo@example.com")

	week := "W1 2024"
	records := []*domain.IntentRecord{
		{ID: uuid.New(), Date: "2024-01-01", CompanyName: "Acme", Topic: "cloud", Category: "Tech", Score: 80, ScoreValid: true, WeekLabel: &week, UserID: testutil.PtrUUID(u.ID)},
		{ID: uuid.New(), Date: "2024-01-02", CompanyName: "Globex", Topic: "security", Category: "Tech", Score: 90, ScoreValid: true, UserID: testutil.PtrUUID(u.ID)},
	}
	if _, err := repo.CreateBatch(ctx, tx, records); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	if rows, err := repo.List(ctx, tx, Filter{}); err != nil || len(rows) != 2 {
		t.Fatalf("List all: err=%v len=%d", err, len(rows))
	}

	date := "2024-01-01"
	if rows, err := repo.List(ctx, tx, Filter{Date: &date}); err != nil || len(rows) != 1 || rows[0].CompanyName != "Acme" {
		t.Fatalf("List by date: err=%v len=%d", err, len(rows))
	}

	if rows, err := repo.List(ctx, tx, Filter{WeekLabel: &week}); err != nil || len(rows) != 1 {
		t.Fatalf("List by week: err=%v len=%d", err, len(rows))
	}

	if rows, err := repo.List(ctx, tx, Filter{Limit: 1}); err != nil || len(rows) != 1 {
		t.Fatalf("List with limit: err=%v len=%d", err, len(rows))
	}

	ids := []uuid.UUID{records[0].ID}
	if rows, err := repo.GetByIDs(ctx, tx, ids); err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
}

func TestRecordRepoAggregateQueries(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewRecordRepo(db, testutil.Logger(t))

	week := "W2 2024"
	testutil.SeedIntentRecord(t, ctx, tx, "Acme", 80, func(r *domain.IntentRecord) { r.WeekLabel = &week })
	testutil.SeedIntentRecord(t, ctx, tx, "Acme", 60)
	testutil.SeedIntentRecord(t, ctx, tx, "Globex", 90)
	// Unparseable source score: persisted but excluded from numeric reads.
	testutil.SeedIntentRecord(t, ctx, tx, "Initech", 0, func(r *domain.IntentRecord) { r.ScoreValid = false })

	if n, err := repo.CountAll(ctx, tx); err != nil || n != 4 {
		t.Fatalf("CountAll: err=%v n=%d", err, n)
	}
	if n, err := repo.CountDistinctCompanies(ctx, tx); err != nil || n != 3 {
		t.Fatalf("CountDistinctCompanies: err=%v n=%d", err, n)
	}
	avg, err := repo.AverageScore(ctx, tx)
	if err != nil {
		t.Fatalf("AverageScore: %v", err)
	}
	if avg < 76.0 || avg > 77.0 {
		t.Fatalf("AverageScore = %v, want (80+60+90)/3", avg)
	}
	labels, err := repo.DistinctWeekLabels(ctx, tx)
	if err != nil || len(labels) != 1 || labels[0] != week {
		t.Fatalf("DistinctWeekLabels: err=%v labels=%v", err, labels)
	}
}

func TestRecordRepoDeleteByUploadRun(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewRecordRepo(db, testutil.Logger(t))

	run := testutil.SeedUploadRun(t, ctx, tx, nil)
	testutil.SeedIntentRecord(t, ctx, tx, "Acme", 70, func(r *domain.IntentRecord) { r.UploadRunID = testutil.PtrUUID(run.ID) })
	testutil.SeedIntentRecord(t, ctx, tx, "Globex", 75, func(r *domain.IntentRecord) { r.UploadRunID = testutil.PtrUUID(run.ID) })
	testutil.SeedIntentRecord(t, ctx, tx, "Hooli", 50)

	n, err := repo.DeleteByUploadRun(ctx, tx, run.ID)
	if err != nil || n != 2 {
		t.Fatalf("DeleteByUploadRun: err=%v n=%d", err, n)
	}
	if total, err := repo.CountAll(ctx, tx); err != nil || total != 1 {
		t.Fatalf("after delete CountAll: err=%v n=%d", err, total)
	}
}
