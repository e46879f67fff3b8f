package intent

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/intentpulse-backend/internal/data/repos/testutil"
	"github.com/yungbote/intentpulse-backend/internal/domain"
)

func TestUploadRunRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUploadRunRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "uploadrunrepo@example.com")

	run := &domain.UploadRun{
		ID:            uuid.New(),
		UserID:        testutil.PtrUUID(u.ID),
		FileName:      "intent-week1.csv",
		RowCount:      120,
		InsertedCount: 100,
		FailedCount:   20,
		Status:        domain.UploadRunStatusPartial,
	}
	if _, err := repo.Create(ctx, tx, []*domain.UploadRun{run}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{run.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	rows, err := repo.GetByUserIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByUserIDs: err=%v len=%d", err, len(rows))
	}
	if rows[0].Status != domain.UploadRunStatusPartial || rows[0].InsertedCount != 100 {
		t.Fatalf("unexpected run row: %+v", rows[0])
	}
}
