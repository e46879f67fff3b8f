package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/intentpulse-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedIntentRecord(tb testing.TB, ctx context.Context, tx *gorm.DB, company string, score int, mutate ...func(*domain.IntentRecord)) *domain.IntentRecord {
	tb.Helper()
	rec := &domain.IntentRecord{
		ID:          uuid.New(),
		Date:        "2024-01-01",
		CompanyName: company,
		Topic:       "cloud migration",
		Category:    "TECHNOLOGY",
		Score:       score,
		ScoreValid:  true,
	}
	for _, m := range mutate {
		m(rec)
	}
	if err := tx.WithContext(ctx).Create(rec).Error; err != nil {
		tb.Fatalf("seed intent record: %v", err)
	}
	return rec
}

func SeedUploadRun(tb testing.TB, ctx context.Context, tx *gorm.DB, userID *uuid.UUID) *domain.UploadRun {
	tb.Helper()
	run := &domain.UploadRun{
		ID:       uuid.New(),
		UserID:   userID,
		FileName: "signals.csv",
		Status:   domain.UploadRunStatusCompleted,
	}
	if err := tx.WithContext(ctx).Create(run).Error; err != nil {
		tb.Fatalf("seed upload run: %v", err)
	}
	return run
}

func PtrUUID(id uuid.UUID) *uuid.UUID { return &id }

func PtrString(s string) *string { return &s }
