package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	UploadRunStatusCompleted = "completed"
	UploadRunStatusPartial   = "partial"
	UploadRunStatusFailed    = "failed"
)

// UploadRun is the audit row for one file upload. Batch inserts are
// best-effort, so a run can finish partial: some batches landed, some
// did not, and BatchErrors keeps the per-batch failure detail.
type UploadRun struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        *uuid.UUID     `gorm:"type:uuid;column:user_id;index" json:"user_id,omitempty"`
	User          *User          `gorm:"constraint:OnDelete:SET NULL;foreignKey:UserID;references:ID" json:"user,omitempty"`
	FileName      string         `gorm:"column:file_name;not null" json:"file_name"`
	WeekLabel     *string        `gorm:"column:week_label" json:"week_label,omitempty"`
	RowCount      int            `gorm:"column:row_count;not null;default:0" json:"row_count"`
	InsertedCount int            `gorm:"column:inserted_count;not null;default:0" json:"inserted_count"`
	FailedCount   int            `gorm:"column:failed_count;not null;default:0" json:"failed_count"`
	Status        string         `gorm:"column:status;not null" json:"status"`
	BatchErrors   datatypes.JSON `gorm:"column:batch_errors;type:jsonb" json:"batch_errors,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (UploadRun) TableName() string { return "upload_run" }
