package domain

import (
	"time"

	"github.com/google/uuid"
)

// IntentRecord is one observed intent signal: a company researching a
// topic on a given date with a 0-100 strength score. CompanyName is the
// grouping key for all analytics; there is no canonical company
// identity, so names that differ in spelling group separately.
type IntentRecord struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Date              string     `gorm:"column:date;not null;index" json:"date"`
	CompanyName       string     `gorm:"column:company_name;not null" json:"company_name"`
	Topic             string     `gorm:"column:topic" json:"topic"`
	Category          string     `gorm:"column:category" json:"category"`
	Score             int        `gorm:"column:score;not null;default:0" json:"score"`
	ScoreValid        bool       `gorm:"column:score_valid;not null;default:true" json:"score_valid"`
	Website           string     `gorm:"column:website" json:"website"`
	SecondaryIndustry string     `gorm:"column:secondary_industry_hierarchical_category" json:"secondary_industry_hierarchical_category"`
	AlexaRank         *int       `gorm:"column:alexa_rank" json:"alexa_rank,omitempty"`
	Employees         *int       `gorm:"column:employees" json:"employees,omitempty"`
	WeekLabel         *string    `gorm:"column:week_label;index" json:"week_label,omitempty"`
	UserID            *uuid.UUID `gorm:"type:uuid;column:user_id;index" json:"user_id,omitempty"`
	User              *User      `gorm:"constraint:OnDelete:SET NULL;foreignKey:UserID;references:ID" json:"user,omitempty"`
	UploadRunID       *uuid.UUID `gorm:"type:uuid;column:upload_run_id;index" json:"upload_run_id,omitempty"`
	CreatedAt         time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (IntentRecord) TableName() string { return "intent_record" }
