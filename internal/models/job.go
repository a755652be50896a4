package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is a posting in the catalog. Skills and AccessibilityFeatures are
// nullable: a missing skills field degrades matching to the description, it
// never disqualifies the posting.
type Job struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title                 string    `gorm:"type:text;not null;index" json:"title"`
	Company               string    `gorm:"type:text;not null;index" json:"company"`
	Description           string    `gorm:"type:text;not null" json:"description"`
	Skills                *string   `gorm:"type:text" json:"skills,omitempty"`
	Location              string    `gorm:"type:text;not null" json:"location"`
	IsRemote              bool      `gorm:"not null;default:false" json:"is_remote"`
	IsInclusive           bool      `gorm:"not null;default:false" json:"is_inclusive"`
	AccessibilityFeatures *string   `gorm:"type:text" json:"accessibility_features,omitempty"`
	SalaryMin             *float64  `gorm:"type:decimal(12,2)" json:"salary_min,omitempty"`
	SalaryMax             *float64  `gorm:"type:decimal(12,2)" json:"salary_max,omitempty"`
	ApplicationURL        string    `gorm:"type:text" json:"application_url,omitempty"`
	CreatedAt             time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt             time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}
