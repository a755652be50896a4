package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a job seeker profile. Accessibility fields are only consulted by the
// recommender when HasDisability is set; otherwise they are neutral.
type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email              string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	FullName           string    `gorm:"type:text;not null" json:"full_name"`
	Skills             string    `gorm:"type:text" json:"skills"`
	HasDisability      bool      `gorm:"not null;default:false" json:"has_disability"`
	DisabilityType     string    `gorm:"type:text" json:"disability_type"`
	AccessibilityNeeds string    `gorm:"type:text" json:"accessibility_needs"`
	ResumeFilename     string    `gorm:"type:text" json:"resume_filename,omitempty"`
	CreatedAt          time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt          time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (u *User) TableName() string {
	return "users"
}
