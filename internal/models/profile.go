package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds a user's extended developer profile. Each user has at most
// one profile (enforced by the unique index on UserID).
type Profile struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	UserID         uint              `gorm:"uniqueIndex;not null" json:"user_id"`
	User           User              `gorm:"foreignKey:UserID" json:"user"`
	Company        string            `json:"company"`
	Location       string            `json:"location"`
	Website        string            `json:"website"`
	Bio            string            `json:"bio"`
	Status         string            `gorm:"not null" json:"status"`
	GithubUsername string            `json:"github_username"`
	Skills         []string          `gorm:"serializer:json" json:"skills"`
	Social         map[string]string `gorm:"serializer:json" json:"social"`
	Experience     []Experience      `gorm:"foreignKey:ProfileID" json:"experience"`
	Education      []Education       `gorm:"foreignKey:ProfileID" json:"education"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`
}

// Experience is a work-history entry on a profile. Entries are identified by
// a generated UUID so they can be removed individually, and are listed most
// recent first.
type Experience struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProfileID   uint       `gorm:"not null;index" json:"profile_id"`
	Title       string     `gorm:"not null" json:"title"`
	Company     string     `gorm:"not null" json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `gorm:"not null" json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

// BeforeCreate assigns a UUID when the entry has no ID yet.
func (e *Experience) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// Education is a schooling entry on a profile, with the same identity and
// ordering rules as Experience.
type Education struct {
	ID           string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProfileID    uint       `gorm:"not null;index" json:"profile_id"`
	School       string     `gorm:"not null" json:"school"`
	Degree       string     `gorm:"not null" json:"degree"`
	FieldOfStudy string     `gorm:"not null" json:"field_of_study"`
	From         time.Time  `gorm:"not null" json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (e *Education) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}
