package models

import (
	"time"
)

type Subject struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Code         string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"code"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Abbreviation *string   `gorm:"type:varchar(20)" json:"abbreviation,omitempty"`
	SubjectType  string    `gorm:"type:varchar(20);not null;default:'Theory'" json:"subject_type"`
	HoursPerWeek int       `gorm:"not null;default:0" json:"hours_per_week"`
	Credits      int       `gorm:"not null;default:0" json:"credits"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// DisplayAbbreviation mengembalikan singkatan subject, fallback ke code
func (s *Subject) DisplayAbbreviation() string {
	if s.Abbreviation != nil && *s.Abbreviation != "" {
		return *s.Abbreviation
	}
	return s.Code
}
