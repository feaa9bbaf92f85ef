package models

import (
	"time"

	"gorm.io/datatypes"
)

type Faculty struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Email           *string        `gorm:"type:varchar(100)" json:"email,omitempty"`
	Specialization  datatypes.JSON `json:"specialization,omitempty"` // daftar string berurutan
	MaxHoursPerWeek *int           `json:"max_hours_per_week,omitempty"`
	DepartmentID    *uint          `gorm:"index" json:"department_id,omitempty"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}
