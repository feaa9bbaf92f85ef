package models

import (
	"time"
)

// Status reschedule request
const (
	ReschedulePending  = "pending"
	RescheduleApproved = "approved"
	RescheduleRejected = "rejected"
)

type RescheduleRequest struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	TimetableID  uint      `gorm:"not null;index" json:"timetable_id"`
	AssignmentID *uint     `gorm:"index" json:"assignment_id,omitempty"`
	Reason       string    `gorm:"type:text" json:"reason"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
