package models

import (
	"time"

	"gorm.io/datatypes"
)

// Tipe notifikasi
const (
	NotifInfo    = "info"
	NotifSuccess = "success"
	NotifWarning = "warning"
	NotifError   = "error"
)

// Kategori notifikasi
const (
	CategoryTimetable  = "timetable"
	CategoryAssignment = "assignment"
	CategoryReschedule = "reschedule"
	CategorySystem     = "system"
)

type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Title     string         `gorm:"type:varchar(100);not null" json:"title"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Type      string         `gorm:"type:varchar(20);not null;default:'info'" json:"type"`
	Category  string         `gorm:"type:varchar(20);not null;default:'system'" json:"category"`
	Read      bool           `gorm:"not null;default:false;index" json:"read"`
	Data      datatypes.JSON `json:"data,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

// ValidNotifType memeriksa keanggotaan enum tipe notifikasi
func ValidNotifType(t string) bool {
	switch t {
	case NotifInfo, NotifSuccess, NotifWarning, NotifError:
		return true
	}
	return false
}

// ValidNotifCategory memeriksa keanggotaan enum kategori
func ValidNotifCategory(c string) bool {
	switch c {
	case CategoryTimetable, CategoryAssignment, CategoryReschedule, CategorySystem:
		return true
	}
	return false
}
