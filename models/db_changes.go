package models

import (
	"time"
)

// Nama tabel yang dipantau oleh change monitor
const (
	TableNotifications      = "notifications"
	TableAssignments        = "assignments"
	TableRescheduleRequests = "reschedule_requests"
)

// Action type untuk change feed
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

type DBChange struct {
	ID         uint      `gorm:"primaryKey"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_action"`
	RecordID   int64     `gorm:"not null"`
	ActionType string    `gorm:"type:varchar(10);not null;index:idx_table_action"`
	ChangedAt  time.Time `gorm:"not null"`
	Processed  bool      `gorm:"default:false;index:idx_processed"`
}
