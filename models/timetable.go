package models

import (
	"time"
)

// Days adalah urutan hari tetap untuk grid timetable (6 hari)
var Days = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT"}

// TimeSlots adalah 7 slot waktu tetap, sesuai urutan tampil
var TimeSlots = []string{
	"9:00 to 9:55",
	"9:55 to 10:50",
	"11:05 to 12:00",
	"12:00 to 12:55",
	"1:45 to 2:40",
	"2:40 to 3:35",
	"3:35 to 4:30",
}

// Tipe assignment yang dikenal
const (
	TypeTheory    = "Theory"
	TypeLab       = "Lab"
	TypePractical = "Practical"
	TypeTutorial  = "Tutorial"
)

type Timetable struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Department  string       `gorm:"type:varchar(100);not null" json:"department"`
	Year        string       `gorm:"type:varchar(20);not null" json:"year"`
	Section     string       `gorm:"type:varchar(10);not null" json:"section"`
	Semester    string       `gorm:"type:varchar(20)" json:"semester,omitempty"`
	GeneratedAt time.Time    `json:"generated_at"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
	Assignments []Assignment `gorm:"foreignKey:TimetableID" json:"assignments"`
}

type Assignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TimetableID uint      `gorm:"not null;index;uniqueIndex:idx_cell,priority:1" json:"timetable_id"`
	Day         string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_cell,priority:2" json:"day"`
	TimeSlot    string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_cell,priority:3" json:"time_slot"`
	SubjectCode string    `gorm:"type:varchar(20);not null" json:"subject_code"`
	SubjectName string    `gorm:"type:varchar(100)" json:"subject_name"`
	FacultyName string    `gorm:"type:varchar(100)" json:"faculty_name"`
	Type        string    `gorm:"type:varchar(20);not null;default:'Theory'" json:"type"`
	Room        string    `gorm:"type:varchar(30)" json:"room,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// ValidDay memeriksa apakah day termasuk 6 hari yang dikenal
func ValidDay(day string) bool {
	for _, d := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// ValidTimeSlot memeriksa apakah slot termasuk 7 slot yang dikenal
func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}
