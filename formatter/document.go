package formatter

import (
	"errors"
	"fmt"
	"time"

	"github.com/thiru0454/time-sub001/models"
)

// ErrEmptyTimetable dikembalikan saat grid tidak punya satu pun assignment.
// Caller seharusnya sudah short-circuit sebelum memanggil formatter.
var ErrEmptyTimetable = errors.New("timetable is empty")

// Metadata berisi identitas timetable untuk header/footer dokumen
type Metadata struct {
	Department  string
	Year        string
	Section     string
	Semester    string
	GeneratedAt time.Time
}

// Grid adalah representasi day -> time slot -> assignment (nil berarti kosong)
type Grid map[string]map[string]*models.Assignment

// BuildGrid menyusun grid 6x7 dari daftar assignment.
// Setiap cell maksimal satu assignment, duplikat dianggap error.
func BuildGrid(assignments []models.Assignment) (Grid, error) {
	grid := make(Grid, len(models.Days))
	for _, day := range models.Days {
		grid[day] = make(map[string]*models.Assignment, len(models.TimeSlots))
		for _, slot := range models.TimeSlots {
			grid[day][slot] = nil
		}
	}

	for i := range assignments {
		a := &assignments[i]
		if !models.ValidDay(a.Day) {
			return nil, fmt.Errorf("unknown day %q", a.Day)
		}
		if !models.ValidTimeSlot(a.TimeSlot) {
			return nil, fmt.Errorf("unknown time slot %q", a.TimeSlot)
		}
		if grid[a.Day][a.TimeSlot] != nil {
			return nil, fmt.Errorf("cell %s %s is double booked", a.Day, a.TimeSlot)
		}
		grid[a.Day][a.TimeSlot] = a
	}

	return grid, nil
}

// Empty melaporkan apakah grid tidak punya assignment sama sekali
func (g Grid) Empty() bool {
	for _, day := range models.Days {
		for _, slot := range models.TimeSlots {
			if g[day][slot] != nil {
				return false
			}
		}
	}
	return true
}

// SubjectIndex adalah lookup table code -> subject, dibangun sekali per render
type SubjectIndex map[string]*models.Subject

// FacultyIndex adalah lookup table nama -> faculty
type FacultyIndex map[string]*models.Faculty

func IndexSubjects(subjects []models.Subject) SubjectIndex {
	idx := make(SubjectIndex, len(subjects))
	for i := range subjects {
		idx[subjects[i].Code] = &subjects[i]
	}
	return idx
}

func IndexFaculty(faculty []models.Faculty) FacultyIndex {
	idx := make(FacultyIndex, len(faculty))
	for i := range faculty {
		idx[faculty[i].Name] = &faculty[i]
	}
	return idx
}

// Lookup mengembalikan subject untuk code, dengan hasil "not found" eksplisit
func (idx SubjectIndex) Lookup(code string) (*models.Subject, bool) {
	s, ok := idx[code]
	return s, ok
}

func (idx FacultyIndex) Lookup(name string) (*models.Faculty, bool) {
	f, ok := idx[name]
	return f, ok
}

// SubjectFacultyRow adalah satu baris tabel cross-reference subject -> faculty
type SubjectFacultyRow struct {
	SubjectCode string
	SubjectName string
	// Faculties berisi semua faculty berbeda yang mengajar subject ini,
	// urut berdasarkan cell pertama yang ditemui (day lalu slot)
	Faculties []string
	Type      string
}

// CrossReference membangun tabel subject -> faculty dari grid.
// Iterasi deterministik: urutan hari lalu slot, bukan urutan map.
func CrossReference(grid Grid) []SubjectFacultyRow {
	var rows []SubjectFacultyRow
	byCode := make(map[string]int)

	for _, day := range models.Days {
		for _, slot := range models.TimeSlots {
			a := grid[day][slot]
			if a == nil {
				continue
			}
			i, seen := byCode[a.SubjectCode]
			if !seen {
				byCode[a.SubjectCode] = len(rows)
				rows = append(rows, SubjectFacultyRow{
					SubjectCode: a.SubjectCode,
					SubjectName: a.SubjectName,
					Faculties:   []string{a.FacultyName},
					Type:        a.Type,
				})
				continue
			}
			if !contains(rows[i].Faculties, a.FacultyName) {
				rows[i].Faculties = append(rows[i].Faculties, a.FacultyName)
			}
		}
	}

	return rows
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// cellText menghasilkan teks cell "{subject} ({faculty})" atau "-" jika kosong.
// Nama subject dipakai bila ada, fallback ke code.
func cellText(a *models.Assignment) string {
	if a == nil {
		return "-"
	}
	name := a.SubjectName
	if name == "" {
		name = a.SubjectCode
	}
	return fmt.Sprintf("%s (%s)", name, a.FacultyName)
}
