package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thiru0454/time-sub001/models"
)

func TestBuildGridRejectsDoubleBooking(t *testing.T) {
	_, err := BuildGrid([]models.Assignment{
		{Day: "MON", TimeSlot: "9:00 to 9:55", SubjectCode: "CS101", FacultyName: "Dr. A"},
		{Day: "MON", TimeSlot: "9:00 to 9:55", SubjectCode: "CS102", FacultyName: "Dr. B"},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "double booked")
}

func TestBuildGridRejectsUnknownDayAndSlot(t *testing.T) {
	_, err := BuildGrid([]models.Assignment{
		{Day: "SUN", TimeSlot: "9:00 to 9:55", SubjectCode: "CS101"},
	})
	assert.Error(t, err)

	_, err = BuildGrid([]models.Assignment{
		{Day: "MON", TimeSlot: "8:00 to 8:55", SubjectCode: "CS101"},
	})
	assert.Error(t, err)
}

func TestIndexLookupExplicitMiss(t *testing.T) {
	subjects := IndexSubjects([]models.Subject{
		{Code: "CS101", Name: "Data Structures"},
	})

	s, ok := subjects.Lookup("CS101")
	assert.True(t, ok)
	assert.Equal(t, "Data Structures", s.Name)

	_, ok = subjects.Lookup("ZZ999")
	assert.False(t, ok)

	faculty := IndexFaculty(nil)
	_, ok = faculty.Lookup("Dr. Nobody")
	assert.False(t, ok)
}

func TestCrossReferenceDeterministic(t *testing.T) {
	// CS101 diajar dua faculty di slot berbeda: yang pertama menurut
	// urutan day-lalu-slot tampil dulu, keduanya tetap dilaporkan
	grid, err := BuildGrid([]models.Assignment{
		{Day: "WED", TimeSlot: "12:00 to 12:55", SubjectCode: "CS101", FacultyName: "Dr. Later", Type: models.TypeTheory},
		{Day: "MON", TimeSlot: "9:55 to 10:50", SubjectCode: "CS101", FacultyName: "Dr. First", Type: models.TypeTheory},
		{Day: "TUE", TimeSlot: "9:00 to 9:55", SubjectCode: "PH100", FacultyName: "Dr. Solo", Type: models.TypeLab},
	})
	assert.NoError(t, err)

	rows := CrossReference(grid)
	assert.Len(t, rows, 2)

	assert.Equal(t, "CS101", rows[0].SubjectCode)
	assert.Equal(t, []string{"Dr. First", "Dr. Later"}, rows[0].Faculties)
	assert.Equal(t, "PH100", rows[1].SubjectCode)
	assert.Equal(t, []string{"Dr. Solo"}, rows[1].Faculties)
}

func TestCrossReferenceDedupesFaculty(t *testing.T) {
	grid, err := BuildGrid([]models.Assignment{
		{Day: "MON", TimeSlot: "9:00 to 9:55", SubjectCode: "CS101", FacultyName: "Dr. A", Type: models.TypeTheory},
		{Day: "TUE", TimeSlot: "9:00 to 9:55", SubjectCode: "CS101", FacultyName: "Dr. A", Type: models.TypeTheory},
	})
	assert.NoError(t, err)

	rows := CrossReference(grid)
	assert.Len(t, rows, 1)
	assert.Equal(t, []string{"Dr. A"}, rows[0].Faculties)
}
