package formatter

import (
	"strings"

	"github.com/thiru0454/time-sub001/models"
)

// RenderCSV menghasilkan CSV: satu baris per time slot, satu kolom per hari.
// Header ditulis polos, field data selalu di-quote (quote ganda untuk escape).
func RenderCSV(grid Grid) (string, error) {
	if grid.Empty() {
		return "", ErrEmptyTimetable
	}

	var b strings.Builder

	b.WriteString("Time Slot")
	for _, day := range models.Days {
		b.WriteString(",")
		b.WriteString(day)
	}
	b.WriteString("\n")

	for _, slot := range models.TimeSlots {
		b.WriteString(quoteField(slot))
		for _, day := range models.Days {
			b.WriteString(",")
			b.WriteString(quoteField(cellText(grid[day][slot])))
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

func quoteField(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
