package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/thiru0454/time-sub001/models"
)

const blockMargin = 6.0 // jarak vertikal antar section opsional

// BadgeColor memetakan tipe assignment ke warna badge per skema warna
func BadgeColor(assignType, scheme string) (r, g, b int) {
	if scheme == models.SchemeBlack {
		return 0, 0, 0
	}
	switch assignType {
	case models.TypeTheory:
		r, g, b = 59, 130, 246 // biru
	case models.TypePractical:
		r, g, b = 34, 197, 94 // hijau
	case models.TypeLab:
		r, g, b = 168, 85, 247 // ungu
	case models.TypeTutorial:
		r, g, b = 249, 115, 22 // oranye
	default:
		r, g, b = 107, 114, 128 // abu-abu
	}
	if scheme == models.SchemeGrayscale {
		gray := (r*299 + g*587 + b*114) / 1000
		return gray, gray, gray
	}
	return r, g, b
}

func fontSizes(fs string) (body, heading float64) {
	switch fs {
	case models.FontSmall:
		return 7, 12
	case models.FontLarge:
		return 9, 16
	default:
		return 8, 14
	}
}

// RenderPDF menghasilkan dokumen PDF: grid dengan badge warna per cell,
// dua baris teks (singkatan subject + faculty), lalu section opsional.
// Setiap block opsional mulai di Y akhir block sebelumnya + margin tetap.
func RenderPDF(grid Grid, subjects SubjectIndex, faculty FacultyIndex, meta Metadata, opts models.ExportOptions) ([]byte, error) {
	if grid.Empty() {
		return nil, ErrEmptyTimetable
	}

	orient := "P"
	if opts.PageOrientation == models.OrientationLandscape {
		orient = "L"
	}
	body, heading := fontSizes(opts.FontSize)

	pdf := fpdf.New(orient, "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	left, _, _, _ := pdf.GetMargins()
	usable := pageW - 2*left

	if opts.IncludeHeader {
		pdf.SetFont("Arial", "B", heading)
		pdf.CellFormat(0, 8, fmt.Sprintf("%s Timetable", meta.Department), "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", body+2)
		subtitle := fmt.Sprintf("%s - Section %s", meta.Year, meta.Section)
		if meta.Semester != "" {
			subtitle += fmt.Sprintf(" (%s)", meta.Semester)
		}
		pdf.CellFormat(0, 6, subtitle, "", 1, "C", false, 0, "")
		pdf.SetY(pdf.GetY() + blockMargin)
	}

	drawGrid(pdf, grid, subjects, opts, body, usable, pageH, left)

	if opts.IncludeFacultyInfo {
		pdf.SetY(pdf.GetY() + blockMargin)
		drawFacultyTable(pdf, grid, subjects, faculty, body, usable)
	}

	if opts.IncludeSubjectDetails {
		pdf.SetY(pdf.GetY() + blockMargin)
		drawSubjectTable(pdf, grid, subjects, body, usable)
	}

	if opts.IncludeFooter {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", body-1)
		pdf.CellFormat(0, 5, fmt.Sprintf("Generated on %s", meta.GeneratedAt.Format("02 Jan 2006 15:04")), "", 0, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawGrid(pdf *fpdf.Fpdf, grid Grid, subjects SubjectIndex, opts models.ExportOptions, body, usable, pageH, left float64) {
	slotColW := 32.0
	dayColW := (usable - slotColW) / float64(len(models.Days))
	rowH := 14.0

	headerRow := func() {
		pdf.SetFont("Arial", "B", body)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(slotColW, 7, "Time Slot", "1", 0, "C", true, 0, "")
		for _, day := range models.Days {
			pdf.CellFormat(dayColW, 7, day, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	headerRow()

	for _, slot := range models.TimeSlots {
		// Pindah halaman manual supaya satu baris tidak terpotong
		if pdf.GetY()+rowH > pageH-15 {
			pdf.AddPage()
			headerRow()
		}

		rowY := pdf.GetY()
		pdf.SetFont("Arial", "", body)
		pdf.CellFormat(slotColW, rowH, slot, "1", 0, "C", false, 0, "")

		for _, day := range models.Days {
			x := pdf.GetX()
			pdf.Rect(x, rowY, dayColW, rowH, "D")

			a := grid[day][slot]
			if a == nil {
				pdf.SetXY(x, rowY+(rowH-5)/2)
				pdf.CellFormat(dayColW, 5, "-", "", 0, "C", false, 0, "")
				pdf.SetXY(x+dayColW, rowY)
				continue
			}

			// Badge warna tipe di strip atas cell
			r, g, b := BadgeColor(a.Type, opts.ColorScheme)
			pdf.SetFillColor(r, g, b)
			pdf.Rect(x+0.5, rowY+0.5, dayColW-1, 2.5, "F")

			// Dua baris: singkatan subject lalu nama faculty,
			// menggantikan teks cell default
			label := a.SubjectCode
			if s, ok := subjects.Lookup(a.SubjectCode); ok {
				label = s.DisplayAbbreviation()
			}
			if opts.IncludeRoomAssignments && a.Room != "" {
				label += " / " + a.Room
			}
			pdf.SetXY(x, rowY+4)
			pdf.SetFont("Arial", "B", body)
			pdf.CellFormat(dayColW, 5, label, "", 0, "C", false, 0, "")
			pdf.SetXY(x, rowY+8.5)
			pdf.SetFont("Arial", "", body-1)
			pdf.CellFormat(dayColW, 5, a.FacultyName, "", 0, "C", false, 0, "")

			pdf.SetXY(x+dayColW, rowY)
		}
		pdf.SetXY(left, rowY+rowH)
	}
}

func drawFacultyTable(pdf *fpdf.Fpdf, grid Grid, subjects SubjectIndex, faculty FacultyIndex, body, usable float64) {
	pdf.SetFont("Arial", "B", body+2)
	pdf.CellFormat(0, 7, "Faculty Assignment Details", "", 1, "L", false, 0, "")

	colW := []float64{usable * 0.2, usable * 0.35, usable * 0.35, usable * 0.1}
	headers := []string{"Subject Code", "Subject Name", "Faculty", "Type"}

	pdf.SetFont("Arial", "B", body)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range headers {
		pdf.CellFormat(colW[i], 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", body)
	for _, row := range CrossReference(grid) {
		name := row.SubjectName
		if s, ok := subjects.Lookup(row.SubjectCode); ok {
			name = s.Name
		}
		var names []string
		for _, fn := range row.Faculties {
			if f, ok := faculty.Lookup(fn); ok && f.Email != nil && *f.Email != "" {
				names = append(names, fmt.Sprintf("%s (%s)", fn, *f.Email))
				continue
			}
			names = append(names, fn)
		}
		pdf.CellFormat(colW[0], 6, row.SubjectCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 6, strings.Join(names, ", "), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 6, row.Type, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
}

func drawSubjectTable(pdf *fpdf.Fpdf, grid Grid, subjects SubjectIndex, body, usable float64) {
	pdf.SetFont("Arial", "B", body+2)
	pdf.CellFormat(0, 7, "Subject Details", "", 1, "L", false, 0, "")

	colW := []float64{usable * 0.15, usable * 0.4, usable * 0.15, usable * 0.15, usable * 0.15}
	headers := []string{"Code", "Name", "Type", "Hours/Week", "Credits"}

	pdf.SetFont("Arial", "B", body)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range headers {
		pdf.CellFormat(colW[i], 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", body)
	for _, row := range CrossReference(grid) {
		s, ok := subjects.Lookup(row.SubjectCode)
		if !ok {
			// Subject tidak terdaftar, tampilkan apa adanya dari grid
			pdf.CellFormat(colW[0], 6, row.SubjectCode, "1", 0, "C", false, 0, "")
			pdf.CellFormat(colW[1], 6, row.SubjectName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(colW[2], 6, row.Type, "1", 0, "C", false, 0, "")
			pdf.CellFormat(colW[3], 6, "-", "1", 0, "C", false, 0, "")
			pdf.CellFormat(colW[4], 6, "-", "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
			continue
		}
		pdf.CellFormat(colW[0], 6, s.Code, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 6, s.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 6, s.SubjectType, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[3], 6, fmt.Sprintf("%d", s.HoursPerWeek), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[4], 6, fmt.Sprintf("%d", s.Credits), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}
}
