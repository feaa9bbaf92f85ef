package exporter

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/thiru0454/time-sub001/formatter"
	"github.com/thiru0454/time-sub001/models"
	"github.com/thiru0454/time-sub001/utils"
)

var (
	// ErrNoTimetable: export dipanggil tanpa timetable, operasi ditolak
	ErrNoTimetable = errors.New("no timetable to export")
	// ErrExportInProgress: masih ada export lain yang berjalan
	ErrExportInProgress = errors.New("another export is in progress")
)

// PrintSettleDelay adalah jeda sebelum print dialog dipicu, memberi waktu
// konten selesai dimuat di rendering surface baru
const PrintSettleDelay = 1 * time.Second

// Artifact adalah hasil export siap unduh
type Artifact struct {
	Filename string
	MIME     string
	Data     []byte
}

// Exporter mengorkestrasi formatter menjadi artifact. State exporting
// selalu dilepas di semua jalur keluar (sukses, gagal, early return).
type Exporter struct {
	mu        sync.Mutex
	exporting bool
}

func New() *Exporter {
	return &Exporter{}
}

// IsExporting melaporkan apakah ada export yang sedang berjalan
func (e *Exporter) IsExporting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exporting
}

func (e *Exporter) acquire() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.exporting {
		return ErrExportInProgress
	}
	e.exporting = true
	return nil
}

func (e *Exporter) release() {
	e.mu.Lock()
	e.exporting = false
	e.mu.Unlock()
}

// ExportCSV menghasilkan artifact CSV untuk satu timetable.
// Tanpa timetable operasi ditolak dan flag exporting tidak tersentuh.
func (e *Exporter) ExportCSV(tt *models.Timetable) (*Artifact, error) {
	if tt == nil || len(tt.Assignments) == 0 {
		return nil, ErrNoTimetable
	}
	if err := e.acquire(); err != nil {
		return nil, err
	}
	defer e.release()

	grid, err := formatter.BuildGrid(tt.Assignments)
	if err != nil {
		utils.ErrorLogger.Printf("CSV export failed for timetable %d: %v", tt.ID, err)
		return nil, err
	}
	out, err := formatter.RenderCSV(grid)
	if err != nil {
		utils.ErrorLogger.Printf("CSV export failed for timetable %d: %v", tt.ID, err)
		return nil, err
	}

	return &Artifact{
		Filename: CSVFilename(tt),
		MIME:     "text/csv",
		Data:     []byte(out),
	}, nil
}

// ExportPDF menghasilkan artifact PDF untuk satu timetable
func (e *Exporter) ExportPDF(tt *models.Timetable, subjects []models.Subject, faculty []models.Faculty, opts models.ExportOptions) (*Artifact, error) {
	if tt == nil || len(tt.Assignments) == 0 {
		return nil, ErrNoTimetable
	}
	if err := e.acquire(); err != nil {
		return nil, err
	}
	defer e.release()

	grid, err := formatter.BuildGrid(tt.Assignments)
	if err != nil {
		utils.ErrorLogger.Printf("PDF export failed for timetable %d: %v", tt.ID, err)
		return nil, err
	}
	data, err := formatter.RenderPDF(grid, formatter.IndexSubjects(subjects), formatter.IndexFaculty(faculty), metadataOf(tt), opts)
	if err != nil {
		utils.ErrorLogger.Printf("PDF export failed for timetable %d: %v", tt.ID, err)
		return nil, err
	}

	return &Artifact{
		Filename: PDFFilename(tt, time.Now()),
		MIME:     "application/pdf",
		Data:     data,
	}, nil
}

// PrintPage menghasilkan halaman HTML printable yang memicu print dialog
// setelah settle delay
func (e *Exporter) PrintPage(tt *models.Timetable, subjects []models.Subject, faculty []models.Faculty, opts models.ExportOptions) (string, error) {
	if tt == nil || len(tt.Assignments) == 0 {
		return "", ErrNoTimetable
	}
	if err := e.acquire(); err != nil {
		return "", err
	}
	defer e.release()

	grid, err := formatter.BuildGrid(tt.Assignments)
	if err != nil {
		return "", err
	}
	doc, err := formatter.RenderHTML(grid, formatter.IndexSubjects(subjects), formatter.IndexFaculty(faculty), metadataOf(tt), opts)
	if err != nil {
		return "", err
	}

	script := fmt.Sprintf(`<script>
window.addEventListener('load', function () {
  setTimeout(function () { window.print(); }, %d);
});
</script>
</body>`, PrintSettleDelay.Milliseconds())

	return strings.Replace(doc, "</body>", script, 1), nil
}

// CSVFilename: timetable_{department}_{year}_{section}.csv
func CSVFilename(tt *models.Timetable) string {
	return fmt.Sprintf("timetable_%s_%s_%s.csv",
		slug(tt.Department), slug(tt.Year), slug(tt.Section))
}

// PDFFilename: Timetable_{department}_{year}_{section}_{isodate}.pdf
func PDFFilename(tt *models.Timetable, now time.Time) string {
	return fmt.Sprintf("Timetable_%s_%s_%s_%s.pdf",
		slug(tt.Department), slug(tt.Year), slug(tt.Section), now.Format("2006-01-02"))
}

// MailtoLink menyusun URI mail composer dengan subject dan body template
func MailtoLink(tt *models.Timetable) string {
	subject := fmt.Sprintf("Timetable - %s %s Section %s", tt.Department, tt.Year, tt.Section)
	body := fmt.Sprintf(
		"Hello,\n\nPlease find the class timetable for %s %s Section %s attached.\n\nRegards,\nTimetable Dashboard",
		tt.Department, tt.Year, tt.Section)
	return "mailto:?subject=" + escapeMailto(subject) + "&body=" + escapeMailto(body)
}

// escapeMailto: QueryEscape memakai '+' untuk spasi, mailto butuh %20
func escapeMailto(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func slug(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
}

func metadataOf(tt *models.Timetable) formatter.Metadata {
	generated := tt.GeneratedAt
	if generated.IsZero() {
		generated = tt.CreatedAt
	}
	return formatter.Metadata{
		Department:  tt.Department,
		Year:        tt.Year,
		Section:     tt.Section,
		Semester:    tt.Semester,
		GeneratedAt: generated,
	}
}
