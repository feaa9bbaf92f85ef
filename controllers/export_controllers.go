package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thiru0454/time-sub001/exporter"
	"github.com/thiru0454/time-sub001/hub"
	"github.com/thiru0454/time-sub001/models"
	"github.com/thiru0454/time-sub001/utils"
	"gorm.io/gorm"
)

type ExportController struct {
	DB       *gorm.DB
	Exporter *exporter.Exporter
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{DB: db, Exporter: exporter.New()}
}

// loadTimetable mengambil timetable beserta assignment-nya.
// Timetable yang ada tapi kosong diperlakukan sama dengan tidak ada.
func (ec *ExportController) loadTimetable(c *gin.Context) (*models.Timetable, bool) {
	var timetable models.Timetable
	if err := ec.DB.Preload("Assignments").First(&timetable, c.Param("timetable_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return nil, false
	}
	return &timetable, true
}

func parseOptions(c *gin.Context) (models.ExportOptions, error) {
	opts := models.DefaultExportOptions()

	boolParam := func(name string, dst *bool) {
		if v := c.Query(name); v != "" {
			*dst = v == "true" || v == "1"
		}
	}
	boolParam("include_header", &opts.IncludeHeader)
	boolParam("include_footer", &opts.IncludeFooter)
	boolParam("include_faculty_info", &opts.IncludeFacultyInfo)
	boolParam("include_subject_details", &opts.IncludeSubjectDetails)
	boolParam("include_room_assignments", &opts.IncludeRoomAssignments)

	if v := c.Query("orientation"); v != "" {
		opts.PageOrientation = v
	}
	if v := c.Query("font_size"); v != "" {
		opts.FontSize = v
	}
	if v := c.Query("color_scheme"); v != "" {
		opts.ColorScheme = v
	}

	if !opts.Validate() {
		return opts, errors.New("invalid export options")
	}
	return opts, nil
}

// referenceData memuat subject dan faculty untuk lookup table formatter
func (ec *ExportController) referenceData() ([]models.Subject, []models.Faculty) {
	var subjects []models.Subject
	var faculty []models.Faculty
	if err := ec.DB.Find(&subjects).Error; err != nil {
		utils.ErrorLogger.Printf("Error loading subjects: %v", err)
	}
	if err := ec.DB.Find(&faculty).Error; err != nil {
		utils.ErrorLogger.Printf("Error loading faculty: %v", err)
	}
	return subjects, faculty
}

// notifyExport mengirim notice sukses/gagal export ke sesi user (jika ada)
func notifyExport(c *gin.Context, ok bool, detail string) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil || userID == 0 {
		return
	}
	status := "success"
	if !ok {
		status = "failed"
	}
	hub.SendExportStatus(uint(userID), gin.H{"status": status, "detail": detail})
}

// ExportCSV -> unduh timetable sebagai CSV
func (ec *ExportController) ExportCSV(c *gin.Context) {
	timetable, ok := ec.loadTimetable(c)
	if !ok {
		return
	}

	artifact, err := ec.Exporter.ExportCSV(timetable)
	if err != nil {
		ec.respondExportError(c, err)
		return
	}

	notifyExport(c, true, artifact.Filename)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.MIME, artifact.Data)
}

// ExportPDF -> unduh timetable sebagai PDF
func (ec *ExportController) ExportPDF(c *gin.Context) {
	timetable, ok := ec.loadTimetable(c)
	if !ok {
		return
	}

	opts, err := parseOptions(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	subjects, faculty := ec.referenceData()
	artifact, err := ec.Exporter.ExportPDF(timetable, subjects, faculty, opts)
	if err != nil {
		ec.respondExportError(c, err)
		return
	}

	notifyExport(c, true, artifact.Filename)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.MIME, artifact.Data)
}

// PrintTimetable -> halaman printable yang memicu print dialog sendiri
func (ec *ExportController) PrintTimetable(c *gin.Context) {
	timetable, ok := ec.loadTimetable(c)
	if !ok {
		return
	}

	opts, err := parseOptions(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	subjects, faculty := ec.referenceData()
	page, err := ec.Exporter.PrintPage(timetable, subjects, faculty, opts)
	if err != nil {
		ec.respondExportError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// MailtoTimetable -> link mail composer dengan subject/body terisi
func (ec *ExportController) MailtoTimetable(c *gin.Context) {
	timetable, ok := ec.loadTimetable(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Mail composer link", gin.H{
		"mailto": exporter.MailtoLink(timetable),
	})
}

// respondExportError memetakan error export ke response yang tepat.
// Semua kegagalan di sini non-fatal: dilaporkan, tidak pernah panic.
func (ec *ExportController) respondExportError(c *gin.Context, err error) {
	notifyExport(c, false, err.Error())
	switch {
	case errors.Is(err, exporter.ErrNoTimetable):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, exporter.ErrExportInProgress):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
