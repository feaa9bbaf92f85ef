package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thiru0454/time-sub001/database"
	"github.com/thiru0454/time-sub001/formatter"
	"github.com/thiru0454/time-sub001/hub"
	"github.com/thiru0454/time-sub001/models"
	"github.com/thiru0454/time-sub001/utils"
	"gorm.io/gorm"
)

type TimetableController struct {
	DB *gorm.DB
}

func NewTimetableController(db *gorm.DB) *TimetableController {
	return &TimetableController{DB: db}
}

// CreateTimetable menerima timetable hasil generator (input opaque).
// Layer ini tidak menjadwalkan apa pun, hanya memvalidasi bentuk grid.
func (tc *TimetableController) CreateTimetable(c *gin.Context) {
	var body models.Timetable
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Department == "" || body.Year == "" || body.Section == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("department, year and section are required"))
		return
	}

	// Validasi day/slot dan double-booking sebelum disimpan
	if _, err := formatter.BuildGrid(body.Assignments); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.DB.Create(&body).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	hub.BroadcastTimetableUpdate(body)
	utils.InfoLogger.Printf("Timetable created: %s %s section %s", body.Department, body.Year, body.Section)

	utils.RespondJSON(c, http.StatusCreated, "Timetable created", body)
}

// GetAllTimetables
func (tc *TimetableController) GetAllTimetables(c *gin.Context) {
	var timetables []models.Timetable
	if err := tc.DB.Find(&timetables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All timetables", timetables)
}

// GetTimetableByID
func (tc *TimetableController) GetTimetableByID(c *gin.Context) {
	var timetable models.Timetable
	if err := tc.DB.Preload("Assignments").First(&timetable, c.Param("timetable_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Timetable detail", timetable)
}

// CreateAssignment menambah satu assignment ke timetable yang ada.
// Perubahan masuk ke change feed untuk stream "assignments".
func (tc *TimetableController) CreateAssignment(c *gin.Context) {
	var timetable models.Timetable
	if err := tc.DB.Preload("Assignments").First(&timetable, c.Param("timetable_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body models.Assignment
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	body.TimetableID = timetable.ID

	// Cell harus kosong
	if _, err := formatter.BuildGrid(append(timetable.Assignments, body)); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.DB.Create(&body).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	database.RecordChange(tc.DB, models.TableAssignments, int64(body.ID), models.ActionInsert)

	utils.RespondJSON(c, http.StatusCreated, "Assignment created", body)
}

// UpdateAssignment
func (tc *TimetableController) UpdateAssignment(c *gin.Context) {
	var assignment models.Assignment
	if err := tc.DB.First(&assignment, c.Param("assignment_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		SubjectCode string `json:"subject_code"`
		SubjectName string `json:"subject_name"`
		FacultyName string `json:"faculty_name"`
		Type        string `json:"type"`
		Room        string `json:"room"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.SubjectCode != "" {
		assignment.SubjectCode = body.SubjectCode
	}
	if body.SubjectName != "" {
		assignment.SubjectName = body.SubjectName
	}
	if body.FacultyName != "" {
		assignment.FacultyName = body.FacultyName
	}
	if body.Type != "" {
		assignment.Type = body.Type
	}
	if body.Room != "" {
		assignment.Room = body.Room
	}

	if err := tc.DB.Save(&assignment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	database.RecordChange(tc.DB, models.TableAssignments, int64(assignment.ID), models.ActionUpdate)

	utils.RespondJSON(c, http.StatusOK, "Assignment updated", assignment)
}

// DeleteAssignment
func (tc *TimetableController) DeleteAssignment(c *gin.Context) {
	var assignment models.Assignment
	if err := tc.DB.First(&assignment, c.Param("assignment_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&assignment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	database.RecordChange(tc.DB, models.TableAssignments, int64(assignment.ID), models.ActionDelete)

	utils.RespondJSON(c, http.StatusOK, "Assignment deleted", gin.H{"assignment_id": assignment.ID})
}
