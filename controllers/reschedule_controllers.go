package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thiru0454/time-sub001/database"
	"github.com/thiru0454/time-sub001/models"
	"github.com/thiru0454/time-sub001/utils"
	"gorm.io/gorm"
)

type RescheduleController struct {
	DB *gorm.DB
}

func NewRescheduleController(db *gorm.DB) *RescheduleController {
	return &RescheduleController{DB: db}
}

// CreateRescheduleRequest -> submit request baru, status awal pending
func (rc *RescheduleController) CreateRescheduleRequest(c *gin.Context) {
	type reqBody struct {
		UserID       uint   `json:"user_id" binding:"required"`
		TimetableID  uint   `json:"timetable_id" binding:"required"`
		AssignmentID *uint  `json:"assignment_id"`
		Reason       string `json:"reason"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	req := models.RescheduleRequest{
		UserID:       body.UserID,
		TimetableID:  body.TimetableID,
		AssignmentID: body.AssignmentID,
		Reason:       body.Reason,
		Status:       models.ReschedulePending,
	}

	if err := rc.DB.Create(&req).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	database.RecordChange(rc.DB, models.TableRescheduleRequests, int64(req.ID), models.ActionInsert)

	utils.RespondJSON(c, http.StatusCreated, "Reschedule request submitted", req)
}

// GetRescheduleRequests -> semua request milik satu user (opsional filter)
func (rc *RescheduleController) GetRescheduleRequests(c *gin.Context) {
	query := rc.DB.Order("created_at DESC")
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var requests []models.RescheduleRequest
	if err := query.Find(&requests).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reschedule requests", requests)
}

// UpdateRescheduleStatus -> approve/reject oleh pemilik timetable
func (rc *RescheduleController) UpdateRescheduleStatus(c *gin.Context) {
	var req models.RescheduleRequest
	if err := rc.DB.First(&req, c.Param("req_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		Status string `json:"status" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch body.Status {
	case models.ReschedulePending, models.RescheduleApproved, models.RescheduleRejected:
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown status"))
		return
	}

	if err := rc.DB.Model(&req).Update("status", body.Status).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	database.RecordChange(rc.DB, models.TableRescheduleRequests, int64(req.ID), models.ActionUpdate)

	utils.RespondJSON(c, http.StatusOK, "Reschedule request updated", req)
}
