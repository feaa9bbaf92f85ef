package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thiru0454/time-sub001/database"
	"github.com/thiru0454/time-sub001/models"
	"github.com/thiru0454/time-sub001/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetNotifications -> 50 notifikasi terbaru milik satu user, desc
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil || userID == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("user_id is required"))
		return
	}

	var notifs []models.Notification
	if err := nc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	unread := 0
	for i := range notifs {
		if !notifs[i].Read {
			unread++
		}
	}

	utils.RespondJSON(c, http.StatusOK, "User notifications", gin.H{
		"notifications": notifs,
		"unread_count":  unread,
	})
}

// CreateNotification -> insert satu record, read selalu false saat dibuat
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	type reqBody struct {
		UserID   uint           `json:"user_id" binding:"required"`
		Title    string         `json:"title" binding:"required"`
		Message  string         `json:"message" binding:"required"`
		Type     string         `json:"type"`
		Category string         `json:"category"`
		Data     datatypes.JSON `json:"data"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Type == "" {
		body.Type = models.NotifInfo
	}
	if body.Category == "" {
		body.Category = models.CategorySystem
	}
	if !models.ValidNotifType(body.Type) || !models.ValidNotifCategory(body.Category) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown notification type or category"))
		return
	}

	notif := models.Notification{
		UserID:   body.UserID,
		Title:    body.Title,
		Message:  body.Message,
		Type:     body.Type,
		Category: body.Category,
		Data:     body.Data,
	}

	if err := nc.DB.Create(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	database.RecordChange(nc.DB, models.TableNotifications, int64(notif.ID), models.ActionInsert)

	utils.InfoLogger.Printf("Notification created for user %d: %v", notif.UserID, notif.Title)
	utils.RespondJSON(c, http.StatusCreated, "Notification created", notif)
}

// MarkRead -> transisi satu arah unread -> read, idempoten
func (nc *NotificationController) MarkRead(c *gin.Context) {
	var notif models.Notification
	if err := nc.DB.First(&notif, c.Param("notif_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if notif.Read {
		// Sudah read, tidak ada yang berubah dan tidak ada event baru
		utils.RespondJSON(c, http.StatusOK, "Notification already read", notif)
		return
	}

	if err := nc.DB.Model(&notif).Update("read", true).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	database.RecordChange(nc.DB, models.TableNotifications, int64(notif.ID), models.ActionUpdate)

	utils.RespondJSON(c, http.StatusOK, "Notification marked read", notif)
}

// MarkAllRead -> semua record unread milik user jadi read dalam satu operasi
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	type reqBody struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var ids []uint
	if err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", body.UserID, false).
		Pluck("id", &ids).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if len(ids) > 0 {
		if err := nc.DB.Model(&models.Notification{}).
			Where("id IN ?", ids).
			Update("read", true).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		for _, id := range ids {
			database.RecordChange(nc.DB, models.TableNotifications, int64(id), models.ActionUpdate)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "All notifications marked read", gin.H{"updated": len(ids)})
}
