package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thiru0454/time-sub001/controllers"
	"github.com/thiru0454/time-sub001/models"
	"github.com/thiru0454/time-sub001/utils"
)

func setupTestDBForNotifications(name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Notification{}, &models.DBChange{})
	if err != nil {
		panic(err)
	}
	return db
}

func setupNotificationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	notifCtrl := controllers.NewNotificationController(db)
	router.GET("/notifications", notifCtrl.GetNotifications)
	router.POST("/notifications", notifCtrl.CreateNotification)
	router.PATCH("/notifications/:notif_id/read", notifCtrl.MarkRead)
	router.POST("/notifications/read-all", notifCtrl.MarkAllRead)
	return router
}

func TestNotificationLifecycle(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications(t.Name())
	router := setupNotificationRouter(db)

	// Create Notification
	payload := map[string]interface{}{
		"user_id":  1,
		"title":    "Timetable Generated",
		"message":  "Your timetable is ready",
		"type":     "success",
		"category": "timetable",
	}
	payloadBytes, err := json.Marshal(payload)
	assert.NoError(t, err)
	req, err := http.NewRequest("POST", "/notifications", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var createResp map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &createResp)
	assert.NoError(t, err)
	data := createResp["data"].(map[string]interface{})
	notifIDFloat, ok := data["id"].(float64)
	assert.True(t, ok)
	assert.Equal(t, false, data["read"])
	notifID := int(notifIDFloat)

	// Create menulis change feed
	var changes int64
	db.Model(&models.DBChange{}).Where("table_name = ?", models.TableNotifications).Count(&changes)
	assert.Equal(t, int64(1), changes)

	// Get notifications -> unread 1
	req, _ = http.NewRequest("GET", "/notifications?user_id=1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	var listResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	listData := listResp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), listData["unread_count"])

	// Mark read
	url := "/notifications/" + strconv.Itoa(notifID) + "/read"
	req, _ = http.NewRequest("PATCH", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Mark read kedua kali: idempoten, tidak ada event UPDATE baru
	req, _ = http.NewRequest("PATCH", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	db.Model(&models.DBChange{}).
		Where("table_name = ? AND action_type = ?", models.TableNotifications, models.ActionUpdate).
		Count(&changes)
	assert.Equal(t, int64(1), changes)

	var notif models.Notification
	assert.NoError(t, db.First(&notif, notifID).Error)
	assert.True(t, notif.Read)
}

func TestNotificationValidation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications(t.Name())
	router := setupNotificationRouter(db)

	// user_id wajib untuk list
	req, _ := http.NewRequest("GET", "/notifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Tipe tidak dikenal ditolak
	payload, _ := json.Marshal(map[string]interface{}{
		"user_id": 1,
		"title":   "x",
		"message": "y",
		"type":    "shout",
	})
	req, _ = http.NewRequest("POST", "/notifications", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkAllRead(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications(t.Name())
	router := setupNotificationRouter(db)

	for i := 0; i < 3; i++ {
		db.Create(&models.Notification{UserID: 2, Title: "n", Message: "m"})
	}
	db.Create(&models.Notification{UserID: 3, Title: "other", Message: "m"})

	payload, _ := json.Marshal(map[string]interface{}{"user_id": 2})
	req, _ := http.NewRequest("POST", "/notifications/read-all", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var unread int64
	db.Model(&models.Notification{}).Where("user_id = ? AND read = ?", 2, false).Count(&unread)
	assert.Equal(t, int64(0), unread)

	// User lain tidak tersentuh
	db.Model(&models.Notification{}).Where("user_id = ? AND read = ?", 3, false).Count(&unread)
	assert.Equal(t, int64(1), unread)
}
