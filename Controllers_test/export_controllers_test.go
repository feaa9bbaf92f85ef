package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thiru0454/time-sub001/controllers"
	"github.com/thiru0454/time-sub001/models"
	"github.com/thiru0454/time-sub001/utils"
)

func setupTestDBForExport(name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(
		&models.Timetable{},
		&models.Assignment{},
		&models.Subject{},
		&models.Faculty{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

func setupExportRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	exportCtrl := controllers.NewExportController(db)
	router.GET("/timetables/:timetable_id/export/csv", exportCtrl.ExportCSV)
	router.GET("/timetables/:timetable_id/export/pdf", exportCtrl.ExportPDF)
	router.GET("/timetables/:timetable_id/print", exportCtrl.PrintTimetable)
	router.GET("/timetables/:timetable_id/mailto", exportCtrl.MailtoTimetable)
	return router
}

func seedTimetable(db *gorm.DB) models.Timetable {
	timetable := models.Timetable{Department: "CSE", Year: "3rd Year", Section: "A", Semester: "V"}
	db.Create(&timetable)
	db.Create(&models.Assignment{
		TimetableID: timetable.ID,
		Day:         "MON",
		TimeSlot:    models.TimeSlots[0],
		SubjectCode: "CS101",
		SubjectName: "Data Structures",
		FacultyName: "Dr. A",
		Type:        models.TypeTheory,
	})
	return timetable
}

func TestExportCSVEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForExport(t.Name())
	router := setupExportRouter(db)
	timetable := seedTimetable(db)

	url := fmt.Sprintf("/timetables/%d/export/csv", timetable.ID)
	req, _ := http.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "timetable_CSE_3rd_Year_A.csv")
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	lines := strings.Split(w.Body.String(), "\n")
	assert.Equal(t, "Time Slot,MON,TUE,WED,THU,FRI,SAT", lines[0])
	assert.Contains(t, lines[1], `"Data Structures (Dr. A)"`)
}

func TestExportEmptyTimetableConflict(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForExport(t.Name())
	router := setupExportRouter(db)

	// Timetable tanpa assignment: export ditolak, bukan file kosong
	timetable := models.Timetable{Department: "ECE", Year: "2nd Year", Section: "B"}
	db.Create(&timetable)

	url := fmt.Sprintf("/timetables/%d/export/csv", timetable.ID)
	req, _ := http.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Export berikutnya tetap jalan: flag tidak pernah nyangkut
	timetable2 := seedTimetable(db)
	url = fmt.Sprintf("/timetables/%d/export/csv", timetable2.ID)
	req, _ = http.NewRequest("GET", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExportPDFEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForExport(t.Name())
	router := setupExportRouter(db)
	timetable := seedTimetable(db)

	url := fmt.Sprintf("/timetables/%d/export/pdf?orientation=portrait&font_size=large", timetable.ID)
	req, _ := http.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Timetable_CSE_3rd_Year_A_")

	// Opsi tidak valid -> 400
	url = fmt.Sprintf("/timetables/%d/export/pdf?orientation=diagonal", timetable.ID)
	req, _ = http.NewRequest("GET", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrintPageEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForExport(t.Name())
	router := setupExportRouter(db)
	timetable := seedTimetable(db)

	url := fmt.Sprintf("/timetables/%d/print", timetable.ID)
	req, _ := http.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "window.print()")
	assert.Contains(t, body, "Data Structures")
}

func TestMailtoEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForExport(t.Name())
	router := setupExportRouter(db)
	timetable := seedTimetable(db)

	url := fmt.Sprintf("/timetables/%d/mailto", timetable.ID)
	req, _ := http.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	mailto := data["mailto"].(string)
	assert.True(t, strings.HasPrefix(mailto, "mailto:?subject="))
	assert.Contains(t, mailto, "Timetable%20-%20CSE")
	assert.NotContains(t, mailto, "+")
}

func TestExportMissingTimetable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForExport(t.Name())
	router := setupExportRouter(db)

	req, _ := http.NewRequest("GET", "/timetables/999/export/csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
