package database

import (
	"os"
	"strings"
	"time"

	"github.com/thiru0454/time-sub001/models"
	"github.com/thiru0454/time-sub001/utils"
	"gorm.io/gorm"
)

// ExecuteTriggers memasang trigger MySQL yang mengisi tabel db_changes
// untuk notifications, assignments dan reschedule_requests.
func ExecuteTriggers(db *gorm.DB) error {
	// Baca file SQL
	triggerSQL, err := os.ReadFile("database/migrations/triggers.sql")
	if err != nil {
		return err
	}

	// Split berdasarkan DELIMITER
	statements := strings.Split(string(triggerSQL), "DELIMITER")

	for _, block := range statements {
		if strings.TrimSpace(block) == "" {
			continue
		}

		// Eksekusi setiap statement dalam blok
		for _, stmt := range strings.Split(block, "//") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" || stmt == ";" {
				continue
			}

			if err := db.Exec(stmt).Error; err != nil {
				utils.ErrorLogger.Printf("Error executing trigger: %v\nStatement: %s", err, stmt)
				continue
			}
		}
	}

	// Verifikasi trigger
	var triggers []struct {
		Trigger string
		Event   string
		Table   string
		Timing  string
	}

	db.Raw(`
        SELECT
            TRIGGER_NAME as trigger_name,
            EVENT_MANIPULATION as event_type,
            EVENT_OBJECT_TABLE as table_name,
            ACTION_TIMING as timing
        FROM information_schema.triggers
        WHERE TRIGGER_SCHEMA = DATABASE()
    `).Scan(&triggers)

	for _, t := range triggers {
		utils.InfoLogger.Printf("Trigger verified: %s (%s %s on %s)",
			t.Trigger, t.Timing, t.Event, t.Table)
	}

	return nil
}

// RecordChange menambahkan satu baris ke change feed dari kode aplikasi.
// Di MySQL baris ini sudah diisi trigger, jadi hanya dipakai untuk
// dialect lain (sqlite saat development/test).
func RecordChange(db *gorm.DB, table string, recordID int64, action string) {
	if db.Dialector.Name() == "mysql" {
		return
	}
	change := models.DBChange{
		TableName:  table,
		RecordID:   recordID,
		ActionType: action,
		ChangedAt:  time.Now(),
	}
	if err := db.Create(&change).Error; err != nil {
		utils.ErrorLogger.Printf("Error recording change for %s/%d: %v", table, recordID, err)
	}
}
