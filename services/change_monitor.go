package services

import (
	"log"
	"sync"
	"time"

	"github.com/thiru0454/time-sub001/models"
	"gorm.io/gorm"
)

// ChangeMonitor mem-polling tabel db_changes dan meneruskan event ke
// subscriber per tabel. Urutan delivery dalam satu tabel mengikuti
// changed_at ASC; antar tabel tidak ada jaminan urutan.
type ChangeMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration

	mu   sync.Mutex
	subs map[string][]*subscriber
}

type subscriber struct {
	table string
	ch    chan models.DBChange
}

func NewChangeMonitor(db *gorm.DB) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
		subs:     make(map[string][]*subscriber),
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.CheckChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

// Subscribe mendaftarkan channel untuk satu tabel. Fungsi kedua melepas
// subscription dan menutup channel-nya.
func (cm *ChangeMonitor) Subscribe(table string) (<-chan models.DBChange, func()) {
	sub := &subscriber{table: table, ch: make(chan models.DBChange, 64)}

	cm.mu.Lock()
	cm.subs[table] = append(cm.subs[table], sub)
	cm.mu.Unlock()

	cancel := func() {
		cm.mu.Lock()
		defer cm.mu.Unlock()
		list := cm.subs[table]
		for i, s := range list {
			if s == sub {
				cm.subs[table] = append(list[:i], list[i+1:]...)
				close(sub.ch)
				return
			}
		}
	}
	return sub.ch, cancel
}

// CheckChanges memproses batch perubahan yang belum diproses.
// Diekspos supaya test bisa memicu satu siklus tanpa menunggu ticker.
func (cm *ChangeMonitor) CheckChanges() {
	var changes []models.DBChange

	// Gunakan transaction untuk mencegah race condition antar poller
	tx := cm.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		log.Printf("Error fetching changes: %v", err)
		return
	}

	for _, change := range changes {
		cm.dispatch(change)

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			log.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing transaction: %v", err)
		tx.Rollback()
		return
	}

	if len(changes) > 0 {
		log.Printf("Processed %d changes", len(changes))
	}
}

func (cm *ChangeMonitor) dispatch(change models.DBChange) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for _, sub := range cm.subs[change.TableName] {
		select {
		case sub.ch <- change:
		default:
			// Subscriber terlalu lambat, buang event daripada memblok poller
			log.Printf("Dropping change %d for slow subscriber on %s", change.ID, change.TableName)
		}
	}
}
