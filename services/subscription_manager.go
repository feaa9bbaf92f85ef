package services

import (
	"fmt"
	"sync"

	"github.com/thiru0454/time-sub001/database"
	"github.com/thiru0454/time-sub001/hub"
	"github.com/thiru0454/time-sub001/models"
	"github.com/thiru0454/time-sub001/store"
	"github.com/thiru0454/time-sub001/utils"
	"gorm.io/gorm"
)

// SubscriptionManager menghubungkan tiga stream perubahan (notifications,
// assignments, reschedule_requests) ke NotificationStore milik satu sesi
// user. Ganti user berarti teardown subscription lama lalu daftar ulang.
type SubscriptionManager struct {
	DB      *gorm.DB
	Monitor *ChangeMonitor
	Store   *store.NotificationStore

	mu      sync.Mutex
	userID  uint
	epoch   int
	cancels []func()
}

func NewSubscriptionManager(db *gorm.DB, monitor *ChangeMonitor) *SubscriptionManager {
	return &SubscriptionManager{
		DB:      db,
		Monitor: monitor,
		Store:   store.NewNotificationStore(db),
	}
}

// Rebind mengganti identitas sesi: subscription lama dilepas, store
// dimuat ulang untuk user baru, lalu tiga stream didaftarkan lagi.
func (sm *SubscriptionManager) Rebind(userID uint) {
	sm.mu.Lock()
	sm.teardownLocked()
	sm.userID = userID
	sm.epoch++
	epoch := sm.epoch
	sm.mu.Unlock()

	sm.Store.Load(userID)

	notifCh, cancelNotif := sm.Monitor.Subscribe(models.TableNotifications)
	assignCh, cancelAssign := sm.Monitor.Subscribe(models.TableAssignments)
	reschedCh, cancelResched := sm.Monitor.Subscribe(models.TableRescheduleRequests)

	sm.mu.Lock()
	if sm.epoch != epoch {
		// Teardown/Rebind lain menang di antara dua critical section:
		// subscription yang baru dibuat dilepas lagi, tidak ada dispatcher
		sm.mu.Unlock()
		cancelNotif()
		cancelAssign()
		cancelResched()
		return
	}
	sm.cancels = []func(){cancelNotif, cancelAssign, cancelResched}
	sm.mu.Unlock()

	// Satu dispatcher per sesi; urutan per stream mengikuti urutan channel
	go func() {
		for notifCh != nil || assignCh != nil || reschedCh != nil {
			select {
			case change, ok := <-notifCh:
				if !ok {
					notifCh = nil
					continue
				}
				sm.handleNotificationChange(epoch, userID, change)
			case change, ok := <-assignCh:
				if !ok {
					assignCh = nil
					continue
				}
				sm.handleAssignmentChange(epoch, userID, change)
			case change, ok := <-reschedCh:
				if !ok {
					reschedCh = nil
					continue
				}
				sm.handleRescheduleChange(epoch, userID, change)
			}
		}
	}()
}

// Teardown melepas semua subscription. Callback yang masih in-flight
// setelah ini menjadi no-op lewat pemeriksaan epoch.
func (sm *SubscriptionManager) Teardown() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.teardownLocked()
	sm.userID = 0
	sm.epoch++
}

func (sm *SubscriptionManager) teardownLocked() {
	for _, cancel := range sm.cancels {
		cancel()
	}
	sm.cancels = nil
}

// UserID mengembalikan user yang sedang terikat ke sesi ini
func (sm *SubscriptionManager) UserID() uint {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.userID
}

// stillActive memastikan event lama tidak memutasi state sesi baru
func (sm *SubscriptionManager) stillActive(epoch int) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.epoch == epoch
}

func (sm *SubscriptionManager) handleNotificationChange(epoch int, userID uint, change models.DBChange) {
	if !sm.stillActive(epoch) {
		return
	}
	if change.ActionType == models.ActionDelete {
		// Notifikasi tidak pernah dihapus di sisi client
		return
	}

	var notif models.Notification
	if err := sm.DB.First(&notif, change.RecordID).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching notification %d: %v", change.RecordID, err)
		return
	}
	if notif.UserID != userID {
		return
	}

	switch change.ActionType {
	case models.ActionInsert:
		sm.Store.Append(notif)
		hub.SendToast(userID, notif)
	case models.ActionUpdate:
		sm.Store.ApplyUpdate(notif)
		hub.SendNotificationUpdate(userID, notif)
	}
	hub.SendUnreadCount(userID, sm.Store.UnreadCount())
}

func (sm *SubscriptionManager) handleAssignmentChange(epoch int, userID uint, change models.DBChange) {
	if !sm.stillActive(epoch) {
		return
	}

	notif := models.Notification{
		UserID:   userID,
		Category: models.CategoryAssignment,
		Type:     models.NotifInfo,
	}

	switch change.ActionType {
	case models.ActionInsert:
		notif.Title = "New Assignment"
		notif.Message = sm.describeAssignment(change.RecordID, "has been added to the timetable")
	case models.ActionUpdate:
		notif.Title = "Assignment Updated"
		notif.Message = sm.describeAssignment(change.RecordID, "has been updated")
	case models.ActionDelete:
		notif.Title = "Assignment Removed"
		notif.Type = models.NotifWarning
		notif.Message = fmt.Sprintf("An assignment (record %d) has been removed from the timetable", change.RecordID)
	}

	// Persist lewat write path notifikasi; event INSERT yang menggema
	// balik dari stream notifications yang melakukan append ke store.
	sm.persistNotification(userID, notif)
}

func (sm *SubscriptionManager) handleRescheduleChange(epoch int, userID uint, change models.DBChange) {
	if !sm.stillActive(epoch) {
		return
	}
	if change.ActionType == models.ActionDelete {
		return
	}

	var req models.RescheduleRequest
	if err := sm.DB.First(&req, change.RecordID).Error; err != nil {
		utils.ErrorLogger.Printf("Error fetching reschedule request %d: %v", change.RecordID, err)
		return
	}
	// Hanya request milik identitas sesi ini
	if req.UserID != userID {
		return
	}

	notif := models.Notification{
		UserID:   userID,
		Category: models.CategoryReschedule,
	}

	switch change.ActionType {
	case models.ActionInsert:
		notif.Type = models.NotifInfo
		notif.Title = "Reschedule Request Submitted"
		notif.Message = "Your reschedule request has been submitted and is pending review"
	case models.ActionUpdate:
		switch req.Status {
		case models.RescheduleApproved:
			notif.Type = models.NotifSuccess
			notif.Title = "Reschedule Request Approved"
			notif.Message = "Your reschedule request has been approved"
		case models.RescheduleRejected:
			notif.Type = models.NotifError
			notif.Title = "Reschedule Request Rejected"
			notif.Message = "Your reschedule request has been rejected"
		default:
			notif.Type = models.NotifInfo
			notif.Title = "Reschedule Request Updated"
			notif.Message = fmt.Sprintf("Your reschedule request status changed to %s", req.Status)
		}
	}

	sm.persistNotification(userID, notif)
}

func (sm *SubscriptionManager) describeAssignment(recordID int64, suffix string) string {
	var a models.Assignment
	if err := sm.DB.First(&a, recordID).Error; err != nil {
		return fmt.Sprintf("An assignment %s", suffix)
	}
	return fmt.Sprintf("%s (%s, %s %s) %s", a.SubjectCode, a.FacultyName, a.Day, a.TimeSlot, suffix)
}

func (sm *SubscriptionManager) persistNotification(userID uint, notif models.Notification) {
	if err := sm.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Error persisting notification for user %d: %v", userID, err)
		// Gagal tulis tidak fatal, cukup notice sementara ke user
		hub.SendToast(userID, map[string]string{
			"type":    models.NotifError,
			"message": "Failed to save a notification, please refresh",
		})
		return
	}
	database.RecordChange(sm.DB, models.TableNotifications, int64(notif.ID), models.ActionInsert)
}
