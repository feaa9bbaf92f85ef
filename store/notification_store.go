package store

import (
	"sync"

	"github.com/thiru0454/time-sub001/models"
	"github.com/thiru0454/time-sub001/utils"
	"gorm.io/gorm"
)

// loadLimit membatasi initial load ke 50 record terbaru
const loadLimit = 50

// NotificationStore adalah cache notifikasi untuk satu sesi user,
// urut terbaru dulu. unreadCount selalu dihitung ulang dari isi sequence,
// tidak pernah di-increment/decrement secara spekulatif.
type NotificationStore struct {
	DB *gorm.DB

	mu          sync.Mutex
	userID      uint
	items       []models.Notification
	unreadCount int
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{DB: db}
}

// Load mengganti seluruh isi store dari backend (50 terbaru, desc).
// Gagal baca tidak fatal: untuk user yang sama state sebelumnya
// dipertahankan; ganti user selalu membuang state milik identitas lama.
func (ns *NotificationStore) Load(userID uint) {
	var notifs []models.Notification
	err := ns.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(loadLimit).
		Find(&notifs).Error
	if err != nil {
		utils.ErrorLogger.Printf("Error loading notifications for user %d: %v", userID, err)
		ns.mu.Lock()
		defer ns.mu.Unlock()
		if ns.userID != userID {
			ns.userID = userID
			ns.items = nil
			ns.unreadCount = 0
		}
		return
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.userID = userID
	ns.items = notifs
	ns.unreadCount = countUnread(ns.items)
}

// Reset mengosongkan store (dipakai saat ganti sesi user)
func (ns *NotificationStore) Reset() {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.userID = 0
	ns.items = nil
	ns.unreadCount = 0
}

// MarkRead menandai satu record read. Idempoten: panggilan kedua no-op.
func (ns *NotificationStore) MarkRead(id uint) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	for i := range ns.items {
		if ns.items[i].ID == id {
			ns.items[i].Read = true
			break
		}
	}
	ns.unreadCount = countUnread(ns.items)
}

// MarkAllRead menandai semua record read dalam satu operasi
func (ns *NotificationStore) MarkAllRead() {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	for i := range ns.items {
		ns.items[i].Read = true
	}
	ns.unreadCount = 0
}

// Append menaruh record baru di depan sequence. ID yang sudah ada di
// store (initial load bisa mendahului event INSERT yang menggema balik)
// diganti di tempat, tidak diduplikasi.
func (ns *NotificationStore) Append(n models.Notification) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	for i := range ns.items {
		if ns.items[i].ID == n.ID {
			ns.items[i] = n
			ns.unreadCount = countUnread(ns.items)
			return
		}
	}
	ns.items = append([]models.Notification{n}, ns.items...)
	if !n.Read {
		ns.unreadCount++
	}
}

// ApplyUpdate mengganti record dengan ID sama (mis. read berubah di tempat
// lain). unreadCount dihitung ulang dari seluruh set supaya tidak drift.
func (ns *NotificationStore) ApplyUpdate(n models.Notification) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	for i := range ns.items {
		if ns.items[i].ID == n.ID {
			ns.items[i] = n
			break
		}
	}
	ns.unreadCount = countUnread(ns.items)
}

// UnreadCount mengembalikan jumlah record yang belum dibaca
func (ns *NotificationStore) UnreadCount() int {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.unreadCount
}

// Snapshot mengembalikan salinan isi store, terbaru dulu
func (ns *NotificationStore) Snapshot() []models.Notification {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	out := make([]models.Notification, len(ns.items))
	copy(out, ns.items)
	return out
}

// UserID mengembalikan user pemilik sesi saat ini
func (ns *NotificationStore) UserID() uint {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.userID
}

func countUnread(items []models.Notification) int {
	count := 0
	for i := range items {
		if !items[i].Read {
			count++
		}
	}
	return count
}
