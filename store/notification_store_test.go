package store

import (
	"fmt"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thiru0454/time-sub001/models"
	"github.com/thiru0454/time-sub001/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupStoreDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Notification{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestLoadNewestFirstBounded(t *testing.T) {
	db := setupStoreDB(t)

	// 60 notifikasi, hanya 50 terbaru yang boleh termuat
	base := time.Now().Add(-1 * time.Hour)
	for i := 0; i < 60; i++ {
		db.Create(&models.Notification{
			UserID:    1,
			Title:     fmt.Sprintf("Notif %d", i),
			Message:   "m",
			Type:      models.NotifInfo,
			Category:  models.CategorySystem,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	// Notifikasi user lain tidak ikut
	db.Create(&models.Notification{UserID: 2, Title: "Other", Message: "m", CreatedAt: time.Now()})

	ns := NewNotificationStore(db)
	ns.Load(1)

	items := ns.Snapshot()
	assert.Len(t, items, 50)
	assert.Equal(t, "Notif 59", items[0].Title)
	assert.Equal(t, 50, ns.UnreadCount())
}

func TestLoadFailureKeepsPriorState(t *testing.T) {
	db := setupStoreDB(t)
	db.Create(&models.Notification{UserID: 1, Title: "Keep", Message: "m", CreatedAt: time.Now()})

	ns := NewNotificationStore(db)
	ns.Load(1)
	assert.Equal(t, 1, ns.UnreadCount())

	// Tabel dihapus -> Load berikutnya gagal, state lama bertahan
	db.Migrator().DropTable(&models.Notification{})
	ns.Load(1)

	assert.Len(t, ns.Snapshot(), 1)
	assert.Equal(t, 1, ns.UnreadCount())
}

func TestLoadFailureOnUserSwitchResets(t *testing.T) {
	db := setupStoreDB(t)
	db.Create(&models.Notification{UserID: 1, Title: "Mine", Message: "m", CreatedAt: time.Now()})

	ns := NewNotificationStore(db)
	ns.Load(1)
	assert.Equal(t, 1, ns.UnreadCount())

	// Ganti user dan backend gagal: state user lama tidak boleh bocor
	// ke identitas baru, store jadi kosong
	db.Migrator().DropTable(&models.Notification{})
	ns.Load(2)

	assert.Equal(t, uint(2), ns.UserID())
	assert.Empty(t, ns.Snapshot())
	assert.Equal(t, 0, ns.UnreadCount())
}

func TestMarkReadIdempotent(t *testing.T) {
	ns := NewNotificationStore(setupStoreDB(t))
	ns.Append(models.Notification{ID: 1, UserID: 1, Title: "a", Read: false})
	ns.Append(models.Notification{ID: 2, UserID: 1, Title: "b", Read: false})

	ns.MarkRead(1)
	assert.Equal(t, 1, ns.UnreadCount())

	// Panggilan kedua tidak boleh double-decrement
	ns.MarkRead(1)
	assert.Equal(t, 1, ns.UnreadCount())

	items := ns.Snapshot()
	for _, n := range items {
		if n.ID == 1 {
			assert.True(t, n.Read)
		}
		if n.ID == 2 {
			assert.False(t, n.Read)
		}
	}
}

func TestMarkAllRead(t *testing.T) {
	ns := NewNotificationStore(setupStoreDB(t))
	for i := uint(1); i <= 5; i++ {
		ns.Append(models.Notification{ID: i, UserID: 1, Read: i%2 == 0})
	}

	ns.MarkAllRead()
	assert.Equal(t, 0, ns.UnreadCount())
	for _, n := range ns.Snapshot() {
		assert.True(t, n.Read)
	}
}

func TestAppendPrepends(t *testing.T) {
	ns := NewNotificationStore(setupStoreDB(t))
	ns.Append(models.Notification{ID: 1, Title: "old"})
	ns.Append(models.Notification{ID: 2, Title: "new"})

	items := ns.Snapshot()
	assert.Equal(t, uint(2), items[0].ID)
	assert.Equal(t, 2, ns.UnreadCount())

	// Append record yang sudah read tidak menambah unread
	ns.Append(models.Notification{ID: 3, Read: true})
	assert.Equal(t, 2, ns.UnreadCount())
}

func TestAppendExistingIDReplacesInPlace(t *testing.T) {
	ns := NewNotificationStore(setupStoreDB(t))
	ns.Append(models.Notification{ID: 1, Title: "First", Read: false})

	// ID yang sama datang lagi (initial load mendahului gema INSERT):
	// tidak ada duplikat, record diganti di tempat
	ns.Append(models.Notification{ID: 1, Title: "Echoed", Read: false})

	items := ns.Snapshot()
	assert.Len(t, items, 1)
	assert.Equal(t, "Echoed", items[0].Title)
	assert.Equal(t, 1, ns.UnreadCount())

	// Versi read menggantikan versi unread tanpa drift
	ns.Append(models.Notification{ID: 1, Title: "Echoed", Read: true})
	assert.Len(t, ns.Snapshot(), 1)
	assert.Equal(t, 0, ns.UnreadCount())
}

func TestApplyUpdateRecomputes(t *testing.T) {
	ns := NewNotificationStore(setupStoreDB(t))
	ns.Append(models.Notification{ID: 1, Read: false})
	ns.Append(models.Notification{ID: 2, Read: false})
	assert.Equal(t, 2, ns.UnreadCount())

	// Read berubah di tempat lain, UPDATE menggema balik
	ns.ApplyUpdate(models.Notification{ID: 1, Read: true})
	assert.Equal(t, 1, ns.UnreadCount())

	// Update untuk id yang tidak ada tidak merusak count
	ns.ApplyUpdate(models.Notification{ID: 99, Read: true})
	assert.Equal(t, 1, ns.UnreadCount())
}

// TestUnreadCountNeverDrifts menjalankan urutan operasi acak dan memastikan
// unreadCount selalu sama dengan hitungan ground truth dari sequence.
func TestUnreadCountNeverDrifts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ns := NewNotificationStore(setupStoreDB(t))

	nextID := uint(1)
	groundTruth := func() int {
		count := 0
		for _, n := range ns.Snapshot() {
			if !n.Read {
				count++
			}
		}
		return count
	}

	for op := 0; op < 500; op++ {
		switch rng.Intn(4) {
		case 0:
			ns.Append(models.Notification{ID: nextID, Read: rng.Intn(4) == 0})
			nextID++
		case 1:
			// id acak, termasuk yang tidak ada dan yang sudah read
			ns.MarkRead(uint(rng.Intn(int(nextID) + 1)))
		case 2:
			if rng.Intn(10) == 0 {
				ns.MarkAllRead()
			}
		case 3:
			ns.ApplyUpdate(models.Notification{
				ID:   uint(rng.Intn(int(nextID) + 1)),
				Read: rng.Intn(2) == 0,
			})
		}
		assert.Equal(t, groundTruth(), ns.UnreadCount(), "drift after %d ops", op+1)
	}
}
