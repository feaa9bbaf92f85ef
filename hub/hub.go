package hub

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event types
const (
	EventNotificationToast  = "notification_toast"
	EventNotificationUpdate = "notification_update"
	EventUnreadCount        = "unread_count"
	EventExportStatus       = "export_status"
	EventTimetableUpdate    = "timetable_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type session struct {
	UserID    uint
	SessionID string
}

// DashboardHub menampung semua client dashboard dan identitas sesinya
type DashboardHub struct {
	clients map[*websocket.Conn]session
	mutex   sync.Mutex
}

var dashboardHub = DashboardHub{
	clients: make(map[*websocket.Conn]session),
}

// RegisterClient -> menambahkan connection untuk satu user, return session id
func RegisterClient(conn *websocket.Conn, userID uint) string {
	dashboardHub.mutex.Lock()
	defer dashboardHub.mutex.Unlock()
	id := uuid.NewString()
	dashboardHub.clients[conn] = session{UserID: userID, SessionID: id}
	return id
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	dashboardHub.mutex.Lock()
	defer dashboardHub.mutex.Unlock()
	delete(dashboardHub.clients, conn)
	conn.Close()
}

// SendToast -> kirim toast notifikasi ke semua sesi milik satu user
func SendToast(userID uint, data interface{}) {
	sendToUser(userID, Message{Event: EventNotificationToast, Data: data})
}

// SendNotificationUpdate -> kirim perubahan record notifikasi ke satu user
func SendNotificationUpdate(userID uint, data interface{}) {
	sendToUser(userID, Message{Event: EventNotificationUpdate, Data: data})
}

// SendUnreadCount -> kirim unread count terbaru ke satu user
func SendUnreadCount(userID uint, count int) {
	sendToUser(userID, Message{Event: EventUnreadCount, Data: map[string]int{"unread_count": count}})
}

// SendExportStatus -> notifikasi sukses/gagal export ke satu user
func SendExportStatus(userID uint, data interface{}) {
	sendToUser(userID, Message{Event: EventExportStatus, Data: data})
}

// BroadcastTimetableUpdate -> siarkan perubahan timetable ke semua client
func BroadcastTimetableUpdate(data interface{}) {
	broadcast(Message{Event: EventTimetableUpdate, Data: data})
}

func sendToUser(userID uint, msg Message) {
	dashboardHub.mutex.Lock()
	defer dashboardHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, sess := range dashboardHub.clients {
		if sess.UserID != userID {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to session %s: %v", sess.SessionID, err)
			continue
		}
	}
}

func broadcast(msg Message) {
	dashboardHub.mutex.Lock()
	defer dashboardHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, sess := range dashboardHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to session %s: %v", sess.SessionID, err)
			continue
		}
	}
}
