package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/thiru0454/time-sub001/hub"
	"github.com/thiru0454/time-sub001/services"
	"github.com/thiru0454/time-sub001/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Sesuaikan dengan kebutuhan keamanan
	},
}

var subscriptionManager *services.SubscriptionManager

// InitRealtime menyimpan subscription manager untuk dipakai ws handler
func InitRealtime(sm *services.SubscriptionManager) {
	subscriptionManager = sm
}

// DashboardWSHandler -> endpoint WebSocket dashboard.
// Identitas sesi dipasang oleh middleware; user baru berarti rebind.
func DashboardWSHandler(c *gin.Context) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	userID := userIDInterface.(uint)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	sessionID := hub.RegisterClient(ws, userID)
	utils.InfoLogger.Printf("Dashboard client connected: user=%d session=%s", userID, sessionID)

	// Ganti identitas -> teardown subscription lama, daftar untuk user baru
	if subscriptionManager != nil && subscriptionManager.UserID() != userID {
		subscriptionManager.Rebind(userID)
	}

	// Baca pesan (jika perlu)
	for {
		_, _, err := ws.ReadMessage()
		if err != nil {
			break
		}
	}

	// Unregister saat disconnect
	hub.UnregisterClient(ws)
	utils.InfoLogger.Printf("Dashboard client disconnected: session=%s", sessionID)
}
