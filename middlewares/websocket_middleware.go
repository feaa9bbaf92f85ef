package middlewares

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// WebSocketSessionMiddleware memasang identitas sesi dashboard dari query
// param. Autentikasi bukan urusan layer ini, cukup identitas user.
func WebSocketSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
		if err != nil || userID == 0 {
			c.AbortWithStatus(401)
			return
		}

		c.Set("user_id", uint(userID))

		c.Next()
	}
}
