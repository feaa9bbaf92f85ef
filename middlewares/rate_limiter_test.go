package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupStrictLimitedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/notifications", NewStrictRateLimiter(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return router
}

func TestStrictRateLimiterRejectsBurst(t *testing.T) {
	router := setupStrictLimitedRouter()

	// Burst jauh di atas limit 5/menit: hanya 5 pertama yang lolos
	accepted, rejected := 0, 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/notifications", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		switch w.Code {
		case http.StatusCreated:
			accepted++
		case http.StatusTooManyRequests:
			rejected++
		default:
			t.Fatalf("unexpected status %d", w.Code)
		}
	}

	assert.Equal(t, 5, accepted)
	assert.Equal(t, 45, rejected)
}

func TestStrictRateLimiterFirstRequestsPass(t *testing.T) {
	router := setupStrictLimitedRouter()

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/notifications", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}
