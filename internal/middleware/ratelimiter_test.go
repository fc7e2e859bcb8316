package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sidequest/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Редис лежит — лимитер обязан пропускать запросы, а не резать их
func TestRateLimiterRedisDown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	dead := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	rl := NewRateLimiter(dead, log)

	r := gin.New()
	r.POST("/play", rl.Limit("play", 1, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Лимит 1, запросов 3: без редиса все должны пройти
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/play", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i, w.Code, http.StatusOK)
		}
	}
}
