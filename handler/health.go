package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

// DB疎通確認付きのヘルスチェック
func HealthHandler(db Pinger) func(*gin.Context) {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "not configured", "timestamp": time.Now().UTC()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "error",
				"database":  "disconnected",
				"timestamp": time.Now().UTC(),
				"error":     err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"database":  "connected",
			"timestamp": time.Now().UTC(),
		})
	}
}

func IndexHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Server OK",
		"endpoints": gin.H{
			"stops":  "GET /stops, GET /stops?q=name, GET /stops/:id",
			"routes": "GET /routes, GET /routes/:id, GET /routes/:id/stops, GET /routes/status, POST /routes/find-path",
		},
	})
}
