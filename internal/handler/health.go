package handler

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports connectivity to the database and Redis plus the photo
// storage directory, without exposing credentials or internals. Redis is
// cache-only, so its failure degrades the status string but the overall
// check stays healthy.
func Health(db *gorm.DB, rdb *redis.Client, fotoPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "degraded"
		}

		storageStatus := "writable"
		if info, err := os.Stat(fotoPath); err != nil || !info.IsDir() {
			storageStatus = "error"
		}

		status := http.StatusOK
		if dbStatus != "connected" || storageStatus != "writable" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"db":      dbStatus,
			"redis":   redisStatus,
			"storage": storageStatus,
		})
	}
}
