package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/meridiangallery/backend/internal/config"
)

// UploadRateLimit limits how many upload URLs a signed-in user can mint
// per day. Presigned URLs are cheap to issue but each one is a potential
// object write, so the daily cap keeps a leaked session from filling the
// bucket. The counter resets at midnight.
func UploadRateLimit(redisClient *redis.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		email := c.GetString("email")
		if email == "" {
			c.Next()
			return
		}

		today := time.Now().Format("2006-01-02")
		key := fmt.Sprintf("upload_limit:%s:%s", email, today)

		count, err := redisClient.Get(ctx, key).Int()
		if err == redis.Nil {
			now := time.Now()
			midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
			if err := redisClient.Set(ctx, key, 1, midnight.Sub(now)).Err(); err != nil {
				c.Next()
				return
			}
		} else if err != nil {
			// Redis error - don't block the upload
			c.Next()
			return
		} else if count >= cfg.UploadURLsPerDay {
			ttl, _ := redisClient.TTL(ctx, key).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":             "upload_rate_limit_exceeded",
				"message":           "Too many uploads today. Please try again tomorrow.",
				"retry_after_hours": int(ttl.Hours()),
			})
			c.Abort()
			return
		} else {
			redisClient.Incr(ctx, key)
		}

		c.Next()
	}
}
