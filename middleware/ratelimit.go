package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// RateLimit allows limit requests per client address per window under name.
// Redis failures let the request through.
func RateLimit(rdb *redis.Client, name string, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := utils.Allow(c.Request.Context(), rdb, name+":"+c.ClientIP(), limit, window)
		if err != nil {
			utils.LogError(err, "rate limit "+name)
		}
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "result": nil, "error": "Too many requests, try again later"})
			return
		}
		c.Next()
	}
}
