package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/config"
)

type SiteController struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewSiteController(db *gorm.DB, rdb *redis.Client) *SiteController {
	return &SiteController{db: db, rdb: rdb}
}

// GET /site
func (sc *SiteController) Settings(c *gin.Context) {
	ok(c, http.StatusOK, config.Site())
}

// GET /healthz
func (sc *SiteController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"database": "ok", "redis": "ok"}
	healthy := true
	if sqlDB, err := sc.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status["database"] = "unavailable"
		healthy = false
	}
	if sc.rdb != nil {
		if err := sc.rdb.Ping(ctx).Err(); err != nil {
			status["redis"] = "unavailable"
			healthy = false
		}
	}
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "result": status, "error": "dependency unavailable"})
		return
	}
	ok(c, http.StatusOK, status)
}
