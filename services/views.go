package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IbroIT/SU-back-back-sub001/counters"
	"github.com/IbroIT/SU-back-back-sub001/metrics"
	"github.com/IbroIT/SU-back-back-sub001/models"
)

var viewedModels = map[string]func() any{
	models.ContentTypeNews:         func() any { return &models.News{} },
	models.ContentTypeMediaArticle: func() any { return &models.MediaArticle{} },
}

// RecordView counts the first view of a piece of content from ip. The
// content_views unique index decides which of concurrent requests wins; only
// the inserting one bumps views_count. Reports whether the view was counted.
func RecordView(ctx context.Context, db *gorm.DB, contentType string, contentID uint, ip string) (bool, error) {
	newModel, ok := viewedModels[contentType]
	if !ok {
		return false, fmt.Errorf("unknown content type %q", contentType)
	}
	if ip == "" || contentID == 0 {
		return false, nil
	}

	counted := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.ContentView{
			ContentType: contentType,
			ContentID:   contentID,
			IPAddress:   ip,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		counted = true
		return counters.Increment(tx, newModel(), "views_count", contentID)
	})
	if err != nil {
		return false, fmt.Errorf("record view: %w", err)
	}
	if counted {
		metrics.ViewsCounted.WithLabelValues(contentType).Inc()
	}
	return counted, nil
}
