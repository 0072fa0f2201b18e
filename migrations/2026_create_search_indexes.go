package migrations

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// CreateSearchIndexes создаёт частичные индексы для публичных лент и
// trigram-индексы для поиска по публикациям в СМИ (только PostgreSQL)
func CreateSearchIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_media_articles_published_date
		ON media_articles(publication_date DESC)
		WHERE is_published = TRUE AND deleted_at IS NULL;

		CREATE INDEX IF NOT EXISTS idx_news_published_feed
		ON news(kind, published_at DESC)
		WHERE is_published = TRUE AND deleted_at IS NULL;

		CREATE INDEX IF NOT EXISTS idx_news_tags_tag_id ON news_tags(tag_id);
	`).Error; err != nil {
		return err
	}

	// pg_trgm может быть недоступен без прав суперпользователя: поиск работает и без него
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`).Error; err != nil {
		utils.Logger().Warn("pg_trgm unavailable, skipping trigram indexes", zap.Error(err))
		return nil
	}
	for _, col := range []string{"title_ru", "title_kg", "title_en", "keywords_ru", "keywords_kg", "keywords_en"} {
		stmt := "CREATE INDEX IF NOT EXISTS idx_media_articles_" + col + "_trgm ON media_articles USING gin (LOWER(" + col + ") gin_trgm_ops)"
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
