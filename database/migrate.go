package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/migrations"
	"github.com/IbroIT/SU-back-back-sub001/models"
)

// Models lists every table owned by the service.
var Models = []any{
	&models.AdminUser{},
	&models.Tag{},
	&models.News{},
	&models.NewsTag{},
	&models.Outlet{},
	&models.MediaCategory{},
	&models.MediaArticle{},
	&models.ContentView{},
	&models.DailyStatistics{},
	&models.Vacancy{},
	&models.Banner{},
	&models.SocialOpportunity{},
}

func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.News{}, "Tags", &models.NewsTag{}); err != nil {
		return fmt.Errorf("setup news_tags: %w", err)
	}
	if err := db.AutoMigrate(Models...); err != nil {
		return err
	}

	// Индексы, которые есть только в PostgreSQL
	if db.Dialector.Name() == "postgres" {
		if err := migrations.CreateSearchIndexes(db); err != nil {
			return fmt.Errorf("search indexes: %w", err)
		}
	}
	return nil
}
