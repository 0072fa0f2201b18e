package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return d
}

func createOutlet(t *testing.T, db *gorm.DB, name string) *models.Outlet {
	t.Helper()
	o := &models.Outlet{Name: models.TranslatedText{RU: name}, IsActive: true}
	require.NoError(t, db.Create(o).Error)
	return o
}

func createCategory(t *testing.T, db *gorm.DB, slug string) *models.MediaCategory {
	t.Helper()
	c := &models.MediaCategory{Slug: slug, Name: models.TranslatedText{RU: slug}}
	require.NoError(t, db.Create(c).Error)
	return c
}

func createTag(t *testing.T, db *gorm.DB, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Slug: slug, Name: models.TranslatedText{RU: slug}}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func outletTotal(t *testing.T, db *gorm.DB, id uint) int64 {
	t.Helper()
	var o models.Outlet
	require.NoError(t, db.Unscoped().First(&o, id).Error)
	return o.TotalArticles
}

func tagUsage(t *testing.T, db *gorm.DB, id uint) int64 {
	t.Helper()
	var tag models.Tag
	require.NoError(t, db.First(&tag, id).Error)
	return tag.UsageCount
}

func article(outletID uint, title string, published bool, date time.Time) *models.MediaArticle {
	return &models.MediaArticle{
		Title:           models.TranslatedText{RU: title},
		OutletID:        outletID,
		IsPublished:     published,
		PublicationDate: date,
		Sentiment:       models.SentimentNeutral,
		ImportanceScore: 5,
	}
}
