package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/testutil"
)

func newsItem(title string, published bool) *models.News {
	return &models.News{
		Kind:        models.NewsKindNews,
		Title:       models.TranslatedText{RU: title},
		IsPublished: published,
	}
}

func TestNewsTagUsageFollowsPublishedNews(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewNewsService(db)
	ctx := context.Background()
	science := createTag(t, db, "science")
	sport := createTag(t, db, "sport")

	n := newsItem("Конференция", true)
	require.NoError(t, svc.Create(ctx, n, []uint{science.ID, sport.ID, science.ID}))
	assert.Equal(t, int64(1), tagUsage(t, db, science.ID))
	assert.Equal(t, int64(1), tagUsage(t, db, sport.ID))

	draft := newsItem("Черновик", false)
	require.NoError(t, svc.Create(ctx, draft, []uint{science.ID}))
	assert.Equal(t, int64(1), tagUsage(t, db, science.ID))

	// tag set change: sport dropped
	_, err := svc.Update(ctx, n.ID, func(*models.News) {}, []uint{science.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), tagUsage(t, db, science.ID))
	assert.Equal(t, int64(0), tagUsage(t, db, sport.ID))

	// publishing the draft counts its tags
	_, err = svc.Update(ctx, draft.ID, func(n *models.News) { n.IsPublished = true }, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), tagUsage(t, db, science.ID))

	require.NoError(t, svc.Delete(ctx, n.ID))
	assert.Equal(t, int64(1), tagUsage(t, db, science.ID))

	var links int64
	db.Model(&models.NewsTag{}).Where("news_id = ?", n.ID).Count(&links)
	assert.Zero(t, links)
}

func TestNewsUnknownTagRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewNewsService(db)
	ctx := context.Background()

	err := svc.Create(ctx, newsItem("Новость", true), []uint{42})
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "tag_ids")

	var count int64
	db.Model(&models.News{}).Count(&count)
	assert.Zero(t, count)
}

func TestNewsValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewNewsService(db)

	n := &models.News{Kind: "blog", Title: models.TranslatedText{EN: "Only English"}, IsPublished: true}
	err := svc.Create(context.Background(), n, nil)
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "kind")
	assert.Contains(t, fe, "title_ru")
}

func TestNewsListAndGet(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewNewsService(db)
	ctx := context.Background()
	tag := createTag(t, db, "science")

	event := newsItem("День открытых дверей", true)
	event.Kind = models.NewsKindEvent
	require.NoError(t, svc.Create(ctx, event, []uint{tag.ID}))
	require.NoError(t, svc.Create(ctx, newsItem("Приказ", true), nil))
	require.NoError(t, svc.Create(ctx, newsItem("Черновик", false), nil))

	items, total, err := svc.List(ctx, NewsQuery{Page: Page{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	items, total, err = svc.List(ctx, NewsQuery{Tag: "science", Page: Page{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, event.ID, items[0].ID)
	require.Len(t, items[0].Tags, 1)

	_, total, err = svc.List(ctx, NewsQuery{Kind: models.NewsKindEvent, IncludeDraft: true, Page: Page{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = svc.List(ctx, NewsQuery{Search: "ЕРНОВ", IncludeDraft: true, Page: Page{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	got, err := svc.Get(ctx, event.Slug, false)
	require.NoError(t, err)
	assert.Equal(t, event.ID, got.ID)

	_, err = svc.Get(ctx, "chernovik", false)
	assert.True(t, IsNotFound(err))
	_, err = svc.Get(ctx, "chernovik", true)
	assert.NoError(t, err)
}
