package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/testutil"
)

func TestKeywordCloud(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewMediaArticleService(db)
	outlet := createOutlet(t, db, "outlet")

	kw := []models.TranslatedText{
		{RU: "наука, Университет", EN: "science, university"},
		{RU: "университет,  спорт ,", EN: ""},
		{RU: "наука"},
	}
	for i, k := range kw {
		a := article(outlet.ID, "A", true, mustDate(t, "2026-10-01").AddDate(0, 0, i))
		a.Keywords = k
		require.NoError(t, svc.Create(ctx, a))
	}
	draft := article(outlet.ID, "draft", false, mustDate(t, "2026-10-01"))
	draft.Keywords = models.TranslatedText{RU: "спорт"}
	require.NoError(t, svc.Create(ctx, draft))

	analytics := NewAnalyticsService(db)
	got, err := analytics.Keywords(ctx, KeywordQuery{Lang: models.LangRU})
	require.NoError(t, err)
	assert.Equal(t, []KeywordCount{
		{Word: "наука", Count: 2},
		{Word: "университет", Count: 2},
		{Word: "спорт", Count: 1},
	}, got)

	// English falls back to Russian where blank
	got, err = analytics.Keywords(ctx, KeywordQuery{Lang: models.LangEN, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []KeywordCount{
		{Word: "science", Count: 1},
		{Word: "university", Count: 1},
	}, got)

	from := mustDate(t, "2026-10-03")
	got, err = analytics.Keywords(ctx, KeywordQuery{Lang: models.LangRU, DateFrom: &from})
	require.NoError(t, err)
	assert.Equal(t, []KeywordCount{{Word: "наука", Count: 1}}, got)
}

func TestDashboard(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewMediaArticleService(db)
	big := createOutlet(t, db, "big")
	small := createOutlet(t, db, "small")

	for i := 0; i < 3; i++ {
		a := article(big.ID, "A", true, mustDate(t, "2026-10-01"))
		a.Reach = 10
		if i == 0 {
			a.Sentiment = models.SentimentPositive
		}
		require.NoError(t, svc.Create(ctx, a))
	}
	b := article(small.ID, "B", true, mustDate(t, "2026-10-01"))
	b.Sentiment = models.SentimentNegative
	require.NoError(t, svc.Create(ctx, b))
	require.NoError(t, svc.Create(ctx, article(small.ID, "draft", false, mustDate(t, "2026-10-01"))))

	_, err := RecordView(ctx, db, models.ContentTypeMediaArticle, b.ID, "1.1.1.1")
	require.NoError(t, err)

	d, err := NewAnalyticsService(db).Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), d.TotalArticles)
	assert.Equal(t, int64(1), d.TotalViews)
	assert.Equal(t, int64(30), d.TotalReach)
	assert.Equal(t, int64(1), d.Sentiment[models.SentimentPositive])
	assert.Equal(t, int64(2), d.Sentiment[models.SentimentNeutral])
	assert.Equal(t, int64(1), d.Sentiment[models.SentimentNegative])

	require.Len(t, d.TopOutlets, 2)
	assert.Equal(t, big.ID, d.TopOutlets[0].ID)
	assert.Equal(t, int64(3), d.TopOutlets[0].TotalArticles)
	require.NotEmpty(t, d.TopArticles)
	assert.Equal(t, b.ID, d.TopArticles[0].ID)
	require.NotNil(t, d.TopArticles[0].Outlet)
}
