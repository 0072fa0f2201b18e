package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/testutil"
)

func TestRecordViewCountsOncePerAddress(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	outlet := createOutlet(t, db, "outlet")
	a := article(outlet.ID, "Статья", true, mustDate(t, "2026-10-01"))
	require.NoError(t, NewMediaArticleService(db).Create(ctx, a))

	views := func() int64 {
		var got models.MediaArticle
		require.NoError(t, db.First(&got, a.ID).Error)
		return got.ViewsCount
	}

	counted, err := RecordView(ctx, db, models.ContentTypeMediaArticle, a.ID, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, counted)
	counted, err = RecordView(ctx, db, models.ContentTypeMediaArticle, a.ID, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, counted)
	assert.Equal(t, int64(2), views())

	for i := 0; i < 3; i++ {
		counted, err = RecordView(ctx, db, models.ContentTypeMediaArticle, a.ID, "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, counted)
	}
	assert.Equal(t, int64(2), views())
}

func TestRecordViewSeparatesContentTypes(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	n := newsItem("Новость", true)
	require.NoError(t, NewNewsService(db).Create(ctx, n, nil))

	counted, err := RecordView(ctx, db, models.ContentTypeNews, n.ID, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, counted)

	var got models.News
	require.NoError(t, db.First(&got, n.ID).Error)
	assert.Equal(t, int64(1), got.ViewsCount)

	_, err = RecordView(ctx, db, "banner", 1, "10.0.0.1")
	assert.Error(t, err)
}
