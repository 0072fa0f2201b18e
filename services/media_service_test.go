package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/storage"
	"github.com/IbroIT/SU-back-back-sub001/testutil"
)

func TestMediaReplaceAndClear(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	root := t.TempDir()
	store, err := storage.NewLocalStore(root, "/media")
	require.NoError(t, err)
	svc := NewMediaService(db, store)

	banner := &models.Banner{Title: models.TranslatedText{RU: "Приём 2026"}, Image: models.MediaRef{URL: "https://example.com/b.jpg"}}
	require.NoError(t, db.Create(banner).Error)

	form := buildForm(t, nil, upload{"file", "banner.png", 64})
	require.NoError(t, svc.Replace(ctx, banner, form.File["file"][0]))
	first := banner.Image.File
	require.NotEmpty(t, first)
	assert.FileExists(t, filepath.Join(root, first))

	var stored models.Banner
	require.NoError(t, db.First(&stored, banner.ID).Error)
	assert.Equal(t, first, stored.Image.File)
	assert.Equal(t, "/media/"+first, *stored.Image.EffectiveURL(svc.URL))

	// replacing removes the previous object
	form = buildForm(t, nil, upload{"file", "banner2.jpg", 64})
	require.NoError(t, svc.Replace(ctx, banner, form.File["file"][0]))
	assert.NotEqual(t, first, banner.Image.File)
	_, err = os.Stat(filepath.Join(root, first))
	assert.True(t, os.IsNotExist(err))

	second := banner.Image.File
	require.NoError(t, svc.Clear(ctx, banner))
	_, err = os.Stat(filepath.Join(root, second))
	assert.True(t, os.IsNotExist(err))

	var cleared models.Banner
	require.NoError(t, db.First(&cleared, banner.ID).Error)
	assert.Empty(t, cleared.Image.File)
	assert.Equal(t, "https://example.com/b.jpg", *cleared.Image.EffectiveURL(svc.URL))
}

func TestMediaReplaceRejectsNonImages(t *testing.T) {
	db := testutil.NewDB(t)
	store, err := storage.NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)
	svc := NewMediaService(db, store)

	outlet := createOutlet(t, db, "outlet")
	form := buildForm(t, nil, upload{"file", "logo.exe", 10})
	err = svc.Replace(context.Background(), outlet, form.File["file"][0])
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "file")
}
