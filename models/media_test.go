package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func TestEffectiveURLPrefersUploadedFile(t *testing.T) {
	m := MediaRef{File: "news/a.jpg", URL: "https://example.com/b.jpg"}
	u := m.EffectiveURL(publicURL)
	require.NotNil(t, u)
	assert.Equal(t, "https://cdn.example.com/news/a.jpg", *u)
}

func TestEffectiveURLFallsBackToExternal(t *testing.T) {
	m := MediaRef{URL: "https://example.com/b.jpg"}
	u := m.EffectiveURL(publicURL)
	require.NotNil(t, u)
	assert.Equal(t, "https://example.com/b.jpg", *u)
}

func TestEffectiveURLAbsent(t *testing.T) {
	assert.Nil(t, MediaRef{}.EffectiveURL(publicURL))
	assert.Nil(t, MediaRef{File: "  ", URL: " "}.EffectiveURL(publicURL))
}

func TestCountedOutlets(t *testing.T) {
	assert.Nil(t, (&MediaArticle{OutletID: 3}).CountedOutlets())
	assert.Equal(t, []uint{3}, (&MediaArticle{OutletID: 3, IsPublished: true}).CountedOutlets())
}
