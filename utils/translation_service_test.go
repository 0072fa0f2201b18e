package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateUsesLibreTranslateAndCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ru", req["source"])
		assert.Equal(t, "ky", req["target"])
		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": "Жаңылыктар"})
	}))
	defer srv.Close()

	_, rdb := newRedis(t)
	ts := NewTranslationService(srv.URL, rdb)

	for i := 0; i < 2; i++ {
		out, err := ts.Translate(context.Background(), "Новости", "kg")
		require.NoError(t, err)
		assert.Equal(t, "Жаңылыктар", out)
	}
	assert.Equal(t, 1, calls)
}

func TestTranslateFallsBackToMyMemory(t *testing.T) {
	libre := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer libre.Close()
	mm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ru|en", r.URL.Query().Get("langpair"))
		_, _ = w.Write([]byte(`{"responseData":{"translatedText":"News"}}`))
	}))
	defer mm.Close()

	ts := NewTranslationService(libre.URL, nil).WithMyMemoryURL(mm.URL)
	out, err := ts.Translate(context.Background(), "Новости", "en")
	require.NoError(t, err)
	assert.Equal(t, "News", out)
}

func TestTranslateRejectsUnknownLang(t *testing.T) {
	ts := NewTranslationService("http://127.0.0.1:1", nil)
	_, err := ts.Translate(context.Background(), "Новости", "de")
	assert.ErrorIs(t, err, ErrUnsupportedLang)
}
