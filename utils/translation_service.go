package utils

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	defaultLibreTranslateURL = "https://libretranslate.com/translate"
	defaultMyMemoryURL       = "https://api.mymemory.translated.net/get"
	translationCacheTTL      = 30 * 24 * time.Hour
)

var ErrUnsupportedLang = errors.New("unsupported target language")

// apiLang maps site language codes to ISO 639-1 codes used by translation APIs.
var apiLang = map[string]string{
	"kg": "ky",
	"en": "en",
}

// TranslationService переводит русские тексты на кыргызский и английский через
// LibreTranslate, при ошибке через MyMemory. Результаты кэшируются в Redis.
type TranslationService struct {
	libreURL    string
	myMemoryURL string
	client      *http.Client
	redis       *redis.Client
}

func NewTranslationService(apiURL string, rdb *redis.Client) *TranslationService {
	if apiURL == "" {
		apiURL = defaultLibreTranslateURL
	}
	return &TranslationService{
		libreURL:    apiURL,
		myMemoryURL: defaultMyMemoryURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		redis:       rdb,
	}
}

// WithMyMemoryURL overrides the fallback endpoint.
func (ts *TranslationService) WithMyMemoryURL(u string) *TranslationService {
	ts.myMemoryURL = u
	return ts
}

// Translate переводит text с русского на targetLang ("kg" или "en")
func (ts *TranslationService) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if text == "" {
		return "", nil
	}
	code, ok := apiLang[targetLang]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLang, targetLang)
	}

	cacheKey := ts.getCacheKey(text, targetLang)
	if ts.redis != nil {
		if cached, err := ts.redis.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	translated, err := ts.translateLibreTranslate(ctx, text, code)
	if err != nil {
		Logger().Warn("libretranslate failed, trying mymemory", zap.Error(err))
		translated, err = ts.translateMyMemory(ctx, text, code)
	}
	if err != nil {
		return "", fmt.Errorf("all translation APIs failed: %w", err)
	}

	if ts.redis != nil {
		if err := ts.redis.Set(ctx, cacheKey, translated, translationCacheTTL).Err(); err != nil {
			Logger().Warn("translation cache write failed", zap.Error(err))
		}
	}
	return translated, nil
}

func (ts *TranslationService) getCacheKey(text, lang string) string {
	hash := md5.Sum([]byte(text + ":" + lang))
	return fmt.Sprintf("translation:ru:%s:%x", lang, hash)
}

func (ts *TranslationService) translateLibreTranslate(ctx context.Context, text, targetLang string) (string, error) {
	jsonData, err := json.Marshal(map[string]string{
		"q":      text,
		"source": "ru",
		"target": targetLang,
		"format": "text",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.libreURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("libretranslate API error %d: %s", resp.StatusCode, body)
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.TranslatedText == "" {
		return "", errors.New("no translation returned")
	}
	return result.TranslatedText, nil
}

func (ts *TranslationService) translateMyMemory(ctx context.Context, text, targetLang string) (string, error) {
	reqURL := fmt.Sprintf("%s?q=%s&langpair=ru|%s", ts.myMemoryURL, url.QueryEscape(text), targetLang)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := ts.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("mymemory API error %d: %s", resp.StatusCode, body)
	}

	var result struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
		QuotaFinished bool `json:"quotaFinished"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.QuotaFinished {
		return "", errors.New("mymemory quota finished")
	}
	if result.ResponseData.TranslatedText == "" {
		return "", errors.New("no translation returned")
	}
	return result.ResponseData.TranslatedText, nil
}
