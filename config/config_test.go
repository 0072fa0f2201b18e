package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ADMISSIONS_MAX_FILE_MB", "")
	t.Setenv("CORS_ORIGINS", "https://salymbekov.com, http://localhost:3000 ,")
	t.Setenv("MEDIA_PUBLIC_URL", "https://cdn.example.com/media/")
	t.Setenv("SMTP_PORT", "not-a-number")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg := LoadConfig()

	assert.Equal(t, int64(5), cfg.AdmissionsMaxFileMB)
	assert.Equal(t, []string{"https://salymbekov.com", "http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "https://cdn.example.com/media", cfg.MediaPublicURL)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "ru", cfg.Site.DefaultLang)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestTrustedProxiesAndDSN(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 172.16.0.0/12")
	t.Setenv("DB_HOST", "db")

	cfg := LoadConfig()

	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.TrustedProxies)
	assert.Contains(t, cfg.DSN(), "host=db ")
	assert.True(t, strings.HasSuffix(cfg.DSN(), " TimeZone=UTC"), cfg.DSN())
}

func TestSiteIsSetOnce(t *testing.T) {
	InitSite(SiteSettings{Header: "first"})
	InitSite(SiteSettings{Header: "second"})
	assert.Equal(t, "first", Site().Header)
}
