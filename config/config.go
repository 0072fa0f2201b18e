package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string

	JWTSecret string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	// Admissions upload limits
	AdmissionsEmail      string
	AdmissionsMaxFileMB  int64
	AdmissionsMaxTotalMB int64

	// Object storage: "minio" or "local"
	StorageDriver  string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MediaPublicURL string
	MediaRoot      string

	CORSOrigins []string
	// адреса/подсети прокси, которым доверяем X-Forwarded-For; пусто - никому
	TrustedProxies []string
	Timezone       string
	StatsCron      string

	LogLevel string
	LogDir   string

	AdminEmail    string
	AdminPassword string

	TranslateAPIURL string

	Site SiteSettings
}

// SiteSettings is the header/title block shown by the public site and the
// staff panel. It is fixed at process start.
type SiteSettings struct {
	Header      string `json:"header"`
	Title       string `json:"title"`
	IndexTitle  string `json:"index_title"`
	DefaultLang string `json:"default_lang"`
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return &Config{
		Port:                 getenvOrDefault("PORT", "8080"),
		DBHost:               getenvOrDefault("DB_HOST", "localhost"),
		DBPort:               getenvOrDefault("DB_PORT", "5432"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		DBSSLMode:            getenvOrDefault("DB_SSLMODE", "disable"),
		RedisAddr:            getenvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		SMTPHost:             os.Getenv("SMTP_HOST"),
		SMTPPort:             getenvInt("SMTP_PORT", 587),
		SMTPUser:             os.Getenv("SMTP_USER"),
		SMTPPass:             os.Getenv("SMTP_PASS"),
		AdmissionsEmail:      os.Getenv("ADMISSIONS_EMAIL"),
		AdmissionsMaxFileMB:  int64(getenvInt("ADMISSIONS_MAX_FILE_MB", 5)),
		AdmissionsMaxTotalMB: int64(getenvInt("ADMISSIONS_MAX_TOTAL_MB", 20)),
		StorageDriver:        strings.ToLower(getenvOrDefault("STORAGE_DRIVER", "local")),
		MinioEndpoint:        os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:       os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:       os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:          getenvOrDefault("MINIO_BUCKET", "media"),
		MinioUseSSL:          getenvBool("MINIO_USE_SSL", false),
		MediaPublicURL:       strings.TrimRight(getenvOrDefault("MEDIA_PUBLIC_URL", "/media"), "/"),
		MediaRoot:            getenvOrDefault("MEDIA_ROOT", "./uploads"),
		CORSOrigins:          splitList(getenvOrDefault("CORS_ORIGINS", "http://localhost:3000")),
		TrustedProxies:       splitList(os.Getenv("TRUSTED_PROXIES")),
		Timezone:             getenvOrDefault("TIMEZONE", "Asia/Bishkek"),
		StatsCron:            getenvOrDefault("STATS_CRON", "30 0 * * *"),
		LogLevel:             getenvOrDefault("LOG_LEVEL", "info"),
		LogDir:               getenvOrDefault("LOG_DIR", "logs"),
		AdminEmail:           os.Getenv("ADMIN_EMAIL"),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
		TranslateAPIURL:      os.Getenv("TRANSLATE_API_URL"),
		Site: SiteSettings{
			Header:      getenvOrDefault("SITE_HEADER", "Salymbekov University"),
			Title:       getenvOrDefault("SITE_TITLE", "Salymbekov University"),
			IndexTitle:  getenvOrDefault("SITE_INDEX_TITLE", "Content management"),
			DefaultLang: "ru",
		},
	}
}

// DSN builds the postgres connection string. The session runs in UTC so that
// date columns compare against midnight-UTC bounds without shifting a day.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

var (
	siteOnce sync.Once
	site     SiteSettings
)

// InitSite stores the site settings. Only the first call has an effect.
func InitSite(s SiteSettings) {
	siteOnce.Do(func() {
		site = s
	})
}

// Site returns a copy of the settings passed to InitSite.
func Site() SiteSettings {
	return site
}

// getenvOrDefault returns the environment variable value if set, otherwise returns def
func getenvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
