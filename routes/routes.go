package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/config"
	"github.com/IbroIT/SU-back-back-sub001/controllers"
	"github.com/IbroIT/SU-back-back-sub001/middleware"
	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/services"
	"github.com/IbroIT/SU-back-back-sub001/storage"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// Deps are the shared clients the router wires into controllers.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Store  storage.ObjectStore
	Mailer utils.Mailer
}

// handlers groups the middlewares every route file needs.
type handlers struct {
	auth      gin.HandlerFunc
	optional  gin.HandlerFunc
	adminOnly gin.HandlerFunc
}

// SetupRouter создаёт gin.Engine, регистрирует все маршруты и возвращает роутер
func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	// без явного списка gin верит X-Forwarded-For от любого клиента
	if err := r.SetTrustedProxies(d.Config.TrustedProxies); err != nil {
		utils.LogError(err, "invalid TRUSTED_PROXIES, forwarded headers ignored")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.RecoveryMiddleware(), gin.Logger(), middleware.PrometheusMiddleware())

	// CORS middleware ДО роутов
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Accept-Language", "Lang"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "result": nil, "error": "not found"})
	})

	h := handlers{
		auth:      middleware.JWTAuthMiddleware(d.Config.JWTSecret, d.Redis),
		optional:  middleware.OptionalJWTMiddleware(d.Config.JWTSecret, d.Redis),
		adminOnly: middleware.RequireRole(models.RoleAdmin),
	}

	// загруженные файлы отдаём сами, только если нет MinIO
	if local, ok := d.Store.(*storage.LocalStore); ok {
		r.Static(d.Config.MediaPublicURL, local.Root())
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	site := controllers.NewSiteController(d.DB, d.Redis)
	r.GET("/healthz", site.Health)
	r.GET("/site", site.Settings)

	authService := services.NewAuthService(d.DB, d.Redis, d.Config.JWTSecret)
	authController := controllers.NewAuthController(authService)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimit(d.Redis, "login", 10, 15*time.Minute), authController.Login)
		authGroup.POST("/logout", h.auth, authController.Logout)
		authGroup.GET("/me", h.auth, authController.Me)
	}

	media := services.NewMediaService(d.DB, d.Store)
	uploads := controllers.NewMediaUploadController(d.DB, media)

	SetupNewsRoutes(r, h, d.DB, media, uploads)
	SetupMediaRoutes(r, h, d.DB, media, uploads)
	SetupSiteContentRoutes(r, h, d.DB, media, uploads)

	admissions := services.NewAdmissionsService(d.Mailer, d.Config.AdmissionsEmail,
		d.Config.AdmissionsMaxFileMB, d.Config.AdmissionsMaxTotalMB)
	admissionsController := controllers.NewAdmissionsController(admissions)
	r.POST("/admissions/apply",
		middleware.RateLimit(d.Redis, "admissions", 10, time.Hour),
		admissionsController.Apply)

	return r
}
