package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/controllers"
	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/services"
)

// SetupMediaRoutes - мониторинг публикаций в СМИ, статистика и аналитика
func SetupMediaRoutes(r *gin.Engine, h handlers, db *gorm.DB, media *services.MediaService, uploads *controllers.MediaUploadController) {
	articles := controllers.NewMediaArticleController(db, services.NewMediaArticleService(db), media)
	articleImage := controllers.LoaderFor[models.MediaArticle]()
	grp := r.Group("/media-articles")
	{
		grp.GET("", h.optional, articles.Search)
		grp.GET("/:id", h.optional, articles.Get)
		grp.POST("", h.auth, articles.Create)
		grp.PUT("/:id", h.auth, articles.Update)
		grp.DELETE("/:id", h.auth, h.adminOnly, articles.Delete)
		grp.PUT("/:id/image", h.auth, uploads.Upload(articleImage))
		grp.DELETE("/:id/image", h.auth, uploads.Clear(articleImage))
	}

	outlets := controllers.NewOutletController(db, media)
	outletLogo := controllers.LoaderFor[models.Outlet]()
	outletGroup := r.Group("/outlets")
	{
		outletGroup.GET("", h.optional, outlets.List)
		outletGroup.GET("/:id", h.optional, outlets.Get)
		outletGroup.POST("", h.auth, outlets.Create)
		outletGroup.PUT("/:id", h.auth, outlets.Update)
		outletGroup.DELETE("/:id", h.auth, h.adminOnly, outlets.Delete)
		outletGroup.PUT("/:id/logo", h.auth, uploads.Upload(outletLogo))
		outletGroup.DELETE("/:id/logo", h.auth, uploads.Clear(outletLogo))
	}

	categories := controllers.NewMediaCategoryController(db)
	categoryGroup := r.Group("/media-categories")
	{
		categoryGroup.GET("", categories.List)
		categoryGroup.POST("", h.auth, categories.Create)
		categoryGroup.PUT("/:id", h.auth, categories.Update)
		categoryGroup.DELETE("/:id", h.auth, h.adminOnly, categories.Delete)
	}

	stats := controllers.NewStatisticsController(services.NewStatisticsService(db), services.NewAnalyticsService(db), media)
	statsGroup := r.Group("/statistics")
	{
		statsGroup.GET("", stats.List)
		statsGroup.GET("/:date", stats.Get)
		statsGroup.POST("/rollup", h.auth, stats.Rollup)
	}
	analytics := r.Group("/analytics")
	{
		analytics.GET("/dashboard", stats.Dashboard)
		analytics.GET("/keywords", stats.Keywords)
	}
}
