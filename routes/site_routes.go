package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/controllers"
	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/services"
)

// SetupSiteContentRoutes - карьера, баннеры и студенческая жизнь
func SetupSiteContentRoutes(r *gin.Engine, h handlers, db *gorm.DB, media *services.MediaService, uploads *controllers.MediaUploadController) {
	careers := controllers.NewCareerController(db)
	vacancies := r.Group("/vacancies")
	{
		vacancies.GET("", h.optional, careers.List)
		vacancies.GET("/:id", h.optional, careers.Get)
		vacancies.POST("", h.auth, careers.Create)
		vacancies.PUT("/:id", h.auth, careers.Update)
		vacancies.DELETE("/:id", h.auth, h.adminOnly, careers.Delete)
	}

	banners := controllers.NewBannerController(db, media)
	bannerImage := controllers.LoaderFor[models.Banner]()
	bannerGroup := r.Group("/banners")
	{
		bannerGroup.GET("", h.optional, banners.List)
		bannerGroup.GET("/:id", h.optional, banners.Get)
		bannerGroup.POST("", h.auth, banners.Create)
		bannerGroup.PUT("/:id", h.auth, banners.Update)
		bannerGroup.DELETE("/:id", h.auth, h.adminOnly, banners.Delete)
		bannerGroup.PUT("/:id/image", h.auth, uploads.Upload(bannerImage))
		bannerGroup.DELETE("/:id/image", h.auth, uploads.Clear(bannerImage))
	}

	social := controllers.NewSocialController(db, media)
	socialImage := controllers.LoaderFor[models.SocialOpportunity]()
	socialGroup := r.Group("/social")
	{
		socialGroup.GET("", h.optional, social.List)
		socialGroup.GET("/:id", h.optional, social.Get)
		socialGroup.POST("", h.auth, social.Create)
		socialGroup.PUT("/:id", h.auth, social.Update)
		socialGroup.DELETE("/:id", h.auth, h.adminOnly, social.Delete)
		socialGroup.PUT("/:id/image", h.auth, uploads.Upload(socialImage))
		socialGroup.DELETE("/:id/image", h.auth, uploads.Clear(socialImage))
	}
}
