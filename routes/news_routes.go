package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/controllers"
	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/services"
)

func SetupNewsRoutes(r *gin.Engine, h handlers, db *gorm.DB, media *services.MediaService, uploads *controllers.MediaUploadController) {
	newsController := controllers.NewNewsController(db, services.NewNewsService(db), media)
	newsImage := controllers.LoaderFor[models.News]()
	grp := r.Group("/news")
	{
		grp.GET("", h.optional, newsController.List)
		grp.GET("/:id", h.optional, newsController.Get)
		grp.POST("", h.auth, newsController.Create)
		grp.PUT("/:id", h.auth, newsController.Update)
		grp.DELETE("/:id", h.auth, h.adminOnly, newsController.Delete)
		grp.PUT("/:id/image", h.auth, uploads.Upload(newsImage))
		grp.DELETE("/:id/image", h.auth, uploads.Clear(newsImage))
	}

	tagController := controllers.NewTagController(db)
	tags := r.Group("/tags")
	{
		tags.GET("", tagController.List)
		tags.POST("", h.auth, tagController.Create)
		tags.PUT("/:id", h.auth, tagController.Update)
		tags.DELETE("/:id", h.auth, h.adminOnly, tagController.Delete)
	}
}
