package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/services"
)

// OwnerLoader finds the entity whose image is being changed. Build one with
// LoaderFor.
type OwnerLoader func(db *gorm.DB, id uint) (models.MediaOwner, error)

func LoaderFor[T any, PT interface {
	*T
	models.MediaOwner
}]() OwnerLoader {
	return func(db *gorm.DB, id uint) (models.MediaOwner, error) {
		var v T
		if err := db.First(&v, id).Error; err != nil {
			return nil, err
		}
		return PT(&v), nil
	}
}

// MediaUploadController serves PUT/DELETE /<resource>/:id/<image> for every
// entity with an uploaded image.
type MediaUploadController struct {
	db    *gorm.DB
	media *services.MediaService
}

func NewMediaUploadController(db *gorm.DB, media *services.MediaService) *MediaUploadController {
	return &MediaUploadController{db: db, media: media}
}

func (mc *MediaUploadController) result(id uint, owner models.MediaOwner) gin.H {
	ref := owner.MediaField()
	return gin.H{
		"id":   id,
		"file": ref.File,
		"url":  ref.EffectiveURL(mc.media.URL),
	}
}

// Upload: multipart/form-data, поле "file"
func (mc *MediaUploadController) Upload(load OwnerLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, okID := parseIDParam(c)
		if !okID {
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxImageSize+1<<20)

		file, err := c.FormFile("file")
		if err != nil {
			invalid(c, services.FieldErrors{"file": "required"})
			return
		}
		owner, err := load(mc.db.WithContext(c.Request.Context()), id)
		if err != nil {
			handleError(c, err, "load media owner")
			return
		}
		if err := mc.media.Replace(c.Request.Context(), owner, file); err != nil {
			handleError(c, err, "upload media")
			return
		}
		ok(c, http.StatusOK, mc.result(id, owner))
	}
}

func (mc *MediaUploadController) Clear(load OwnerLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, okID := parseIDParam(c)
		if !okID {
			return
		}
		owner, err := load(mc.db.WithContext(c.Request.Context()), id)
		if err != nil {
			handleError(c, err, "load media owner")
			return
		}
		if err := mc.media.Clear(c.Request.Context(), owner); err != nil {
			handleError(c, err, "clear media")
			return
		}
		ok(c, http.StatusOK, mc.result(id, owner))
	}
}
