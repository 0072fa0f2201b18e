package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/services"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

type tagRequest struct {
	Slug *string    `json:"slug" binding:"omitempty,max=100"`
	Name *i18nInput `json:"name"`
}

type TagController struct {
	db *gorm.DB
}

func NewTagController(db *gorm.DB) *TagController {
	return &TagController{db: db}
}

func (tc *TagController) save(c *gin.Context, tag *models.Tag, req *tagRequest) error {
	setString(&tag.Slug, req.Slug)
	req.Name.applyTo(&tag.Name)
	if tag.Name.Trimmed().RU == "" {
		return services.FieldErrors{"name_ru": "required"}
	}
	if tag.Slug == "" {
		base := utils.Slugify(tag.Name.RU)
		slug, err := utils.UniqueSlug(tc.db, &models.Tag{}, base, tag.ID)
		if err != nil {
			return err
		}
		tag.Slug = slug
	} else {
		tag.Slug = utils.Slugify(tag.Slug)
	}
	return services.DuplicateAs(tc.db.WithContext(c.Request.Context()).Omit("usage_count").Save(tag).Error, "slug")
}

// GET /tags: most used first
func (tc *TagController) List(c *gin.Context) {
	var tags []models.Tag
	if err := tc.db.WithContext(c.Request.Context()).Order("usage_count DESC").Order("slug ASC").Find(&tags).Error; err != nil {
		handleError(c, err, "list tags")
		return
	}
	lang := requestLang(c)
	data := make([]gin.H, 0, len(tags))
	for _, t := range tags {
		data = append(data, tagItem(t, lang))
	}
	ok(c, http.StatusOK, data)
}

// POST /tags
func (tc *TagController) Create(c *gin.Context) {
	var req tagRequest
	if !bindJSON(c, &req) {
		return
	}
	var tag models.Tag
	if err := tc.save(c, &tag, &req); err != nil {
		handleError(c, err, "create tag")
		return
	}
	ok(c, http.StatusCreated, tagItem(tag, requestLang(c)))
}

// PUT /tags/:id
func (tc *TagController) Update(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	var req tagRequest
	if !bindJSON(c, &req) {
		return
	}
	var tag models.Tag
	if err := tc.db.WithContext(c.Request.Context()).First(&tag, id).Error; err != nil {
		handleError(c, err, "get tag")
		return
	}
	if err := tc.save(c, &tag, &req); err != nil {
		handleError(c, err, "update tag")
		return
	}
	ok(c, http.StatusOK, tagItem(tag, requestLang(c)))
}

// DELETE /tags/:id: снимает метку со всех новостей
func (tc *TagController) Delete(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	err := tc.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, id).Error; err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", tag.ID).Delete(&models.NewsTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	if err != nil {
		handleError(c, err, "delete tag")
		return
	}
	ok(c, http.StatusOK, gin.H{"id": id})
}

func tagItem(t models.Tag, lang models.Lang) gin.H {
	h := gin.H{
		"id":          t.ID,
		"slug":        t.Slug,
		"usage_count": t.UsageCount,
	}
	putTranslated(h, "name", t.Name, lang)
	return h
}
