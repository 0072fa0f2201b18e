package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/services"
)

type bannerRequest struct {
	Title      *i18nInput `json:"title"`
	Subtitle   *i18nInput `json:"subtitle"`
	ButtonText *i18nInput `json:"button_text"`
	ImageURL   *string    `json:"image_url"`
	LinkURL    *string    `json:"link_url"`
	SortOrder  *int       `json:"sort_order"`
	IsActive   *bool      `json:"is_active"`
}

func (r *bannerRequest) apply(b *models.Banner) error {
	if err := checkURLs(map[string]*string{"image_url": r.ImageURL, "link_url": r.LinkURL}); err != nil {
		return err
	}
	r.Title.applyTo(&b.Title)
	r.Subtitle.applyTo(&b.Subtitle)
	r.ButtonText.applyTo(&b.ButtonText)
	setString(&b.Image.URL, r.ImageURL)
	setString(&b.LinkURL, r.LinkURL)
	setInt(&b.SortOrder, r.SortOrder)
	setBool(&b.IsActive, r.IsActive)
	if b.Title.Trimmed().RU == "" {
		return services.FieldErrors{"title_ru": "required"}
	}
	return nil
}

// BannerController - слайдер на главной
type BannerController struct {
	db    *gorm.DB
	media *services.MediaService
}

func NewBannerController(db *gorm.DB, media *services.MediaService) *BannerController {
	return &BannerController{db: db, media: media}
}

// GET /banners
func (bc *BannerController) List(c *gin.Context) {
	q := bc.db.WithContext(c.Request.Context())
	if !includeDrafts(c) {
		q = q.Where("is_active = ?", true)
	}
	var items []models.Banner
	if err := q.Order("sort_order ASC").Order("id ASC").Find(&items).Error; err != nil {
		handleError(c, err, "list banners")
		return
	}
	lang := requestLang(c)
	data := make([]gin.H, 0, len(items))
	for i := range items {
		data = append(data, bc.toItem(&items[i], lang))
	}
	ok(c, http.StatusOK, data)
}

// GET /banners/:id
func (bc *BannerController) Get(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	q := bc.db.WithContext(c.Request.Context())
	if !isStaff(c) {
		q = q.Where("is_active = ?", true)
	}
	var b models.Banner
	if err := q.First(&b, id).Error; err != nil {
		handleError(c, err, "get banner")
		return
	}
	ok(c, http.StatusOK, bc.toItem(&b, requestLang(c)))
}

// POST /banners
func (bc *BannerController) Create(c *gin.Context) {
	var req bannerRequest
	if !bindJSON(c, &req) {
		return
	}
	b := models.Banner{IsActive: true}
	if err := req.apply(&b); err != nil {
		handleError(c, err, "create banner")
		return
	}
	if err := bc.db.WithContext(c.Request.Context()).Create(&b).Error; err != nil {
		handleError(c, err, "create banner")
		return
	}
	ok(c, http.StatusCreated, bc.toItem(&b, requestLang(c)))
}

// PUT /banners/:id
func (bc *BannerController) Update(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	var req bannerRequest
	if !bindJSON(c, &req) {
		return
	}
	db := bc.db.WithContext(c.Request.Context())
	var b models.Banner
	if err := db.First(&b, id).Error; err != nil {
		handleError(c, err, "get banner")
		return
	}
	if err := req.apply(&b); err != nil {
		handleError(c, err, "update banner")
		return
	}
	if err := db.Save(&b).Error; err != nil {
		handleError(c, err, "update banner")
		return
	}
	ok(c, http.StatusOK, bc.toItem(&b, requestLang(c)))
}

// DELETE /banners/:id
func (bc *BannerController) Delete(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	res := bc.db.WithContext(c.Request.Context()).Delete(&models.Banner{}, id)
	if res.Error != nil {
		handleError(c, res.Error, "delete banner")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	ok(c, http.StatusOK, gin.H{"id": id})
}

func (bc *BannerController) toItem(b *models.Banner, lang models.Lang) gin.H {
	h := gin.H{
		"id":         b.ID,
		"image":      b.Image.EffectiveURL(bc.media.URL),
		"image_file": b.Image.File,
		"image_url":  b.Image.URL,
		"link_url":   b.LinkURL,
		"sort_order": b.SortOrder,
		"is_active":  b.IsActive,
	}
	putTranslated(h, "title", b.Title, lang)
	putTranslated(h, "subtitle", b.Subtitle, lang)
	putTranslated(h, "button_text", b.ButtonText, lang)
	return h
}
