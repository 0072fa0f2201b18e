package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/services"
)

type socialRequest struct {
	Section      *string    `json:"section" binding:"omitempty,oneof=club opportunity volunteering sport"`
	Title        *i18nInput `json:"title"`
	Description  *i18nInput `json:"description"`
	ImageURL     *string    `json:"image_url"`
	LinkURL      *string    `json:"link_url"`
	ContactEmail *string    `json:"contact_email" binding:"omitempty,email"`
	SortOrder    *int       `json:"sort_order"`
	IsActive     *bool      `json:"is_active"`
}

func (r *socialRequest) apply(s *models.SocialOpportunity) error {
	if err := checkURLs(map[string]*string{"image_url": r.ImageURL, "link_url": r.LinkURL}); err != nil {
		return err
	}
	if r.Section != nil {
		s.Section = models.SocialSection(*r.Section)
	}
	r.Title.applyTo(&s.Title)
	r.Description.applyTo(&s.Description)
	setString(&s.Image.URL, r.ImageURL)
	setString(&s.LinkURL, r.LinkURL)
	setString(&s.ContactEmail, r.ContactEmail)
	setInt(&s.SortOrder, r.SortOrder)
	setBool(&s.IsActive, r.IsActive)

	errs := services.FieldErrors{}
	if !s.Section.Valid() {
		errs.Add("section", "required")
	}
	if s.Title.Trimmed().RU == "" {
		errs.Add("title_ru", "required")
	}
	return errs.Err()
}

// SocialController - раздел «Студенческая жизнь»
type SocialController struct {
	db    *gorm.DB
	media *services.MediaService
}

func NewSocialController(db *gorm.DB, media *services.MediaService) *SocialController {
	return &SocialController{db: db, media: media}
}

// GET /social?section=club
func (sc *SocialController) List(c *gin.Context) {
	q := sc.db.WithContext(c.Request.Context())
	if !includeDrafts(c) {
		q = q.Where("is_active = ?", true)
	}
	if v := c.Query("section"); v != "" {
		section := models.SocialSection(strings.ToLower(v))
		if !section.Valid() {
			invalid(c, services.FieldErrors{"section": "must be one of club, opportunity, volunteering, sport"})
			return
		}
		q = q.Where("section = ?", section)
	}
	var items []models.SocialOpportunity
	if err := q.Order("section ASC").Order("sort_order ASC").Order("id ASC").Find(&items).Error; err != nil {
		handleError(c, err, "list social")
		return
	}
	lang := requestLang(c)
	data := make([]gin.H, 0, len(items))
	for i := range items {
		data = append(data, sc.toItem(&items[i], lang))
	}
	ok(c, http.StatusOK, data)
}

// GET /social/:id
func (sc *SocialController) Get(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	q := sc.db.WithContext(c.Request.Context())
	if !isStaff(c) {
		q = q.Where("is_active = ?", true)
	}
	var s models.SocialOpportunity
	if err := q.First(&s, id).Error; err != nil {
		handleError(c, err, "get social")
		return
	}
	ok(c, http.StatusOK, sc.toItem(&s, requestLang(c)))
}

// POST /social
func (sc *SocialController) Create(c *gin.Context) {
	var req socialRequest
	if !bindJSON(c, &req) {
		return
	}
	s := models.SocialOpportunity{IsActive: true}
	if err := req.apply(&s); err != nil {
		handleError(c, err, "create social")
		return
	}
	if err := sc.db.WithContext(c.Request.Context()).Create(&s).Error; err != nil {
		handleError(c, err, "create social")
		return
	}
	ok(c, http.StatusCreated, sc.toItem(&s, requestLang(c)))
}

// PUT /social/:id
func (sc *SocialController) Update(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	var req socialRequest
	if !bindJSON(c, &req) {
		return
	}
	db := sc.db.WithContext(c.Request.Context())
	var s models.SocialOpportunity
	if err := db.First(&s, id).Error; err != nil {
		handleError(c, err, "get social")
		return
	}
	if err := req.apply(&s); err != nil {
		handleError(c, err, "update social")
		return
	}
	if err := db.Save(&s).Error; err != nil {
		handleError(c, err, "update social")
		return
	}
	ok(c, http.StatusOK, sc.toItem(&s, requestLang(c)))
}

// DELETE /social/:id
func (sc *SocialController) Delete(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	res := sc.db.WithContext(c.Request.Context()).Delete(&models.SocialOpportunity{}, id)
	if res.Error != nil {
		handleError(c, res.Error, "delete social")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	ok(c, http.StatusOK, gin.H{"id": id})
}

func (sc *SocialController) toItem(s *models.SocialOpportunity, lang models.Lang) gin.H {
	h := gin.H{
		"id":            s.ID,
		"section":       s.Section,
		"image":         s.Image.EffectiveURL(sc.media.URL),
		"image_file":    s.Image.File,
		"image_url":     s.Image.URL,
		"link_url":      s.LinkURL,
		"contact_email": s.ContactEmail,
		"sort_order":    s.SortOrder,
		"is_active":     s.IsActive,
	}
	putTranslated(h, "title", s.Title, lang)
	putTranslated(h, "description", s.Description, lang)
	return h
}
