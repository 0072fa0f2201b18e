package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/services"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

type mediaArticleRequest struct {
	Slug            *string    `json:"slug" binding:"omitempty,max=255"`
	Title           *i18nInput `json:"title"`
	Description     *i18nInput `json:"description"`
	Content         *i18nInput `json:"content"`
	Keywords        *i18nInput `json:"keywords"`
	Author          *i18nInput `json:"author"`
	ImageURL        *string    `json:"image_url"`
	OutletID        *uint      `json:"outlet_id"`
	CategoryID      *uint      `json:"category_id"`
	ClearCategory   bool       `json:"clear_category"`
	Sentiment       *string    `json:"sentiment" binding:"omitempty,oneof=positive neutral negative"`
	ImportanceScore *int       `json:"importance_score" binding:"omitempty,min=1,max=10"`
	PublicationDate *dateInput `json:"publication_date"`
	OriginalURL     *string    `json:"original_url"`
	Reach           *int64     `json:"reach" binding:"omitempty,min=0"`
	IsPublished     *bool      `json:"is_published"`
	IsFeatured      *bool      `json:"is_featured"`
	IsVerified      *bool      `json:"is_verified"`

	pubDate time.Time
}

// prepare parses fields the binding tags cannot check.
func (r *mediaArticleRequest) prepare() error {
	if err := checkURLs(map[string]*string{"image_url": r.ImageURL, "original_url": r.OriginalURL}); err != nil {
		return err
	}
	if r.PublicationDate == nil {
		return nil
	}
	d, err := r.PublicationDate.parse()
	if err != nil {
		return services.FieldErrors{"publication_date": "must be a date in YYYY-MM-DD format"}
	}
	r.pubDate = d
	return nil
}

func (r *mediaArticleRequest) apply(a *models.MediaArticle) {
	setString(&a.Slug, r.Slug)
	r.Title.applyTo(&a.Title)
	r.Description.applyTo(&a.Description)
	r.Content.applyTo(&a.Content)
	r.Keywords.applyTo(&a.Keywords)
	r.Author.applyTo(&a.Author)
	setString(&a.Image.URL, r.ImageURL)
	if r.OutletID != nil {
		a.OutletID = *r.OutletID
	}
	if r.CategoryID != nil {
		id := *r.CategoryID
		a.CategoryID = &id
	}
	if r.ClearCategory {
		a.CategoryID = nil
	}
	if r.Sentiment != nil {
		a.Sentiment = models.Sentiment(*r.Sentiment)
	}
	setInt(&a.ImportanceScore, r.ImportanceScore)
	if r.PublicationDate != nil {
		a.PublicationDate = r.pubDate
	}
	setString(&a.OriginalURL, r.OriginalURL)
	if r.Reach != nil {
		a.Reach = *r.Reach
	}
	setBool(&a.IsPublished, r.IsPublished)
	setBool(&a.IsFeatured, r.IsFeatured)
	setBool(&a.IsVerified, r.IsVerified)
}

type MediaArticleController struct {
	db       *gorm.DB
	articles *services.MediaArticleService
	media    *services.MediaService
}

func NewMediaArticleController(db *gorm.DB, articles *services.MediaArticleService, media *services.MediaService) *MediaArticleController {
	return &MediaArticleController{db: db, articles: articles, media: media}
}

// GET /media-articles
// Query: q, category, outlet, sentiment, importance_min, importance_max,
// date_from, date_to, featured, verified, sort, page, page_size, lang
func (mc *MediaArticleController) Search(c *gin.Context) {
	f, err := services.ParseMediaArticleFilter(c.Request.URL.Query())
	if err != nil {
		handleError(c, err, "parse media filter")
		return
	}
	f.IncludeDraft = includeDrafts(c)

	items, total, err := mc.articles.Search(c.Request.Context(), f)
	if err != nil {
		handleError(c, err, "search media articles")
		return
	}
	lang := requestLang(c)
	data := make([]gin.H, 0, len(items))
	for i := range items {
		data = append(data, mc.toItem(&items[i], lang, false))
	}
	ok(c, http.StatusOK, listResult(f.Page, total, data))
}

// GET /media-articles/:id  (id или slug)
func (mc *MediaArticleController) Get(c *gin.Context) {
	a, err := mc.articles.Get(c.Request.Context(), c.Param("id"), isStaff(c))
	if err != nil {
		handleError(c, err, "get media article")
		return
	}
	if a.IsPublished {
		counted, err := services.RecordView(c.Request.Context(), mc.db, models.ContentTypeMediaArticle, a.ID, c.ClientIP())
		if err != nil {
			utils.LogError(err, "record media article view")
		}
		if counted {
			a.ViewsCount++
		}
	}
	ok(c, http.StatusOK, mc.toItem(a, requestLang(c), true))
}

// POST /media-articles
func (mc *MediaArticleController) Create(c *gin.Context) {
	var req mediaArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.prepare(); err != nil {
		handleError(c, err, "create media article")
		return
	}
	var a models.MediaArticle
	req.apply(&a)
	if err := mc.articles.Create(c.Request.Context(), &a); err != nil {
		handleError(c, err, "create media article")
		return
	}
	created, err := mc.articles.Get(c.Request.Context(), a.Slug, true)
	if err != nil {
		handleError(c, err, "reload media article")
		return
	}
	ok(c, http.StatusCreated, mc.toItem(created, requestLang(c), true))
}

// PUT /media-articles/:id
func (mc *MediaArticleController) Update(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	var req mediaArticleRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := req.prepare(); err != nil {
		handleError(c, err, "update media article")
		return
	}
	a, err := mc.articles.Update(c.Request.Context(), id, req.apply)
	if err != nil {
		handleError(c, err, "update media article")
		return
	}
	ok(c, http.StatusOK, mc.toItem(a, requestLang(c), true))
}

// DELETE /media-articles/:id
func (mc *MediaArticleController) Delete(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	if err := mc.articles.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err, "delete media article")
		return
	}
	ok(c, http.StatusOK, gin.H{"id": id})
}

func (mc *MediaArticleController) toItem(a *models.MediaArticle, lang models.Lang, full bool) gin.H {
	h := gin.H{
		"id":               a.ID,
		"slug":             a.Slug,
		"image":            a.Image.EffectiveURL(mc.media.URL),
		"image_file":       a.Image.File,
		"image_url":        a.Image.URL,
		"outlet_id":        a.OutletID,
		"category_id":      a.CategoryID,
		"sentiment":        a.Sentiment,
		"importance_score": a.ImportanceScore,
		"publication_date": formatDate(a.PublicationDate),
		"original_url":     a.OriginalURL,
		"views_count":      a.ViewsCount,
		"reach":            a.Reach,
		"is_published":     a.IsPublished,
		"is_featured":      a.IsFeatured,
		"is_verified":      a.IsVerified,
		"created_at":       formatTime(a.CreatedAt),
		"updated_at":       formatTime(a.UpdatedAt),
	}
	putTranslated(h, "title", a.Title, lang)
	putTranslated(h, "description", a.Description, lang)
	putTranslated(h, "keywords", a.Keywords, lang)
	putTranslated(h, "author", a.Author, lang)
	if full {
		putTranslated(h, "content", a.Content, lang)
	}
	h["excerpt"] = utils.Excerpt(a.Content.Resolve(lang), excerptLength)

	if a.Outlet != nil {
		h["outlet"] = gin.H{
			"id":   a.Outlet.ID,
			"name": a.Outlet.Name.Resolve(lang),
			"logo": a.Outlet.Logo.EffectiveURL(mc.media.URL),
		}
	} else {
		h["outlet"] = nil
	}
	if a.Category != nil {
		h["category"] = gin.H{
			"id":   a.Category.ID,
			"slug": a.Category.Slug,
			"name": a.Category.Name.Resolve(lang),
		}
	} else {
		h["category"] = nil
	}
	return h
}

type outletRequest struct {
	Name        *i18nInput `json:"name"`
	Description *i18nInput `json:"description"`
	LogoURL     *string    `json:"logo_url"`
	Website     *string    `json:"website"`
	OutletType  *string    `json:"outlet_type" binding:"omitempty,max=50"`
	IsActive    *bool      `json:"is_active"`
}

type OutletController struct {
	db    *gorm.DB
	media *services.MediaService
}

func NewOutletController(db *gorm.DB, media *services.MediaService) *OutletController {
	return &OutletController{db: db, media: media}
}

// GET /outlets
func (oc *OutletController) List(c *gin.Context) {
	q := oc.db.WithContext(c.Request.Context()).Model(&models.Outlet{})
	if !includeDrafts(c) {
		q = q.Where("is_active = ?", true)
	}
	if t := strings.TrimSpace(c.Query("type")); t != "" {
		q = q.Where("outlet_type = ?", t)
	}
	var outlets []models.Outlet
	if err := q.Order("total_articles DESC").Order("id ASC").Find(&outlets).Error; err != nil {
		handleError(c, err, "list outlets")
		return
	}
	lang := requestLang(c)
	data := make([]gin.H, 0, len(outlets))
	for i := range outlets {
		data = append(data, oc.toItem(&outlets[i], lang))
	}
	ok(c, http.StatusOK, data)
}

// GET /outlets/:id
func (oc *OutletController) Get(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	q := oc.db.WithContext(c.Request.Context())
	if !isStaff(c) {
		q = q.Where("is_active = ?", true)
	}
	var o models.Outlet
	if err := q.First(&o, id).Error; err != nil {
		handleError(c, err, "get outlet")
		return
	}
	ok(c, http.StatusOK, oc.toItem(&o, requestLang(c)))
}

func (oc *OutletController) save(c *gin.Context, o *models.Outlet, req *outletRequest) error {
	if err := checkURLs(map[string]*string{"logo_url": req.LogoURL, "website": req.Website}); err != nil {
		return err
	}
	req.Name.applyTo(&o.Name)
	req.Description.applyTo(&o.Description)
	setString(&o.Logo.URL, req.LogoURL)
	setString(&o.Website, req.Website)
	setString(&o.OutletType, req.OutletType)
	setBool(&o.IsActive, req.IsActive)
	if o.Name.Trimmed().RU == "" {
		return services.FieldErrors{"name_ru": "required"}
	}
	return oc.db.WithContext(c.Request.Context()).Omit("total_articles").Save(o).Error
}

// POST /outlets
func (oc *OutletController) Create(c *gin.Context) {
	var req outletRequest
	if !bindJSON(c, &req) {
		return
	}
	o := models.Outlet{IsActive: true}
	if err := oc.save(c, &o, &req); err != nil {
		handleError(c, err, "create outlet")
		return
	}
	ok(c, http.StatusCreated, oc.toItem(&o, requestLang(c)))
}

// PUT /outlets/:id
func (oc *OutletController) Update(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	var req outletRequest
	if !bindJSON(c, &req) {
		return
	}
	var o models.Outlet
	if err := oc.db.WithContext(c.Request.Context()).First(&o, id).Error; err != nil {
		handleError(c, err, "get outlet")
		return
	}
	if err := oc.save(c, &o, &req); err != nil {
		handleError(c, err, "update outlet")
		return
	}
	ok(c, http.StatusOK, oc.toItem(&o, requestLang(c)))
}

// DELETE /outlets/:id: только если у СМИ нет публикаций
func (oc *OutletController) Delete(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	// строка СМИ блокируется до конца транзакции: новая публикация
	// ждёт её и видит, что СМИ уже удалено
	err := oc.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var o models.Outlet
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, id).Error; err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&models.MediaArticle{}).Where("outlet_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return services.FieldErrors{"id": "outlet has media articles"}
		}
		return tx.Delete(&o).Error
	})
	if err != nil {
		handleError(c, err, "delete outlet")
		return
	}
	ok(c, http.StatusOK, gin.H{"id": id})
}

func (oc *OutletController) toItem(o *models.Outlet, lang models.Lang) gin.H {
	h := gin.H{
		"id":             o.ID,
		"logo":           o.Logo.EffectiveURL(oc.media.URL),
		"logo_file":      o.Logo.File,
		"logo_url":       o.Logo.URL,
		"website":        o.Website,
		"outlet_type":    o.OutletType,
		"is_active":      o.IsActive,
		"total_articles": o.TotalArticles,
	}
	putTranslated(h, "name", o.Name, lang)
	putTranslated(h, "description", o.Description, lang)
	return h
}

type categoryRequest struct {
	Slug      *string    `json:"slug" binding:"omitempty,max=100"`
	Name      *i18nInput `json:"name"`
	SortOrder *int       `json:"sort_order"`
}

type MediaCategoryController struct {
	db *gorm.DB
}

func NewMediaCategoryController(db *gorm.DB) *MediaCategoryController {
	return &MediaCategoryController{db: db}
}

// GET /media-categories
func (cc *MediaCategoryController) List(c *gin.Context) {
	var cats []models.MediaCategory
	if err := cc.db.WithContext(c.Request.Context()).Order("sort_order ASC").Order("id ASC").Find(&cats).Error; err != nil {
		handleError(c, err, "list media categories")
		return
	}
	lang := requestLang(c)
	data := make([]gin.H, 0, len(cats))
	for _, cat := range cats {
		data = append(data, categoryItem(cat, lang))
	}
	ok(c, http.StatusOK, data)
}

func (cc *MediaCategoryController) save(c *gin.Context, cat *models.MediaCategory, req *categoryRequest) error {
	setString(&cat.Slug, req.Slug)
	req.Name.applyTo(&cat.Name)
	setInt(&cat.SortOrder, req.SortOrder)
	if cat.Name.Trimmed().RU == "" {
		return services.FieldErrors{"name_ru": "required"}
	}
	if cat.Slug == "" {
		slug, err := utils.UniqueSlug(cc.db, &models.MediaCategory{}, utils.Slugify(cat.Name.RU), cat.ID)
		if err != nil {
			return err
		}
		cat.Slug = slug
	} else {
		cat.Slug = utils.Slugify(cat.Slug)
	}
	return services.DuplicateAs(cc.db.WithContext(c.Request.Context()).Save(cat).Error, "slug")
}

// POST /media-categories
func (cc *MediaCategoryController) Create(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}
	var cat models.MediaCategory
	if err := cc.save(c, &cat, &req); err != nil {
		handleError(c, err, "create media category")
		return
	}
	ok(c, http.StatusCreated, categoryItem(cat, requestLang(c)))
}

// PUT /media-categories/:id
func (cc *MediaCategoryController) Update(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}
	var cat models.MediaCategory
	if err := cc.db.WithContext(c.Request.Context()).First(&cat, id).Error; err != nil {
		handleError(c, err, "get media category")
		return
	}
	if err := cc.save(c, &cat, &req); err != nil {
		handleError(c, err, "update media category")
		return
	}
	ok(c, http.StatusOK, categoryItem(cat, requestLang(c)))
}

// DELETE /media-categories/:id: публикации остаются без рубрики
func (cc *MediaCategoryController) Delete(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	err := cc.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var cat models.MediaCategory
		if err := tx.First(&cat, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.MediaArticle{}).Where("category_id = ?", id).UpdateColumn("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&cat).Error
	})
	if err != nil {
		handleError(c, err, "delete media category")
		return
	}
	ok(c, http.StatusOK, gin.H{"id": id})
}

func categoryItem(cat models.MediaCategory, lang models.Lang) gin.H {
	h := gin.H{
		"id":         cat.ID,
		"slug":       cat.Slug,
		"sort_order": cat.SortOrder,
	}
	putTranslated(h, "name", cat.Name, lang)
	return h
}
