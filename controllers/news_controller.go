package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/services"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

type newsRequest struct {
	Kind          *string    `json:"kind" binding:"omitempty,oneof=news event announcement"`
	Slug          *string    `json:"slug" binding:"omitempty,max=255"`
	Title         *i18nInput `json:"title"`
	Summary       *i18nInput `json:"summary"`
	Content       *i18nInput `json:"content"`
	Location      *i18nInput `json:"location"`
	ImageURL      *string    `json:"image_url"`
	PublishedAt   *time.Time `json:"published_at"`
	EventStartsAt *time.Time `json:"event_starts_at"`
	EventEndsAt   *time.Time `json:"event_ends_at"`
	IsPublished   *bool      `json:"is_published"`
	IsFeatured    *bool      `json:"is_featured"`
	TagIDs        []uint     `json:"tag_ids"`
}

func (r *newsRequest) apply(n *models.News) {
	if r.Kind != nil {
		n.Kind = models.NewsKind(*r.Kind)
	}
	setString(&n.Slug, r.Slug)
	r.Title.applyTo(&n.Title)
	r.Summary.applyTo(&n.Summary)
	r.Content.applyTo(&n.Content)
	r.Location.applyTo(&n.Location)
	setString(&n.Image.URL, r.ImageURL)
	if r.PublishedAt != nil {
		n.PublishedAt = *r.PublishedAt
	}
	if r.EventStartsAt != nil {
		n.EventStartsAt = r.EventStartsAt
	}
	if r.EventEndsAt != nil {
		n.EventEndsAt = r.EventEndsAt
	}
	setBool(&n.IsPublished, r.IsPublished)
	setBool(&n.IsFeatured, r.IsFeatured)
}

type NewsController struct {
	db    *gorm.DB
	news  *services.NewsService
	media *services.MediaService
}

func NewNewsController(db *gorm.DB, news *services.NewsService, media *services.MediaService) *NewsController {
	return &NewsController{db: db, news: news, media: media}
}

// GET /news
// Query: ?kind=event&tag=science&featured=true&search=...&page=1&page_size=20&lang=kg
func (nc *NewsController) List(c *gin.Context) {
	page, okPage := parsePage(c)
	if !okPage {
		return
	}
	q := services.NewsQuery{
		Tag:          strings.TrimSpace(c.Query("tag")),
		Search:       strings.TrimSpace(c.Query("search")),
		IncludeDraft: includeDrafts(c),
		Page:         page,
	}
	if k := c.Query("kind"); k != "" {
		q.Kind = models.NewsKind(strings.ToLower(k))
		if !q.Kind.Valid() {
			invalid(c, services.FieldErrors{"kind": "must be one of news, event, announcement"})
			return
		}
	}
	if v := c.Query("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid(c, services.FieldErrors{"featured": "must be true or false"})
			return
		}
		q.Featured = &b
	}

	items, total, err := nc.news.List(c.Request.Context(), q)
	if err != nil {
		handleError(c, err, "list news")
		return
	}
	lang := requestLang(c)
	data := make([]gin.H, 0, len(items))
	for i := range items {
		data = append(data, nc.toItem(&items[i], lang, false))
	}
	ok(c, http.StatusOK, listResult(page, total, data))
}

// GET /news/:id  (id или slug)
func (nc *NewsController) Get(c *gin.Context) {
	n, err := nc.news.Get(c.Request.Context(), c.Param("id"), isStaff(c))
	if err != nil {
		handleError(c, err, "get news")
		return
	}
	if n.IsPublished {
		counted, err := services.RecordView(c.Request.Context(), nc.db, models.ContentTypeNews, n.ID, c.ClientIP())
		if err != nil {
			utils.LogError(err, "record news view")
		}
		if counted {
			n.ViewsCount++
		}
	}
	ok(c, http.StatusOK, nc.toItem(n, requestLang(c), true))
}

// POST /news
func (nc *NewsController) Create(c *gin.Context) {
	var req newsRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := checkURLs(map[string]*string{"image_url": req.ImageURL}); err != nil {
		handleError(c, err, "create news")
		return
	}
	n := models.News{Kind: models.NewsKindNews}
	req.apply(&n)
	if err := nc.news.Create(c.Request.Context(), &n, req.TagIDs); err != nil {
		handleError(c, err, "create news")
		return
	}
	ok(c, http.StatusCreated, nc.toItem(&n, requestLang(c), true))
}

// PUT /news/:id
func (nc *NewsController) Update(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	var req newsRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := checkURLs(map[string]*string{"image_url": req.ImageURL}); err != nil {
		handleError(c, err, "update news")
		return
	}
	n, err := nc.news.Update(c.Request.Context(), id, req.apply, req.TagIDs)
	if err != nil {
		handleError(c, err, "update news")
		return
	}
	ok(c, http.StatusOK, nc.toItem(n, requestLang(c), true))
}

// DELETE /news/:id
func (nc *NewsController) Delete(c *gin.Context) {
	id, okID := parseIDParam(c)
	if !okID {
		return
	}
	if err := nc.news.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err, "delete news")
		return
	}
	ok(c, http.StatusOK, gin.H{"id": id})
}

func (nc *NewsController) toItem(n *models.News, lang models.Lang, full bool) gin.H {
	h := gin.H{
		"id":              n.ID,
		"kind":            n.Kind,
		"slug":            n.Slug,
		"image":           n.Image.EffectiveURL(nc.media.URL),
		"image_file":      n.Image.File,
		"image_url":       n.Image.URL,
		"published_at":    formatTime(n.PublishedAt),
		"event_starts_at": formatTimePtr(n.EventStartsAt),
		"event_ends_at":   formatTimePtr(n.EventEndsAt),
		"is_published":    n.IsPublished,
		"is_featured":     n.IsFeatured,
		"views_count":     n.ViewsCount,
		"created_at":      formatTime(n.CreatedAt),
		"updated_at":      formatTime(n.UpdatedAt),
	}
	putTranslated(h, "title", n.Title, lang)
	putTranslated(h, "summary", n.Summary, lang)
	putTranslated(h, "location", n.Location, lang)
	if full {
		putTranslated(h, "content", n.Content, lang)
	}
	h["excerpt"] = utils.Excerpt(n.Content.Resolve(lang), excerptLength)

	tags := make([]gin.H, 0, len(n.Tags))
	for _, t := range n.Tags {
		tags = append(tags, gin.H{"id": t.ID, "slug": t.Slug, "name": t.Name.Resolve(lang)})
	}
	h["tags"] = tags
	return h
}
