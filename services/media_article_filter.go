package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// Columns matched by the free-text q parameter.
var searchColumns = []string{
	"title_ru", "title_kg", "title_en",
	"description_ru", "description_kg", "description_en",
	"content_ru", "content_kg", "content_en",
	"keywords_ru", "keywords_kg", "keywords_en",
	"author_ru", "author_kg", "author_en",
}

// Sort keys accepted by the media search; a leading "-" means descending.
var sortColumns = map[string]string{
	"publication_date": "media_articles.publication_date",
	"importance_score": "media_articles.importance_score",
	"views_count":      "media_articles.views_count",
	"reach":            "media_articles.reach",
	"created_at":       "media_articles.created_at",
}

const DefaultMediaSort = "-publication_date"

// MediaArticleFilter is a parsed and validated media search request.
// Nil pointers are filters that were not requested.
type MediaArticleFilter struct {
	Query         string
	CategoryID    *uint
	OutletID      *uint
	Sentiment     models.Sentiment
	ImportanceMin *int
	ImportanceMax *int
	DateFrom      *time.Time
	DateTo        *time.Time
	Featured      *bool
	Verified      *bool
	Sort          string
	IncludeDraft  bool
	Page
}

// ParseMediaArticleFilter reads the filter from query parameters. Every
// problem is reported against the parameter that caused it.
func ParseMediaArticleFilter(v url.Values) (*MediaArticleFilter, error) {
	f := &MediaArticleFilter{Sort: DefaultMediaSort}
	errs := FieldErrors{}

	f.Query = strings.TrimSpace(v.Get("q"))
	f.CategoryID = parseUintParam(v, "category", errs)
	f.OutletID = parseUintParam(v, "outlet", errs)

	if s := strings.TrimSpace(v.Get("sentiment")); s != "" {
		f.Sentiment = models.Sentiment(strings.ToLower(s))
		if !f.Sentiment.Valid() {
			errs.Add("sentiment", "must be one of positive, neutral, negative")
		}
	}

	f.ImportanceMin = parseScoreParam(v, "importance_min", errs)
	f.ImportanceMax = parseScoreParam(v, "importance_max", errs)
	if f.ImportanceMin != nil && f.ImportanceMax != nil && *f.ImportanceMin > *f.ImportanceMax {
		errs.Add("importance_min", "must not be greater than importance_max")
	}

	f.DateFrom = parseDateParam(v, "date_from", errs)
	f.DateTo = parseDateParam(v, "date_to", errs)
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		errs.Add("date_from", "must not be after date_to")
	}

	f.Featured = parseBoolParam(v, "featured", errs)
	f.Verified = parseBoolParam(v, "verified", errs)

	if s := strings.TrimSpace(v.Get("sort")); s != "" {
		if _, ok := sortColumns[strings.TrimPrefix(s, "-")]; !ok {
			errs.Add("sort", "unsupported sort field")
		} else {
			f.Sort = s
		}
	}

	f.Page = parsePage(v, errs)

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

// ParsePage reads page and page_size. page_size above MaxPageSize is capped.
func ParsePage(v url.Values) (Page, error) {
	errs := FieldErrors{}
	p := parsePage(v, errs)
	return p, errs.Err()
}

func parsePage(v url.Values, errs FieldErrors) Page {
	p := Page{Page: 1, PageSize: DefaultPageSize}
	if s := strings.TrimSpace(v.Get("page")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			errs.Add("page", "must be a positive integer")
		} else {
			p.Page = n
		}
	}
	if s := strings.TrimSpace(v.Get("page_size")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			errs.Add("page_size", "must be a positive integer")
		} else {
			p.PageSize = min(n, MaxPageSize)
		}
	}
	return p
}

func parseUintParam(v url.Values, key string, errs FieldErrors) *uint {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return nil
	}
	id, ok := parseID(s)
	if !ok {
		errs.Add(key, "must be a positive integer id")
		return nil
	}
	return &id
}

func parseScoreParam(v url.Values, key string, errs FieldErrors) *int {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < models.MinImportance || n > models.MaxImportance {
		errs.Add(key, fmt.Sprintf("must be an integer between %d and %d", models.MinImportance, models.MaxImportance))
		return nil
	}
	return &n
}

func parseDateParam(v url.Values, key string, errs FieldErrors) *time.Time {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return nil
	}
	d, err := utils.ParseDate(s)
	if err != nil {
		errs.Add(key, "must be a date in YYYY-MM-DD format")
		return nil
	}
	return &d
}

func parseBoolParam(v url.Values, key string, errs FieldErrors) *bool {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		errs.Add(key, "must be true or false")
		return nil
	}
	return &b
}

// Apply adds the WHERE clauses of f to q.
func (f *MediaArticleFilter) Apply(q *gorm.DB) *gorm.DB {
	if !f.IncludeDraft {
		q = q.Where("media_articles.is_published = ?", true)
	}
	if f.Query != "" {
		p := "%" + strings.ToLower(f.Query) + "%"
		conds := make([]string, len(searchColumns))
		args := make([]any, len(searchColumns))
		for i, col := range searchColumns {
			conds[i] = "LOWER(media_articles." + col + ") LIKE ?"
			args[i] = p
		}
		q = q.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	if f.CategoryID != nil {
		q = q.Where("media_articles.category_id = ?", *f.CategoryID)
	}
	if f.OutletID != nil {
		q = q.Where("media_articles.outlet_id = ?", *f.OutletID)
	}
	if f.Sentiment != "" {
		q = q.Where("media_articles.sentiment = ?", f.Sentiment)
	}
	if f.ImportanceMin != nil {
		q = q.Where("media_articles.importance_score >= ?", *f.ImportanceMin)
	}
	if f.ImportanceMax != nil {
		q = q.Where("media_articles.importance_score <= ?", *f.ImportanceMax)
	}
	if f.DateFrom != nil {
		q = q.Where("media_articles.publication_date >= ?", utils.SQLDate(*f.DateFrom))
	}
	if f.DateTo != nil {
		q = q.Where("media_articles.publication_date < ?", utils.SQLDate(f.DateTo.AddDate(0, 0, 1)))
	}
	if f.Featured != nil {
		q = q.Where("media_articles.is_featured = ?", *f.Featured)
	}
	if f.Verified != nil {
		q = q.Where("media_articles.is_verified = ?", *f.Verified)
	}
	return q
}

// Order applies the sort with id as a stable tie-breaker.
func (f *MediaArticleFilter) Order(q *gorm.DB) *gorm.DB {
	key := f.Sort
	if key == "" {
		key = DefaultMediaSort
	}
	dir := "asc"
	if strings.HasPrefix(key, "-") {
		dir = "desc"
		key = key[1:]
	}
	return q.Order(sortColumns[key] + " " + dir).Order("media_articles.id " + dir)
}
