package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/services"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// StatisticsController отдаёт дневные агрегаты, дашборд и облако ключевых слов
type StatisticsController struct {
	stats     *services.StatisticsService
	analytics *services.AnalyticsService
	media     *services.MediaService
}

func NewStatisticsController(stats *services.StatisticsService, analytics *services.AnalyticsService, media *services.MediaService) *StatisticsController {
	return &StatisticsController{stats: stats, analytics: analytics, media: media}
}

// dateRange reads optional ?date_from and ?date_to.
func dateRange(c *gin.Context) (from, to time.Time, err error) {
	errs := services.FieldErrors{}
	if v := c.Query("date_from"); v != "" {
		if from, err = utils.ParseDate(v); err != nil {
			errs.Add("date_from", "must be a date in YYYY-MM-DD format")
		}
	}
	if v := c.Query("date_to"); v != "" {
		if to, err = utils.ParseDate(v); err != nil {
			errs.Add("date_to", "must be a date in YYYY-MM-DD format")
		}
	}
	if len(errs) == 0 && !from.IsZero() && !to.IsZero() && from.After(to) {
		errs.Add("date_from", "must not be after date_to")
	}
	return from, to, errs.Err()
}

// GET /statistics?date_from=2026-01-01&date_to=2026-01-31
func (sc *StatisticsController) List(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		handleError(c, err, "parse statistics range")
		return
	}
	rows, err := sc.stats.List(c.Request.Context(), from, to)
	if err != nil {
		handleError(c, err, "list statistics")
		return
	}
	data := make([]gin.H, 0, len(rows))
	for i := range rows {
		data = append(data, statisticsItem(&rows[i]))
	}
	ok(c, http.StatusOK, data)
}

// GET /statistics/:date
func (sc *StatisticsController) Get(c *gin.Context) {
	day, err := utils.ParseDate(c.Param("date"))
	if err != nil {
		invalid(c, services.FieldErrors{"date": "must be a date in YYYY-MM-DD format"})
		return
	}
	stat, err := sc.stats.Get(c.Request.Context(), day)
	if err != nil {
		handleError(c, err, "get statistics")
		return
	}
	ok(c, http.StatusOK, statisticsItem(stat))
}

type rollupRequest struct {
	Date string `json:"date"`
	From string `json:"from"`
	To   string `json:"to"`
}

// POST /statistics/rollup
// {"date":"2026-03-01"} или {"from":"2026-03-01","to":"2026-03-31"}; без тела - вчерашний день
func (sc *StatisticsController) Rollup(c *gin.Context) {
	var req rollupRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	if req.From != "" || req.To != "" {
		errs := services.FieldErrors{}
		from, err := utils.ParseDate(req.From)
		if err != nil {
			errs.Add("from", "must be a date in YYYY-MM-DD format")
		}
		to, err := utils.ParseDate(req.To)
		if err != nil {
			errs.Add("to", "must be a date in YYYY-MM-DD format")
		}
		if err := errs.Err(); err != nil {
			handleError(c, err, "parse rollup range")
			return
		}
		done, err := sc.stats.RollupRange(ctx, from, to)
		if err != nil {
			handleError(c, err, "statistics rollup range")
			return
		}
		ok(c, http.StatusOK, gin.H{"days": done})
		return
	}

	day := utils.DateOnly(utils.LocalNow()).AddDate(0, 0, -1)
	if req.Date != "" {
		d, err := utils.ParseDate(req.Date)
		if err != nil {
			invalid(c, services.FieldErrors{"date": "must be a date in YYYY-MM-DD format"})
			return
		}
		day = d
	}
	stat, err := sc.stats.Rollup(ctx, day)
	if err != nil {
		handleError(c, err, "statistics rollup")
		return
	}
	if stat == nil {
		ok(c, http.StatusOK, gin.H{"date": formatDate(day), "statistics": nil})
		return
	}
	ok(c, http.StatusOK, gin.H{"date": formatDate(day), "statistics": statisticsItem(stat)})
}

// GET /analytics/dashboard
func (sc *StatisticsController) Dashboard(c *gin.Context) {
	d, err := sc.analytics.Dashboard(c.Request.Context())
	if err != nil {
		handleError(c, err, "analytics dashboard")
		return
	}
	lang := requestLang(c)

	outlets := make([]gin.H, 0, len(d.TopOutlets))
	for _, o := range d.TopOutlets {
		outlets = append(outlets, gin.H{
			"id":             o.ID,
			"name":           o.Name.Resolve(lang),
			"logo":           o.Logo.EffectiveURL(sc.media.URL),
			"total_articles": o.TotalArticles,
		})
	}
	articles := make([]gin.H, 0, len(d.TopArticles))
	for _, a := range d.TopArticles {
		item := gin.H{
			"id":               a.ID,
			"slug":             a.Slug,
			"title":            a.Title.Resolve(lang),
			"outlet":           nil,
			"views_count":      a.ViewsCount,
			"publication_date": formatDate(a.PublicationDate),
		}
		if a.Outlet != nil {
			item["outlet"] = a.Outlet.Name.Resolve(lang)
		}
		articles = append(articles, item)
	}

	ok(c, http.StatusOK, gin.H{
		"total_articles": d.TotalArticles,
		"total_views":    d.TotalViews,
		"total_reach":    d.TotalReach,
		"sentiment":      d.Sentiment,
		"top_outlets":    outlets,
		"top_articles":   articles,
	})
}

// GET /analytics/keywords?limit=30&date_from=...&date_to=...&lang=en
func (sc *StatisticsController) Keywords(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		handleError(c, err, "parse keyword range")
		return
	}
	q := services.KeywordQuery{Lang: requestLang(c)}
	if !from.IsZero() {
		q.DateFrom = &from
	}
	if !to.IsZero() {
		q.DateTo = &to
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			invalid(c, services.FieldErrors{"limit": "must be a positive integer"})
			return
		}
		q.Limit = n
	}
	words, err := sc.analytics.Keywords(c.Request.Context(), q)
	if err != nil {
		handleError(c, err, "analytics keywords")
		return
	}
	ok(c, http.StatusOK, words)
}

func statisticsItem(s *models.DailyStatistics) gin.H {
	categories := map[string]int64{}
	if len(s.CategoryCounts) > 0 {
		if err := json.Unmarshal(s.CategoryCounts, &categories); err != nil {
			utils.LogError(err, "decode category_counts")
		}
	}
	return gin.H{
		"date":            formatDate(s.Date),
		"total_articles":  s.TotalArticles,
		"total_views":     s.TotalViews,
		"total_reach":     s.TotalReach,
		"positive_count":  s.PositiveCount,
		"neutral_count":   s.NeutralCount,
		"negative_count":  s.NegativeCount,
		"category_counts": categories,
		"updated_at":      formatTime(s.UpdatedAt),
	}
}
