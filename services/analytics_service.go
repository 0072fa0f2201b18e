package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

const (
	DefaultKeywordLimit = 30
	MaxKeywordLimit     = 100
	dashboardTopN       = 5
)

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Dashboard summarizes published media coverage.
type Dashboard struct {
	TotalArticles int64
	TotalViews    int64
	TotalReach    int64
	Sentiment     map[models.Sentiment]int64
	TopOutlets    []models.Outlet
	TopArticles   []models.MediaArticle
}

type SentimentStats struct {
	Sentiment models.Sentiment
	Total     int64
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	db := s.db.WithContext(ctx)
	published := func() *gorm.DB {
		return db.Model(&models.MediaArticle{}).Where("is_published = ?", true)
	}

	var totals struct {
		Articles int64
		Views    int64
		Reach    int64
	}
	err := published().
		Select("COUNT(*) AS articles, COALESCE(SUM(views_count), 0) AS views, COALESCE(SUM(reach), 0) AS reach").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var bySentiment []SentimentStats
	err = published().
		Select("sentiment, COUNT(*) AS total").
		Group("sentiment").
		Scan(&bySentiment).Error
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		TotalArticles: totals.Articles,
		TotalViews:    totals.Views,
		TotalReach:    totals.Reach,
		Sentiment: map[models.Sentiment]int64{
			models.SentimentPositive: 0,
			models.SentimentNeutral:  0,
			models.SentimentNegative: 0,
		},
	}
	for _, st := range bySentiment {
		d.Sentiment[st.Sentiment] += st.Total
	}

	err = db.Where("is_active = ?", true).
		Order("total_articles DESC").Order("id ASC").
		Limit(dashboardTopN).
		Find(&d.TopOutlets).Error
	if err != nil {
		return nil, err
	}

	err = published().
		Preload("Outlet").
		Order("views_count DESC").Order("id ASC").
		Limit(dashboardTopN).
		Find(&d.TopArticles).Error
	if err != nil {
		return nil, err
	}
	return d, nil
}

// KeywordCount is one entry of the keyword cloud.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int64  `json:"count"`
}

// KeywordQuery selects which articles feed the keyword cloud.
type KeywordQuery struct {
	Lang     models.Lang
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
}

// Keywords counts comma separated keywords of published articles in the
// requested language (falling back to Russian) and returns the most common.
func (s *AnalyticsService) Keywords(ctx context.Context, q KeywordQuery) ([]KeywordCount, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}
	limit = min(limit, MaxKeywordLimit)

	tx := s.db.WithContext(ctx).Model(&models.MediaArticle{}).
		Select("keywords_ru", "keywords_kg", "keywords_en").
		Where("is_published = ?", true)
	if q.DateFrom != nil {
		tx = tx.Where("publication_date >= ?", utils.SQLDate(*q.DateFrom))
	}
	if q.DateTo != nil {
		tx = tx.Where("publication_date < ?", utils.SQLDate(utils.DateOnly(*q.DateTo).AddDate(0, 0, 1)))
	}

	var articles []models.MediaArticle
	if err := tx.Find(&articles).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, a := range articles {
		for _, word := range strings.Split(a.Keywords.Resolve(q.Lang), ",") {
			word = strings.ToLower(strings.Join(strings.Fields(word), " "))
			if word != "" {
				counts[word]++
			}
		}
	}
	return topKeywords(counts, limit), nil
}

func topKeywords(counts map[string]int64, limit int) []KeywordCount {
	out := make([]KeywordCount, 0, len(counts))
	for w, n := range counts {
		out = append(out, KeywordCount{Word: w, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
