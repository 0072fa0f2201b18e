package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IbroIT/SU-back-back-sub001/metrics"
	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// UncategorizedKey collects articles that have no category.
const UncategorizedKey = "uncategorized"

// StatisticsService builds DailyStatistics snapshots from media articles.
type StatisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{db: db}
}

type rollupRow struct {
	Sentiment    string
	ViewsCount   int64
	Reach        int64
	CategorySlug *string
}

// Rollup recomputes the row for date from published articles dated that day
// and overwrites whatever was stored. When no article qualifies the row is
// removed and nil is returned.
func (s *StatisticsService) Rollup(ctx context.Context, date time.Time) (*models.DailyStatistics, error) {
	day := utils.DateOnly(date)
	var result *models.DailyStatistics

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []rollupRow
		err := tx.Model(&models.MediaArticle{}).
			Select("media_articles.sentiment, media_articles.views_count, media_articles.reach, media_categories.slug AS category_slug").
			Joins("LEFT JOIN media_categories ON media_categories.id = media_articles.category_id AND media_categories.deleted_at IS NULL").
			Where("media_articles.is_published = ?", true).
			Where("media_articles.publication_date >= ? AND media_articles.publication_date < ?",
				utils.SQLDate(day), utils.SQLDate(day.AddDate(0, 0, 1))).
			Scan(&rows).Error
		if err != nil {
			return fmt.Errorf("select articles: %w", err)
		}

		if len(rows) == 0 {
			return tx.
				Where("date >= ? AND date < ?", utils.SQLDate(day), utils.SQLDate(day.AddDate(0, 0, 1))).
				Delete(&models.DailyStatistics{}).Error
		}

		stat := aggregate(day, rows)
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_articles", "total_views", "total_reach",
				"positive_count", "neutral_count", "negative_count",
				"category_counts", "updated_at",
			}),
		}).Create(stat).Error
		if err != nil {
			return fmt.Errorf("upsert statistics: %w", err)
		}
		result = stat
		return nil
	})
	if err != nil {
		metrics.StatisticsRollups.WithLabelValues("error").Inc()
		return nil, err
	}
	if result == nil {
		metrics.StatisticsRollups.WithLabelValues("empty").Inc()
	} else {
		metrics.StatisticsRollups.WithLabelValues("ok").Inc()
	}
	return result, nil
}

func aggregate(day time.Time, rows []rollupRow) *models.DailyStatistics {
	stat := &models.DailyStatistics{Date: day}
	categories := make(map[string]int64)
	for _, r := range rows {
		stat.TotalArticles++
		stat.TotalViews += r.ViewsCount
		stat.TotalReach += r.Reach
		switch models.Sentiment(r.Sentiment) {
		case models.SentimentPositive:
			stat.PositiveCount++
		case models.SentimentNegative:
			stat.NegativeCount++
		default:
			stat.NeutralCount++
		}
		key := UncategorizedKey
		if r.CategorySlug != nil && *r.CategorySlug != "" {
			key = *r.CategorySlug
		}
		categories[key]++
	}
	// encoding/json writes map keys sorted, so equal input gives equal bytes
	b, _ := json.Marshal(categories)
	stat.CategoryCounts = datatypes.JSON(b)
	return stat
}

// RollupRange rolls up every day from..to inclusive. A failing day is logged
// and skipped; the returned error joins all failures.
func (s *StatisticsService) RollupRange(ctx context.Context, from, to time.Time) (int, error) {
	from, to = utils.DateOnly(from), utils.DateOnly(to)
	if from.After(to) {
		return 0, FieldErrors{"from": "must not be after to"}
	}
	var errs []error
	done := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if _, err := s.Rollup(ctx, d); err != nil {
			utils.Logger().Error("statistics rollup failed",
				zap.String("date", d.Format(time.DateOnly)), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", d.Format(time.DateOnly), err))
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}

// List returns stored rows between from and to inclusive, oldest first.
// Zero bounds are open.
func (s *StatisticsService) List(ctx context.Context, from, to time.Time) ([]models.DailyStatistics, error) {
	q := s.db.WithContext(ctx).Model(&models.DailyStatistics{})
	if !from.IsZero() {
		q = q.Where("date >= ?", utils.SQLDate(from))
	}
	if !to.IsZero() {
		q = q.Where("date < ?", utils.SQLDate(utils.DateOnly(to).AddDate(0, 0, 1)))
	}
	var out []models.DailyStatistics
	if err := q.Order("date asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the stored row for date.
func (s *StatisticsService) Get(ctx context.Context, date time.Time) (*models.DailyStatistics, error) {
	var stat models.DailyStatistics
	day := utils.DateOnly(date)
	err := s.db.WithContext(ctx).
		Where("date >= ? AND date < ?", utils.SQLDate(day), utils.SQLDate(day.AddDate(0, 0, 1))).
		First(&stat).Error
	if err != nil {
		return nil, err
	}
	return &stat, nil
}
