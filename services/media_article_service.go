package services

import (
	"context"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IbroIT/SU-back-back-sub001/counters"
	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// MediaArticleService writes media coverage records. Outlet.total_articles is
// moved by the model hooks on create and delete and here on update.
type MediaArticleService struct {
	db *gorm.DB
}

func NewMediaArticleService(db *gorm.DB) *MediaArticleService {
	return &MediaArticleService{db: db}
}

func validateMediaArticle(tx *gorm.DB, a *models.MediaArticle) error {
	errs := FieldErrors{}
	if a.Title.IsEmpty() {
		errs.Add("title_ru", "required")
	}
	if a.IsPublished && strings.TrimSpace(a.Title.RU) == "" {
		errs.Add("title_ru", "required for published articles")
	}
	if a.Sentiment == "" {
		a.Sentiment = models.SentimentNeutral
	}
	if !a.Sentiment.Valid() {
		errs.Add("sentiment", "must be one of positive, neutral, negative")
	}
	if a.ImportanceScore == 0 {
		a.ImportanceScore = 5
	}
	if a.ImportanceScore < models.MinImportance || a.ImportanceScore > models.MaxImportance {
		errs.Add("importance_score", "must be between 1 and 10")
	}
	if a.PublicationDate.IsZero() {
		errs.Add("publication_date", "required")
	} else {
		a.PublicationDate = utils.DateOnly(a.PublicationDate)
	}
	if a.Reach < 0 {
		errs.Add("reach", "must not be negative")
	}

	if a.OutletID == 0 {
		errs.Add("outlet_id", "required")
	} else if !outletLocked(tx, a.OutletID) {
		errs.Add("outlet_id", "unknown outlet")
	}
	if a.CategoryID != nil && !exists(tx, &models.MediaCategory{}, *a.CategoryID) {
		errs.Add("category_id", "unknown category")
	}
	return errs.Err()
}

// outletLocked checks the outlet exists and holds a share lock on its row
// until the transaction ends, so the outlet cannot be deleted underneath a
// new article.
func outletLocked(tx *gorm.DB, id uint) bool {
	var o models.Outlet
	err := tx.Clauses(clause.Locking{Strength: "SHARE"}).Select("id").Take(&o, id).Error
	return err == nil
}

func exists(tx *gorm.DB, model any, id uint) bool {
	var n int64
	tx.Model(model).Where("id = ?", id).Count(&n)
	return n > 0
}

func (s *MediaArticleService) Create(ctx context.Context, a *models.MediaArticle) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := validateMediaArticle(tx, a); err != nil {
			return err
		}
		if err := assignSlug(tx, &models.MediaArticle{}, &a.Slug, a.Title, 0); err != nil {
			return err
		}
		// AfterCreate increments the outlet counter in this transaction.
		return DuplicateAs(tx.Omit(clause.Associations).Create(a).Error, "slug")
	})
}

// Update applies changes and moves outlet counters when the article starts or
// stops counting, or changes outlet.
func (s *MediaArticleService) Update(ctx context.Context, id uint, apply func(a *models.MediaArticle)) (*models.MediaArticle, error) {
	var a models.MediaArticle
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&a, id).Error; err != nil {
			return err
		}
		before := a.CountedOutlets()

		apply(&a)
		a.Outlet, a.Category = nil, nil
		if err := validateMediaArticle(tx, &a); err != nil {
			return err
		}
		if err := assignSlug(tx, &models.MediaArticle{}, &a.Slug, a.Title, a.ID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations, "views_count").Save(&a).Error; err != nil {
			return DuplicateAs(err, "slug")
		}
		return counters.ApplyMembership(tx, &models.Outlet{}, "total_articles", before, a.CountedOutlets())
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, strconv.FormatUint(uint64(a.ID), 10), true)
}

// Delete soft-deletes the article. It is loaded first so AfterDelete knows
// which outlet to decrement; the stored image stays in the bucket.
func (s *MediaArticleService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.MediaArticle
		if err := tx.First(&a, id).Error; err != nil {
			return err
		}
		return tx.Delete(&a).Error
	})
}

// Get finds an article by numeric id or slug with its outlet and category.
func (s *MediaArticleService) Get(ctx context.Context, idOrSlug string, includeDraft bool) (*models.MediaArticle, error) {
	q := s.db.WithContext(ctx).Preload("Outlet").Preload("Category")
	if !includeDraft {
		q = q.Where("is_published = ?", true)
	}
	var a models.MediaArticle
	if err := whereIDOrSlug(q, idOrSlug).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Search runs a validated filter.
func (s *MediaArticleService) Search(ctx context.Context, f *MediaArticleFilter) ([]models.MediaArticle, int64, error) {
	q := f.Apply(s.db.WithContext(ctx).Model(&models.MediaArticle{}))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []models.MediaArticle
	err := f.Order(q).
		Preload("Outlet").Preload("Category").
		Offset(f.Offset()).Limit(f.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
