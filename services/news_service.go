package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IbroIT/SU-back-back-sub001/counters"
	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// NewsService owns writes to news and keeps Tag.usage_count in step with the
// published news that carry each tag.
type NewsService struct {
	db *gorm.DB
}

func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{db: db}
}

// NewsQuery filters the news list.
type NewsQuery struct {
	Kind         models.NewsKind
	Tag          string
	Search       string
	Featured     *bool
	IncludeDraft bool
	Page
}

// countedTags is the set of tags whose usage_count includes n.
func countedTags(n *models.News, tagIDs []uint) []uint {
	if !n.IsPublished || n.DeletedAt.Valid {
		return nil
	}
	return tagIDs
}

func validateNews(n *models.News) error {
	errs := FieldErrors{}
	if !n.Kind.Valid() {
		errs.Add("kind", "must be one of news, event, announcement")
	}
	if n.IsPublished && strings.TrimSpace(n.Title.RU) == "" {
		errs.Add("title_ru", "required for published news")
	}
	if n.Title.IsEmpty() {
		errs.Add("title_ru", "required")
	}
	if n.EventStartsAt != nil && n.EventEndsAt != nil && n.EventEndsAt.Before(*n.EventStartsAt) {
		errs.Add("event_ends_at", "must not be before event_starts_at")
	}
	return errs.Err()
}

// loadTags checks that every id refers to an existing tag.
func loadTags(tx *gorm.DB, ids []uint) ([]models.Tag, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, FieldErrors{"tag_ids": "unknown tag"}
	}
	return tags, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func replaceNewsTags(tx *gorm.DB, newsID uint, tagIDs []uint) error {
	if err := tx.Where("news_id = ?", newsID).Delete(&models.NewsTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]models.NewsTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		rows = append(rows, models.NewsTag{NewsID: newsID, TagID: id})
	}
	return tx.Create(&rows).Error
}

// Create inserts n with the given tags. The slug is derived from the Russian
// title when empty.
func (s *NewsService) Create(ctx context.Context, n *models.News, tagIDs []uint) error {
	if err := validateNews(n); err != nil {
		return err
	}
	if n.PublishedAt.IsZero() {
		n.PublishedAt = time.Now()
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := loadTags(tx, tagIDs)
		if err != nil {
			return err
		}
		if err := assignSlug(tx, &models.News{}, &n.Slug, n.Title, 0); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(n).Error; err != nil {
			return DuplicateAs(err, "slug")
		}
		n.Tags = tags
		if err := replaceNewsTags(tx, n.ID, n.TagIDs()); err != nil {
			return fmt.Errorf("link tags: %w", err)
		}
		return counters.ApplyMembership(tx, &models.Tag{}, "usage_count", nil, countedTags(n, n.TagIDs()))
	})
}

// Update loads the news item, lets apply change it and saves it. A nil tagIDs
// keeps the current tags.
func (s *NewsService) Update(ctx context.Context, id uint, apply func(n *models.News), tagIDs []uint) (*models.News, error) {
	var n models.News
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Tags").First(&n, id).Error; err != nil {
			return err
		}
		before := countedTags(&n, n.TagIDs())

		apply(&n)
		if err := validateNews(&n); err != nil {
			return err
		}
		if err := assignSlug(tx, &models.News{}, &n.Slug, n.Title, n.ID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations, "views_count").Save(&n).Error; err != nil {
			return DuplicateAs(err, "slug")
		}
		if tagIDs != nil {
			tags, err := loadTags(tx, tagIDs)
			if err != nil {
				return err
			}
			n.Tags = tags
			if err := replaceNewsTags(tx, n.ID, n.TagIDs()); err != nil {
				return fmt.Errorf("link tags: %w", err)
			}
		}
		return counters.ApplyMembership(tx, &models.Tag{}, "usage_count", before, countedTags(&n, n.TagIDs()))
	})
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Delete soft-deletes the news item and releases its tags.
func (s *NewsService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n models.News
		if err := tx.Preload("Tags").First(&n, id).Error; err != nil {
			return err
		}
		before := countedTags(&n, n.TagIDs())
		if err := tx.Delete(&n).Error; err != nil {
			return err
		}
		if err := tx.Where("news_id = ?", n.ID).Delete(&models.NewsTag{}).Error; err != nil {
			return err
		}
		return counters.ApplyMembership(tx, &models.Tag{}, "usage_count", before, nil)
	})
}

// Get finds a news item by numeric id or slug.
func (s *NewsService) Get(ctx context.Context, idOrSlug string, includeDraft bool) (*models.News, error) {
	q := s.db.WithContext(ctx).Preload("Tags")
	if !includeDraft {
		q = q.Where("is_published = ?", true)
	}
	q = whereIDOrSlug(q, idOrSlug)
	var n models.News
	if err := q.First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NewsService) List(ctx context.Context, f NewsQuery) ([]models.News, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.News{})
	if !f.IncludeDraft {
		q = q.Where("news.is_published = ?", true)
	}
	if f.Kind != "" {
		q = q.Where("news.kind = ?", f.Kind)
	}
	if f.Featured != nil {
		q = q.Where("news.is_featured = ?", *f.Featured)
	}
	if f.Tag != "" {
		q = q.Where("news.id IN (?)", s.db.Table("news_tags").
			Select("news_tags.news_id").
			Joins("JOIN tags ON tags.id = news_tags.tag_id").
			Where("tags.slug = ? AND tags.deleted_at IS NULL", f.Tag))
	}
	if f.Search != "" {
		p := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("(LOWER(news.title_ru) LIKE ? OR LOWER(news.title_kg) LIKE ? OR LOWER(news.title_en) LIKE ? OR LOWER(news.summary_ru) LIKE ? OR LOWER(news.summary_kg) LIKE ? OR LOWER(news.summary_en) LIKE ?)", p, p, p, p, p, p)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []models.News
	err := q.Preload("Tags").
		Order("news.published_at desc").Order("news.id desc").
		Offset(f.Offset()).Limit(f.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// whereIDOrSlug matches a positive integer against id and anything else against slug.
func whereIDOrSlug(q *gorm.DB, idOrSlug string) *gorm.DB {
	if id, ok := parseID(idOrSlug); ok {
		return q.Where("id = ?", id)
	}
	return q.Where("slug = ?", idOrSlug)
}

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// assignSlug fills *slug from the title when blank and makes it unique
// among rows of model.
func assignSlug(tx *gorm.DB, model any, slug *string, title models.TranslatedText, excludeID uint) error {
	base := utils.Slugify(strings.TrimSpace(*slug))
	if strings.TrimSpace(*slug) == "" {
		src := title.Trimmed()
		switch {
		case src.RU != "":
			base = utils.Slugify(src.RU)
		case src.EN != "":
			base = utils.Slugify(src.EN)
		default:
			base = utils.Slugify(src.KG)
		}
	}
	unique, err := utils.UniqueSlug(tx, model, base, excludeID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(*slug) != "" && unique != base {
		return FieldErrors{"slug": "already exists"}
	}
	*slug = unique
	return nil
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
