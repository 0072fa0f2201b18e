package services

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// MaintenanceService holds out-of-band repair jobs. Each job logs and skips
// records it cannot fix and reports how many it changed.
type MaintenanceService struct {
	db *gorm.DB
}

func NewMaintenanceService(db *gorm.DB) *MaintenanceService {
	return &MaintenanceService{db: db}
}

// ResyncCounters recomputes Outlet.total_articles and Tag.usage_count from
// the rows they mirror. Returns the number of rows whose value changed.
func (s *MaintenanceService) ResyncCounters(ctx context.Context) (int, error) {
	db := s.db.WithContext(ctx)
	changed := 0

	var outlets []models.Outlet
	if err := db.Find(&outlets).Error; err != nil {
		return 0, err
	}
	for _, o := range outlets {
		var n int64
		err := db.Model(&models.MediaArticle{}).
			Where("outlet_id = ? AND is_published = ?", o.ID, true).
			Count(&n).Error
		if err != nil {
			utils.LogError(err, fmt.Sprintf("count articles of outlet %d", o.ID))
			continue
		}
		if n == o.TotalArticles {
			continue
		}
		if err := db.Model(&o).UpdateColumn("total_articles", n).Error; err != nil {
			utils.LogError(err, fmt.Sprintf("update outlet %d", o.ID))
			continue
		}
		utils.Logger().Info("outlet counter fixed", zap.Uint("outlet_id", o.ID),
			zap.Int64("was", o.TotalArticles), zap.Int64("now", n))
		changed++
	}

	var tags []models.Tag
	if err := db.Find(&tags).Error; err != nil {
		return changed, err
	}
	for _, t := range tags {
		var n int64
		err := db.Table("news_tags").
			Joins("JOIN news ON news.id = news_tags.news_id").
			Where("news_tags.tag_id = ? AND news.is_published = ? AND news.deleted_at IS NULL", t.ID, true).
			Count(&n).Error
		if err != nil {
			utils.LogError(err, fmt.Sprintf("count news of tag %d", t.ID))
			continue
		}
		if n == t.UsageCount {
			continue
		}
		if err := db.Model(&t).UpdateColumn("usage_count", n).Error; err != nil {
			utils.LogError(err, fmt.Sprintf("update tag %d", t.ID))
			continue
		}
		utils.Logger().Info("tag counter fixed", zap.Uint("tag_id", t.ID),
			zap.Int64("was", t.UsageCount), zap.Int64("now", n))
		changed++
	}
	return changed, nil
}

// CleanupOrphans removes view and tag-link rows that point at deleted or
// missing content. Soft-deleted content counts as deleted.
func (s *MaintenanceService) CleanupOrphans(ctx context.Context) (int64, error) {
	db := s.db.WithContext(ctx)
	var removed int64

	steps := []struct {
		name  string
		model any
		where string
		args  []any
	}{
		{
			name:  "news views",
			model: &models.ContentView{},
			where: "content_type = ? AND content_id NOT IN (SELECT id FROM news WHERE deleted_at IS NULL)",
			args:  []any{models.ContentTypeNews},
		},
		{
			name:  "media article views",
			model: &models.ContentView{},
			where: "content_type = ? AND content_id NOT IN (SELECT id FROM media_articles WHERE deleted_at IS NULL)",
			args:  []any{models.ContentTypeMediaArticle},
		},
		{
			name:  "news tag links",
			model: &models.NewsTag{},
			where: "news_id NOT IN (SELECT id FROM news WHERE deleted_at IS NULL) OR tag_id NOT IN (SELECT id FROM tags WHERE deleted_at IS NULL)",
		},
	}
	for _, st := range steps {
		res := db.Where(st.where, st.args...).Delete(st.model)
		if res.Error != nil {
			utils.LogError(res.Error, "cleanup "+st.name)
			continue
		}
		if res.RowsAffected > 0 {
			utils.Logger().Info("orphans removed", zap.String("what", st.name), zap.Int64("rows", res.RowsAffected))
		}
		removed += res.RowsAffected
	}
	return removed, nil
}

// StockHosts is the YAML file listing stock-photo hosts:
//
//	hosts:
//	  - images.unsplash.com
//	  - pexels.com
type StockHosts struct {
	Hosts []string `yaml:"hosts"`
}

func LoadStockHosts(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f StockHosts
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	var hosts []string
	for _, h := range f.Hosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts, nil
}

// isStockURL matches the host and its subdomains.
func isStockURL(raw string, hosts []string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// PurgeStockImages clears external image URLs that point at stock-photo
// hosts. Uploaded files are not touched. With dryRun nothing is written.
func (s *MaintenanceService) PurgeStockImages(ctx context.Context, hosts []string, dryRun bool) (int, error) {
	if len(hosts) == 0 {
		return 0, nil
	}
	db := s.db.WithContext(ctx)
	targets := []struct {
		model  any
		table  string
		column string
	}{
		{&models.News{}, "news", "image_url"},
		{&models.MediaArticle{}, "media_articles", "image_url"},
		{&models.Banner{}, "banners", "image_url"},
		{&models.SocialOpportunity{}, "social_opportunities", "image_url"},
		{&models.Outlet{}, "outlets", "logo_url"},
	}

	purged := 0
	for _, t := range targets {
		var rows []struct {
			ID  uint
			URL string
		}
		err := db.Model(t.model).
			Select("id, " + t.column + " AS url").
			Where(t.column + " <> ''").
			Scan(&rows).Error
		if err != nil {
			utils.LogError(err, "scan "+t.table)
			continue
		}
		for _, r := range rows {
			if !isStockURL(r.URL, hosts) {
				continue
			}
			utils.Logger().Info("stock image", zap.String("table", t.table),
				zap.Uint("id", r.ID), zap.String("url", r.URL), zap.Bool("dry_run", dryRun))
			if !dryRun {
				if err := db.Model(t.model).Where("id = ?", r.ID).UpdateColumn(t.column, "").Error; err != nil {
					utils.LogError(err, fmt.Sprintf("clear %s %d", t.table, r.ID))
					continue
				}
			}
			purged++
		}
	}
	return purged, nil
}

// TagDictionary maps a Russian tag name to its Kyrgyz and English names:
//
//	Наука:
//	  kg: Илим
//	  en: Science
type TagDictionary map[string]struct {
	KG string `yaml:"kg"`
	EN string `yaml:"en"`
}

func LoadTagDictionary(path string) (TagDictionary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d TagDictionary
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := make(TagDictionary, len(d))
	for k, v := range d {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out, nil
}

// Translator translates Russian text into a site language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// TranslateTags fills blank Kyrgyz and English tag names, first from dict and
// then, when remote is non-nil, through the translation API. Existing
// translations are never overwritten.
func (s *MaintenanceService) TranslateTags(ctx context.Context, dict TagDictionary, remote Translator) (int, error) {
	db := s.db.WithContext(ctx)
	var tags []models.Tag
	if err := db.Where("name_kg = '' OR name_en = ''").Find(&tags).Error; err != nil {
		return 0, err
	}

	updated := 0
	for _, t := range tags {
		ru := strings.TrimSpace(t.Name.RU)
		if ru == "" {
			continue
		}
		name := t.Name
		entry := dict[strings.ToLower(ru)]
		if strings.TrimSpace(name.KG) == "" {
			name.KG = entry.KG
		}
		if strings.TrimSpace(name.EN) == "" {
			name.EN = entry.EN
		}

		if remote != nil {
			for _, lang := range []models.Lang{models.LangKG, models.LangEN} {
				dst := &name.KG
				if lang == models.LangEN {
					dst = &name.EN
				}
				if strings.TrimSpace(*dst) != "" {
					continue
				}
				tr, err := remote.Translate(ctx, ru, string(lang))
				if err != nil {
					utils.LogError(err, fmt.Sprintf("translate tag %d to %s", t.ID, lang))
					continue
				}
				*dst = tr
			}
		}

		if name == t.Name {
			continue
		}
		err := db.Model(&t).UpdateColumns(map[string]any{
			"name_kg": name.KG,
			"name_en": name.EN,
		}).Error
		if err != nil {
			utils.LogError(err, fmt.Sprintf("update tag %d", t.ID))
			continue
		}
		updated++
	}
	return updated, nil
}
