package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/counters"
)

// Sentiment of a media publication about the university.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

const (
	MinImportance = 1
	MaxImportance = 10
)

// Outlet - СМИ, публикующее материалы об университете
type Outlet struct {
	gorm.Model
	Name          TranslatedText `gorm:"embedded;embeddedPrefix:name_"`
	Description   TranslatedText `gorm:"embedded;embeddedPrefix:description_"`
	Logo          MediaRef       `gorm:"embedded;embeddedPrefix:logo_"`
	Website       string         `gorm:"type:VARCHAR(512)"`
	OutletType    string         `gorm:"type:VARCHAR(50);index"`
	IsActive      bool           `gorm:"not null"`
	TotalArticles int64          `gorm:"default:0;not null"`
}

func (o *Outlet) MediaField() *MediaRef { return &o.Logo }
func (*Outlet) MediaColumn() string     { return "logo_file" }
func (*Outlet) MediaFolder() string     { return "outlets" }

type MediaCategory struct {
	gorm.Model
	Slug      string         `gorm:"type:VARCHAR(100);uniqueIndex"`
	Name      TranslatedText `gorm:"embedded;embeddedPrefix:name_"`
	SortOrder int            `gorm:"default:0"`
}

// MediaArticle - публикация в СМИ об университете
type MediaArticle struct {
	gorm.Model
	Slug            string         `gorm:"type:VARCHAR(255);uniqueIndex"`
	Title           TranslatedText `gorm:"embedded;embeddedPrefix:title_"`
	Description     TranslatedText `gorm:"embedded;embeddedPrefix:description_"`
	Content         TranslatedText `gorm:"embedded;embeddedPrefix:content_"`
	Keywords        TranslatedText `gorm:"embedded;embeddedPrefix:keywords_"`
	Author          TranslatedText `gorm:"embedded;embeddedPrefix:author_"`
	Image           MediaRef       `gorm:"embedded;embeddedPrefix:image_"`
	OutletID        uint           `gorm:"not null;index"`
	Outlet          *Outlet        `gorm:"foreignKey:OutletID"`
	CategoryID      *uint          `gorm:"index"`
	Category        *MediaCategory `gorm:"foreignKey:CategoryID"`
	Sentiment       Sentiment      `gorm:"type:VARCHAR(10);not null;default:'neutral';index"`
	ImportanceScore int            `gorm:"not null;default:5;index"`
	PublicationDate time.Time      `gorm:"type:date;not null;index"`
	OriginalURL     string         `gorm:"type:VARCHAR(1024)"`
	ViewsCount      int64          `gorm:"default:0;not null"`
	Reach           int64          `gorm:"default:0;not null"`
	IsPublished     bool           `gorm:"default:false;index"`
	IsFeatured      bool           `gorm:"default:false"`
	IsVerified      bool           `gorm:"default:false"`
}

func (a *MediaArticle) MediaField() *MediaRef { return &a.Image }
func (*MediaArticle) MediaColumn() string     { return "image_file" }
func (*MediaArticle) MediaFolder() string     { return "media-articles" }

// CountedOutlets is the set of outlets whose total_articles includes this article.
func (a *MediaArticle) CountedOutlets() []uint {
	if !a.IsPublished || a.OutletID == 0 {
		return nil
	}
	return []uint{a.OutletID}
}

// AfterCreate runs inside the create transaction.
func (a *MediaArticle) AfterCreate(tx *gorm.DB) error {
	return counters.ApplyMembership(tx, &Outlet{}, "total_articles", nil, a.CountedOutlets())
}

// AfterDelete runs inside the delete transaction. The article must be loaded
// before deletion for the hook to see its outlet and publish state.
func (a *MediaArticle) AfterDelete(tx *gorm.DB) error {
	return counters.ApplyMembership(tx, &Outlet{}, "total_articles", a.CountedOutlets(), nil)
}

// ContentView records that an address has already been counted for a piece
// of content. The unique index collapses concurrent duplicates.
type ContentView struct {
	ID          uint      `gorm:"primaryKey"`
	ContentType string    `gorm:"type:VARCHAR(30);not null;uniqueIndex:uniq_content_view_ip"`
	ContentID   uint      `gorm:"not null;uniqueIndex:uniq_content_view_ip"`
	IPAddress   string    `gorm:"type:VARCHAR(64);not null;uniqueIndex:uniq_content_view_ip"`
	CreatedAt   time.Time `gorm:"index"`
}

const (
	ContentTypeNews         = "news"
	ContentTypeMediaArticle = "media_article"
)

// DailyStatistics - агрегат публикаций за один день, пересчитывается целиком
type DailyStatistics struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Date           time.Time      `gorm:"type:date;not null;uniqueIndex" json:"date"`
	TotalArticles  int64          `gorm:"not null;default:0" json:"total_articles"`
	TotalViews     int64          `gorm:"not null;default:0" json:"total_views"`
	TotalReach     int64          `gorm:"not null;default:0" json:"total_reach"`
	PositiveCount  int64          `gorm:"not null;default:0" json:"positive_count"`
	NeutralCount   int64          `gorm:"not null;default:0" json:"neutral_count"`
	NegativeCount  int64          `gorm:"not null;default:0" json:"negative_count"`
	CategoryCounts datatypes.JSON `gorm:"type:jsonb" json:"category_counts"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (DailyStatistics) TableName() string {
	return "daily_statistics"
}
