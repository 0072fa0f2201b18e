package models

import (
	"time"

	"gorm.io/gorm"
)

// NewsKind splits the news feed into its three public sections.
type NewsKind string

const (
	NewsKindNews         NewsKind = "news"
	NewsKindEvent        NewsKind = "event"
	NewsKindAnnouncement NewsKind = "announcement"
)

func (k NewsKind) Valid() bool {
	switch k {
	case NewsKindNews, NewsKindEvent, NewsKindAnnouncement:
		return true
	}
	return false
}

// News хранит новости, события и объявления с локализациями
type News struct {
	gorm.Model
	Kind          NewsKind       `gorm:"type:VARCHAR(20);not null;index"`
	Slug          string         `gorm:"type:VARCHAR(255);uniqueIndex"`
	Title         TranslatedText `gorm:"embedded;embeddedPrefix:title_"`
	Summary       TranslatedText `gorm:"embedded;embeddedPrefix:summary_"`
	Content       TranslatedText `gorm:"embedded;embeddedPrefix:content_"`
	Location      TranslatedText `gorm:"embedded;embeddedPrefix:location_"`
	Image         MediaRef       `gorm:"embedded;embeddedPrefix:image_"`
	PublishedAt   time.Time      `gorm:"index"`
	EventStartsAt *time.Time
	EventEndsAt   *time.Time
	IsPublished   bool  `gorm:"default:false;index"`
	IsFeatured    bool  `gorm:"default:false"`
	ViewsCount    int64 `gorm:"default:0"`

	Tags []Tag `gorm:"many2many:news_tags;joinForeignKey:NewsID;joinReferences:TagID"`
}

func (n *News) MediaField() *MediaRef { return &n.Image }
func (*News) MediaColumn() string     { return "image_file" }
func (*News) MediaFolder() string     { return "news" }

// TagIDs returns the ids of the loaded tags.
func (n *News) TagIDs() []uint {
	ids := make([]uint, 0, len(n.Tags))
	for _, t := range n.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// NewsTag is the join row between News and Tag.
type NewsTag struct {
	NewsID    uint `gorm:"primaryKey"`
	TagID     uint `gorm:"primaryKey;index"`
	CreatedAt time.Time
}

// Tag - метка новостей; UsageCount равен числу опубликованных новостей с этой меткой
type Tag struct {
	gorm.Model
	Slug       string         `gorm:"type:VARCHAR(100);uniqueIndex"`
	Name       TranslatedText `gorm:"embedded;embeddedPrefix:name_"`
	UsageCount int64          `gorm:"default:0;not null"`
}
