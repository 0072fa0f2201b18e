package models

import "gorm.io/gorm"

// Banner - слайд на главной странице
type Banner struct {
	gorm.Model
	Title      TranslatedText `gorm:"embedded;embeddedPrefix:title_"`
	Subtitle   TranslatedText `gorm:"embedded;embeddedPrefix:subtitle_"`
	ButtonText TranslatedText `gorm:"embedded;embeddedPrefix:button_text_"`
	Image      MediaRef       `gorm:"embedded;embeddedPrefix:image_"`
	LinkURL    string         `gorm:"type:VARCHAR(1024)"`
	SortOrder  int            `gorm:"default:0;index"`
	IsActive   bool           `gorm:"not null;index"`
}

func (b *Banner) MediaField() *MediaRef { return &b.Image }
func (*Banner) MediaColumn() string     { return "image_file" }
func (*Banner) MediaFolder() string     { return "banners" }
