package models

import "gorm.io/gorm"

// SocialSection groups student-life entries on the public site.
type SocialSection string

const (
	SocialSectionClub         SocialSection = "club"
	SocialSectionOpportunity  SocialSection = "opportunity"
	SocialSectionVolunteering SocialSection = "volunteering"
	SocialSectionSport        SocialSection = "sport"
)

func (s SocialSection) Valid() bool {
	switch s {
	case SocialSectionClub, SocialSectionOpportunity, SocialSectionVolunteering, SocialSectionSport:
		return true
	}
	return false
}

// SocialOpportunity - запись раздела «Студенческая жизнь»
type SocialOpportunity struct {
	gorm.Model
	Section      SocialSection  `gorm:"type:VARCHAR(20);not null;index"`
	Title        TranslatedText `gorm:"embedded;embeddedPrefix:title_"`
	Description  TranslatedText `gorm:"embedded;embeddedPrefix:description_"`
	Image        MediaRef       `gorm:"embedded;embeddedPrefix:image_"`
	LinkURL      string         `gorm:"type:VARCHAR(1024)"`
	ContactEmail string         `gorm:"type:VARCHAR(255)"`
	SortOrder    int            `gorm:"default:0;index"`
	IsActive     bool           `gorm:"not null;index"`
}

func (s *SocialOpportunity) MediaField() *MediaRef { return &s.Image }
func (*SocialOpportunity) MediaColumn() string     { return "image_file" }
func (*SocialOpportunity) MediaFolder() string     { return "social" }
