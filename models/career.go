package models

import (
	"time"

	"gorm.io/gorm"
)

// EmploymentType of a vacancy.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

// Vacancy - открытая позиция в разделе «Карьера»
type Vacancy struct {
	gorm.Model
	Title          TranslatedText `gorm:"embedded;embeddedPrefix:title_"`
	Department     TranslatedText `gorm:"embedded;embeddedPrefix:department_"`
	Description    TranslatedText `gorm:"embedded;embeddedPrefix:description_"`
	Requirements   TranslatedText `gorm:"embedded;embeddedPrefix:requirements_"`
	EmploymentType EmploymentType `gorm:"type:VARCHAR(20);not null;default:'full_time';index"`
	Deadline       *time.Time
	ContactEmail   string `gorm:"type:VARCHAR(255)"`
	IsActive       bool   `gorm:"not null;index"`
}
