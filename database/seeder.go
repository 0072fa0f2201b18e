package database

import (
	"strings"

	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// SeedAdmin создаёт первого администратора, если таблица пуста
func SeedAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	var count int64
	if err := db.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	return db.Create(&models.AdminUser{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}).Error
}

// SeedMediaCategories заполняет рубрики публикаций в СМИ, если их ещё нет
func SeedMediaCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MediaCategory{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	categories := []models.MediaCategory{
		{Slug: "education", SortOrder: 1, Name: models.TranslatedText{RU: "Образование", KG: "Билим берүү", EN: "Education"}},
		{Slug: "science", SortOrder: 2, Name: models.TranslatedText{RU: "Наука", KG: "Илим", EN: "Science"}},
		{Slug: "medicine", SortOrder: 3, Name: models.TranslatedText{RU: "Медицина", KG: "Медицина", EN: "Medicine"}},
		{Slug: "events", SortOrder: 4, Name: models.TranslatedText{RU: "События", KG: "Иш-чаралар", EN: "Events"}},
		{Slug: "partnership", SortOrder: 5, Name: models.TranslatedText{RU: "Партнёрство", KG: "Өнөктөштүк", EN: "Partnership"}},
		{Slug: "students", SortOrder: 6, Name: models.TranslatedText{RU: "Студенты", KG: "Студенттер", EN: "Students"}},
	}
	return db.Create(&categories).Error
}
