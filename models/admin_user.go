package models

import "gorm.io/gorm"

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// AdminUser - сотрудник, редактирующий контент сайта
type AdminUser struct {
	gorm.Model
	Email        string `gorm:"type:VARCHAR(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:VARCHAR(255);not null"`
	Role         string `gorm:"type:VARCHAR(20);not null;default:'editor'"`
	IsActive     bool   `gorm:"not null"`
}
