package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService issues and revokes staff tokens.
type AuthService struct {
	db        *gorm.DB
	rdb       *redis.Client
	jwtSecret string
}

func NewAuthService(db *gorm.DB, rdb *redis.Client, jwtSecret string) *AuthService {
	return &AuthService{db: db, rdb: rdb, jwtSecret: jwtSecret}
}

// Login checks the password and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.AdminUser
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !user.IsActive || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}
	token, err := utils.GenerateJWT(user.ID, user.Role, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Logout revokes token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, token string, claims *utils.Claims) error {
	if s.rdb == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return utils.Blacklist(ctx, s.rdb, token, time.Until(claims.ExpiresAt.Time))
}
