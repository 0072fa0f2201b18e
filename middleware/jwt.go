package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/IbroIT/SU-back-back-sub001/utils"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxToken  = "token"
	CtxClaims = "claims"
)

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// authenticate validates the bearer token and stores its claims on c.
// It returns a client-facing message when the token cannot be used.
func authenticate(c *gin.Context, secret string, rdb *redis.Client) (string, bool) {
	token, ok := bearerToken(c)
	if !ok {
		return "Missing or invalid Authorization header", false
	}

	// Проверяем черный список токенов
	revoked, err := utils.IsBlacklisted(c.Request.Context(), rdb, token)
	if err != nil {
		utils.LogError(err, "token blacklist lookup")
	}
	if revoked {
		return "Token has been revoked", false
	}

	claims, err := utils.ParseJWT(token, secret)
	if err != nil {
		return "Invalid or expired token", false
	}
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxRole, claims.Role)
	c.Set(CtxToken, token)
	c.Set(CtxClaims, claims)
	return "", true
}

// JWTAuthMiddleware rejects requests without a valid, unrevoked staff token.
func JWTAuthMiddleware(secret string, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if msg, ok := authenticate(c, secret, rdb); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "result": nil, "error": msg})
			return
		}
		c.Next()
	}
}

// RequireRole must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "result": nil, "error": "Insufficient permissions"})
	}
}

// OptionalJWTMiddleware lets anonymous requests through and attaches the
// claims when a valid token is present. Public lists use it to show drafts
// to staff.
func OptionalJWTMiddleware(secret string, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := bearerToken(c); ok {
			authenticate(c, secret, rdb)
		}
		c.Next()
	}
}

// IsStaff reports whether the request carried a valid staff token.
func IsStaff(c *gin.Context) bool {
	_, ok := c.Get(CtxUserID)
	return ok
}
