package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IbroIT/SU-back-back-sub001/middleware"
	"github.com/IbroIT/SU-back-back-sub001/services"
	"github.com/IbroIT/SU-back-back-sub001/utils"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, user, err := ac.auth.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		handleError(c, err, "login")
		return
	}
	ok(c, http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(utils.TokenTTL.Seconds()),
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// POST /auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	token := c.GetString(middleware.CtxToken)
	claims, _ := c.Get(middleware.CtxClaims)
	cl, _ := claims.(*utils.Claims)
	if err := ac.auth.Logout(c.Request.Context(), token, cl); err != nil {
		handleError(c, err, "logout")
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// GET /auth/me
func (ac *AuthController) Me(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{
		"id":   c.GetUint(middleware.CtxUserID),
		"role": c.GetString(middleware.CtxRole),
	})
}
