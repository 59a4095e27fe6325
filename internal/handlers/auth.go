package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"autoshop-erp/internal/auth"
	"autoshop-erp/internal/database"
	"autoshop-erp/internal/httputil"
	"autoshop-erp/internal/middleware"
	"autoshop-erp/internal/models"
)

// Auth bundles the endpoints that need the token issuer.
type Auth struct {
	issuer *auth.Issuer
}

func NewAuth(issuer *auth.Issuer) *Auth {
	return &Auth{issuer: issuer}
}

type registerRequest struct {
	Username  string `json:"username" binding:"required,min=3"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	RoleID    uint   `json:"role_id" binding:"required"`
}

func (a *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	var role models.Role
	if err := database.DB.First(&role, req.RoleID).Error; err != nil {
		httputil.BadRequest(c, "invalid role_id")
		return
	}

	var count int64
	if err := database.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		httputil.Internal(c, err)
		return
	}
	if count > 0 {
		httputil.Conflict(c, "username already exists")
		return
	}
	if err := database.DB.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", req.Email).Count(&count).Error; err != nil {
		httputil.Internal(c, err)
		return
	}
	if count > 0 {
		httputil.Conflict(c, "email already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httputil.Internal(c, err)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		IsActive:     true,
		RoleID:       role.ID,
		Role:         role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	logrus.WithField("username", user.Username).Info("user registered")
	c.JSON(http.StatusCreated, gin.H{
		"message": "user registered successfully",
		"user":    user,
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "missing username or password")
		return
	}

	var user models.User
	if err := database.DB.Preload("Role").Where("username = ?", req.Username).First(&user).Error; err != nil {
		httputil.Unauthorized(c, "invalid username or password")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		httputil.Unauthorized(c, "invalid username or password")
		return
	}
	if !user.IsActive {
		httputil.Forbidden(c, "user account is inactive")
		return
	}

	accessToken, err := a.issuer.IssueAccessToken(user.ID)
	if err != nil {
		httputil.Internal(c, err)
		return
	}
	refreshToken, err := a.issuer.IssueRefreshToken(user.ID)
	if err != nil {
		httputil.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "login successful",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          user,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh mints a new access token from a valid refresh token. The
// refresh token itself is never re-issued or extended.
func (a *Auth) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "missing refresh_token")
		return
	}

	claims, err := a.issuer.ParseRefresh(req.RefreshToken)
	if err != nil {
		if err == auth.ErrTokenExpired {
			httputil.Unauthorized(c, "token expired")
			return
		}
		httputil.Unauthorized(c, "invalid token")
		return
	}

	accessToken, err := a.issuer.IssueAccessToken(claims.UserID)
	if err != nil {
		httputil.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

func (a *Auth) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httputil.Unauthorized(c, "unauthenticated")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
