package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"autoshop-erp/internal/auth"
	"autoshop-erp/internal/database"
	"autoshop-erp/internal/httputil"
	"autoshop-erp/internal/models"
	"autoshop-erp/internal/rbac"
)

const currentUserKey = "current_user"

// RequireAuth validates the Bearer access token and loads the caller
// (with role) into the request context.
func RequireAuth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			httputil.Unauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.Unauthorized(c, "authorization header format must be Bearer {token}")
			return
		}

		claims, err := issuer.ParseAccess(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				httputil.Unauthorized(c, "token expired")
				return
			}
			httputil.Unauthorized(c, "invalid token")
			return
		}

		var user models.User
		if err := database.DB.Preload("Role").First(&user, claims.UserID).Error; err != nil {
			httputil.Unauthorized(c, "user not found")
			return
		}
		if !user.IsActive {
			httputil.Forbidden(c, "user account is inactive")
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequirePermission gates a route on the caller's role. Must run after
// RequireAuth.
func RequirePermission(perm rbac.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			httputil.Unauthorized(c, "unauthenticated")
			return
		}
		if !rbac.HasPermission(rbac.Role(user.Role.Name), perm) {
			httputil.Forbidden(c, "insufficient permissions")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
