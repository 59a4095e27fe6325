package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"autoshop-erp/internal/middleware"
)

// parseID reads a positive integer path param, 0 when invalid.
func parseID(c *gin.Context, name string) uint {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0
	}
	return uint(id)
}

// currentUserID is the authenticated caller's id, 0 when absent.
func currentUserID(c *gin.Context) uint {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return 0
	}
	return user.ID
}
