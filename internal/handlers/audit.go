package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoshop-erp/internal/database"
	"autoshop-erp/internal/httputil"
	"autoshop-erp/internal/models"
)

// ListAuditLogs returns the mutation journal, newest first.
func ListAuditLogs(c *gin.Context) {
	p := httputil.ParsePagination(c)

	q := database.DB.Model(&models.AuditLog{})
	if v := c.Query("entity"); v != "" {
		q = q.Where("entity = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	var logs []models.AuditLog
	if err := q.Order("created_at desc").Offset(p.Offset()).Limit(p.PerPage).Find(&logs).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"audit_logs": logs,
		"total":      total,
		"page":       p.Page,
		"per_page":   p.PerPage,
		"pages":      httputil.Pages(total, p.PerPage),
	})
}
