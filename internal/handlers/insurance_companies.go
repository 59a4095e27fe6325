package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"autoshop-erp/internal/database"
	"autoshop-erp/internal/httputil"
	"autoshop-erp/internal/models"
)

func ListInsuranceCompanies(c *gin.Context) {
	p := httputil.ParsePagination(c)

	q := database.DB.Model(&models.InsuranceCompany{})
	if v := c.Query("is_active"); v != "" {
		q = q.Where("is_active = ?", strings.EqualFold(v, "true"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	var companies []models.InsuranceCompany
	if err := q.Order("name asc").Offset(p.Offset()).Limit(p.PerPage).Find(&companies).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"insurance_companies": companies,
		"total":               total,
		"page":                p.Page,
		"per_page":            p.PerPage,
		"pages":               httputil.Pages(total, p.PerPage),
	})
}

func GetInsuranceCompany(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		httputil.BadRequest(c, "invalid insurance company id")
		return
	}

	var company models.InsuranceCompany
	if err := database.DB.First(&company, id).Error; err != nil {
		httputil.NotFound(c, "insurance company not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"insurance_company": company})
}

type createInsuranceCompanyRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	Address       string `json:"address"`
	IsActive      *bool  `json:"is_active"`
}

func CreateInsuranceCompany(c *gin.Context) {
	var req createInsuranceCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	var count int64
	if err := database.DB.Model(&models.InsuranceCompany{}).
		Where("LOWER(name) = LOWER(?)", req.Name).Count(&count).Error; err != nil {
		httputil.Internal(c, err)
		return
	}
	if count > 0 {
		httputil.Conflict(c, "insurance company with this name already exists")
		return
	}

	company := models.InsuranceCompany{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		IsActive:      true,
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}
	if err := database.DB.Create(&company).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "insurance_company", company.ID, "create",
		"created insurance company "+company.Name)

	c.JSON(http.StatusCreated, gin.H{
		"message":           "insurance company created successfully",
		"insurance_company": company,
	})
}

type updateInsuranceCompanyRequest struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Address       *string `json:"address"`
	IsActive      *bool   `json:"is_active"`
}

func UpdateInsuranceCompany(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		httputil.BadRequest(c, "invalid insurance company id")
		return
	}

	var company models.InsuranceCompany
	if err := database.DB.First(&company, id).Error; err != nil {
		httputil.NotFound(c, "insurance company not found")
		return
	}

	var req updateInsuranceCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	if req.Name != nil && !strings.EqualFold(*req.Name, company.Name) {
		var count int64
		if err := database.DB.Model(&models.InsuranceCompany{}).
			Where("LOWER(name) = LOWER(?) AND id <> ?", *req.Name, company.ID).
			Count(&count).Error; err != nil {
			httputil.Internal(c, err)
			return
		}
		if count > 0 {
			httputil.Conflict(c, "insurance company with this name already exists")
			return
		}
		company.Name = *req.Name
	}
	if req.ContactPerson != nil {
		company.ContactPerson = *req.ContactPerson
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&company).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "insurance_company", company.ID, "update",
		"updated insurance company "+company.Name)

	c.JSON(http.StatusOK, gin.H{
		"message":           "insurance company updated successfully",
		"insurance_company": company,
	})
}

func DeleteInsuranceCompany(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		httputil.BadRequest(c, "invalid insurance company id")
		return
	}

	var company models.InsuranceCompany
	if err := database.DB.First(&company, id).Error; err != nil {
		httputil.NotFound(c, "insurance company not found")
		return
	}

	if err := database.DB.Delete(&models.InsuranceCompany{}, id).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "insurance_company", id, "delete",
		"deleted insurance company "+company.Name)

	c.JSON(http.StatusOK, gin.H{"message": "insurance company deleted successfully"})
}
