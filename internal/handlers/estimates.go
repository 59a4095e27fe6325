package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autoshop-erp/internal/database"
	"autoshop-erp/internal/httputil"
	"autoshop-erp/internal/models"
)

const estimateNumberPrefix = "EST"

// generateEstimateNumber produces the next EST-YYYYMMDD-NNNN for today.
func generateEstimateNumber(tx *gorm.DB) (string, error) {
	prefix := fmt.Sprintf("%s-%s-", estimateNumberPrefix, time.Now().UTC().Format("20060102"))

	var latest models.Estimate
	err := tx.Where("estimate_number LIKE ?", prefix+"%").
		Order("estimate_number desc").
		First(&latest).Error

	next := 1
	if err == nil {
		if n, convErr := strconv.Atoi(strings.TrimPrefix(latest.EstimateNumber, prefix)); convErr == nil {
			next = n + 1
		}
	} else if err != gorm.ErrRecordNotFound {
		return "", err
	}

	return fmt.Sprintf("%s%04d", prefix, next), nil
}

// deleteEstimatesWhere removes estimates matching the condition together
// with their parts and labour rows. Used by the cascade deletes.
func deleteEstimatesWhere(tx *gorm.DB, query string, args ...interface{}) error {
	var ids []uint
	if err := tx.Model(&models.Estimate{}).Where(query, args...).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("estimate_id IN ?", ids).Delete(&models.EstimatePart{}).Error; err != nil {
		return err
	}
	if err := tx.Where("estimate_id IN ?", ids).Delete(&models.EstimateLabour{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Estimate{}).Error
}

// recalcEstimateTotals reloads the line items and persists fresh totals.
func recalcEstimateTotals(tx *gorm.DB, estimate *models.Estimate) error {
	var parts []models.EstimatePart
	if err := tx.Where("estimate_id = ?", estimate.ID).Find(&parts).Error; err != nil {
		return err
	}
	var labour []models.EstimateLabour
	if err := tx.Where("estimate_id = ?", estimate.ID).Find(&labour).Error; err != nil {
		return err
	}
	estimate.RecalculateTotals(parts, labour)
	return tx.Save(estimate).Error
}

func loadPendingEstimate(c *gin.Context, verb string) (*models.Estimate, bool) {
	id := parseID(c, "id")
	if id == 0 {
		httputil.BadRequest(c, "invalid estimate id")
		return nil, false
	}
	var estimate models.Estimate
	if err := database.DB.First(&estimate, id).Error; err != nil {
		httputil.NotFound(c, "estimate not found")
		return nil, false
	}
	if estimate.Status != models.EstimateStatusPending {
		httputil.BadRequest(c, "can only "+verb+" pending estimates")
		return nil, false
	}
	return &estimate, true
}

func ListEstimates(c *gin.Context) {
	p := httputil.ParsePagination(c)

	q := database.DB.Model(&models.Estimate{})
	if v := c.Query("status"); v != "" {
		q = q.Where("status = ?", v)
	}
	if v := c.Query("customer_id"); v != "" {
		q = q.Where("customer_id = ?", v)
	}
	if v := c.Query("vehicle_id"); v != "" {
		q = q.Where("vehicle_id = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	var estimates []models.Estimate
	if err := q.Order("created_at desc").Offset(p.Offset()).Limit(p.PerPage).Find(&estimates).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"estimates": estimates,
		"total":     total,
		"page":      p.Page,
		"per_page":  p.PerPage,
		"pages":     httputil.Pages(total, p.PerPage),
	})
}

func GetEstimate(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		httputil.BadRequest(c, "invalid estimate id")
		return
	}

	var estimate models.Estimate
	err := database.DB.Preload("Parts").Preload("Labour").First(&estimate, id).Error
	if err != nil {
		httputil.NotFound(c, "estimate not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"estimate": estimate})
}

type createEstimateRequest struct {
	CustomerID              uint   `json:"customer_id" binding:"required"`
	VehicleID               uint   `json:"vehicle_id" binding:"required"`
	InsuranceCompanyID      *uint  `json:"insurance_company_id"`
	InsuranceClaimNumber    string `json:"insurance_claim_number"`
	IsInsuranceClaim        bool   `json:"is_insurance_claim"`
	Description             string `json:"description"`
	EstimatedCompletionDate string `json:"estimated_completion_date"`
}

func CreateEstimate(c *gin.Context) {
	var req createEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, req.CustomerID).Error; err != nil {
		httputil.NotFound(c, "customer not found")
		return
	}
	var vehicle models.Vehicle
	if err := database.DB.First(&vehicle, req.VehicleID).Error; err != nil {
		httputil.NotFound(c, "vehicle not found")
		return
	}
	if req.InsuranceCompanyID != nil {
		var company models.InsuranceCompany
		if err := database.DB.First(&company, *req.InsuranceCompanyID).Error; err != nil {
			httputil.NotFound(c, "insurance company not found")
			return
		}
	}

	var completionDate *time.Time
	if req.EstimatedCompletionDate != "" {
		d, err := time.Parse("2006-01-02", req.EstimatedCompletionDate)
		if err != nil {
			httputil.BadRequest(c, "invalid date format for estimated_completion_date")
			return
		}
		completionDate = &d
	}

	estimate := models.Estimate{
		CustomerID:              req.CustomerID,
		VehicleID:               req.VehicleID,
		InsuranceCompanyID:      req.InsuranceCompanyID,
		InsuranceClaimNumber:    req.InsuranceClaimNumber,
		IsInsuranceClaim:        req.IsInsuranceClaim,
		Description:             req.Description,
		EstimatedCompletionDate: completionDate,
		Status:                  models.EstimateStatusPending,
		CreatedBy:               currentUserID(c),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		number, err := generateEstimateNumber(tx)
		if err != nil {
			return err
		}
		estimate.EstimateNumber = number
		return tx.Create(&estimate).Error
	})
	if err != nil {
		httputil.Internal(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "estimate", estimate.ID, "create",
		"created estimate "+estimate.EstimateNumber)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "estimate created successfully",
		"estimate": estimate,
	})
}

type updateEstimateRequest struct {
	CustomerID              *uint   `json:"customer_id"`
	VehicleID               *uint   `json:"vehicle_id"`
	InsuranceCompanyID      *uint   `json:"insurance_company_id"`
	InsuranceClaimNumber    *string `json:"insurance_claim_number"`
	IsInsuranceClaim        *bool   `json:"is_insurance_claim"`
	Description             *string `json:"description"`
	EstimatedCompletionDate *string `json:"estimated_completion_date"`
}

func UpdateEstimate(c *gin.Context) {
	estimate, ok := loadPendingEstimate(c, "edit")
	if !ok {
		return
	}

	var req updateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	if req.CustomerID != nil {
		var customer models.Customer
		if err := database.DB.First(&customer, *req.CustomerID).Error; err != nil {
			httputil.NotFound(c, "customer not found")
			return
		}
		estimate.CustomerID = *req.CustomerID
	}
	if req.VehicleID != nil {
		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, *req.VehicleID).Error; err != nil {
			httputil.NotFound(c, "vehicle not found")
			return
		}
		estimate.VehicleID = *req.VehicleID
	}
	if req.InsuranceCompanyID != nil {
		var company models.InsuranceCompany
		if err := database.DB.First(&company, *req.InsuranceCompanyID).Error; err != nil {
			httputil.NotFound(c, "insurance company not found")
			return
		}
		estimate.InsuranceCompanyID = req.InsuranceCompanyID
	}
	if req.InsuranceClaimNumber != nil {
		estimate.InsuranceClaimNumber = *req.InsuranceClaimNumber
	}
	if req.IsInsuranceClaim != nil {
		estimate.IsInsuranceClaim = *req.IsInsuranceClaim
	}
	if req.Description != nil {
		estimate.Description = *req.Description
	}
	if req.EstimatedCompletionDate != nil {
		if *req.EstimatedCompletionDate == "" {
			estimate.EstimatedCompletionDate = nil
		} else {
			d, err := time.Parse("2006-01-02", *req.EstimatedCompletionDate)
			if err != nil {
				httputil.BadRequest(c, "invalid date format for estimated_completion_date")
				return
			}
			estimate.EstimatedCompletionDate = &d
		}
	}

	if err := database.DB.Save(estimate).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "estimate", estimate.ID, "update",
		"updated estimate "+estimate.EstimateNumber)

	c.JSON(http.StatusOK, gin.H{
		"message":  "estimate updated successfully",
		"estimate": estimate,
	})
}

func DeleteEstimate(c *gin.Context) {
	estimate, ok := loadPendingEstimate(c, "delete")
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return deleteEstimatesWhere(tx, "id = ?", estimate.ID)
	})
	if err != nil {
		httputil.Internal(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "estimate", estimate.ID, "delete",
		"deleted estimate "+estimate.EstimateNumber)

	c.JSON(http.StatusOK, gin.H{"message": "estimate deleted successfully"})
}

func ApproveEstimate(c *gin.Context) {
	estimate, ok := loadPendingEstimate(c, "approve")
	if !ok {
		return
	}

	userID := currentUserID(c)
	now := time.Now()
	estimate.Status = models.EstimateStatusApproved
	estimate.ApprovedBy = &userID
	estimate.ApprovedAt = &now
	estimate.RejectionReason = ""

	if err := database.DB.Save(estimate).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	database.CreateAuditLog(userID, "estimate", estimate.ID, "approve",
		"approved estimate "+estimate.EstimateNumber)

	c.JSON(http.StatusOK, gin.H{
		"message":  "estimate approved successfully",
		"estimate": estimate,
	})
}

type rejectEstimateRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

func RejectEstimate(c *gin.Context) {
	estimate, ok := loadPendingEstimate(c, "reject")
	if !ok {
		return
	}

	var req rejectEstimateRequest
	_ = c.ShouldBindJSON(&req)

	userID := currentUserID(c)
	now := time.Now()
	estimate.Status = models.EstimateStatusRejected
	estimate.ApprovedBy = &userID
	estimate.ApprovedAt = &now
	estimate.RejectionReason = req.RejectionReason

	if err := database.DB.Save(estimate).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	database.CreateAuditLog(userID, "estimate", estimate.ID, "reject",
		"rejected estimate "+estimate.EstimateNumber)

	c.JSON(http.StatusOK, gin.H{
		"message":  "estimate rejected successfully",
		"estimate": estimate,
	})
}
