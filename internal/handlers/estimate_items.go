package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autoshop-erp/internal/database"
	"autoshop-erp/internal/httputil"
	"autoshop-erp/internal/models"
)

type partRequest struct {
	PartName   *string  `json:"part_name"`
	PartNumber *string  `json:"part_number"`
	Quantity   *int     `json:"quantity"`
	UnitPrice  *float64 `json:"unit_price"`
	Notes      *string  `json:"notes"`
}

func AddEstimatePart(c *gin.Context) {
	estimate, ok := loadPendingEstimate(c, "add parts to")
	if !ok {
		return
	}

	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if req.PartName == nil || *req.PartName == "" {
		httputil.BadRequest(c, "missing required field: part_name")
		return
	}
	if req.Quantity == nil {
		httputil.BadRequest(c, "missing required field: quantity")
		return
	}
	if req.UnitPrice == nil {
		httputil.BadRequest(c, "missing required field: unit_price")
		return
	}
	if *req.Quantity <= 0 {
		httputil.BadRequest(c, "quantity must be greater than 0")
		return
	}
	// Zero unit price is allowed for warranty or promotional parts.
	if *req.UnitPrice < 0 {
		httputil.BadRequest(c, "unit price cannot be negative")
		return
	}

	part := models.EstimatePart{
		EstimateID: estimate.ID,
		PartName:   *req.PartName,
		Quantity:   *req.Quantity,
		UnitPrice:  *req.UnitPrice,
		TotalPrice: models.RoundCents(float64(*req.Quantity) * *req.UnitPrice),
	}
	if req.PartNumber != nil {
		part.PartNumber = *req.PartNumber
	}
	if req.Notes != nil {
		part.Notes = *req.Notes
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&part).Error; err != nil {
			return err
		}
		return recalcEstimateTotals(tx, estimate)
	})
	if err != nil {
		httputil.Internal(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "part added successfully",
		"part":     part,
		"estimate": estimate,
	})
}

func UpdateEstimatePart(c *gin.Context) {
	estimate, ok := loadPendingEstimate(c, "update parts of")
	if !ok {
		return
	}

	part, ok := loadEstimatePart(c, estimate.ID)
	if !ok {
		return
	}

	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			httputil.BadRequest(c, "quantity must be greater than 0")
			return
		}
		part.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			httputil.BadRequest(c, "unit price cannot be negative")
			return
		}
		part.UnitPrice = *req.UnitPrice
	}
	if req.PartName != nil {
		part.PartName = *req.PartName
	}
	if req.PartNumber != nil {
		part.PartNumber = *req.PartNumber
	}
	if req.Notes != nil {
		part.Notes = *req.Notes
	}
	part.TotalPrice = models.RoundCents(float64(part.Quantity) * part.UnitPrice)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(part).Error; err != nil {
			return err
		}
		return recalcEstimateTotals(tx, estimate)
	})
	if err != nil {
		httputil.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "part updated successfully",
		"part":     part,
		"estimate": estimate,
	})
}

func DeleteEstimatePart(c *gin.Context) {
	estimate, ok := loadPendingEstimate(c, "remove parts from")
	if !ok {
		return
	}

	part, ok := loadEstimatePart(c, estimate.ID)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(part).Error; err != nil {
			return err
		}
		return recalcEstimateTotals(tx, estimate)
	})
	if err != nil {
		httputil.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "part removed successfully",
		"estimate": estimate,
	})
}

type labourRequest struct {
	Description *string  `json:"description"`
	Hours       *float64 `json:"hours"`
	HourlyRate  *float64 `json:"hourly_rate"`
	Notes       *string  `json:"notes"`
}

func AddEstimateLabour(c *gin.Context) {
	estimate, ok := loadPendingEstimate(c, "add labour to")
	if !ok {
		return
	}

	var req labourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if req.Description == nil || *req.Description == "" {
		httputil.BadRequest(c, "missing required field: description")
		return
	}
	if req.Hours == nil {
		httputil.BadRequest(c, "missing required field: hours")
		return
	}
	if req.HourlyRate == nil {
		httputil.BadRequest(c, "missing required field: hourly_rate")
		return
	}
	if *req.Hours <= 0 {
		httputil.BadRequest(c, "hours must be greater than 0")
		return
	}
	if *req.HourlyRate <= 0 {
		httputil.BadRequest(c, "hourly rate must be greater than 0")
		return
	}

	labour := models.EstimateLabour{
		EstimateID:  estimate.ID,
		Description: *req.Description,
		Hours:       *req.Hours,
		HourlyRate:  *req.HourlyRate,
		TotalCost:   models.RoundCents(*req.Hours * *req.HourlyRate),
	}
	if req.Notes != nil {
		labour.Notes = *req.Notes
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&labour).Error; err != nil {
			return err
		}
		return recalcEstimateTotals(tx, estimate)
	})
	if err != nil {
		httputil.Internal(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "labour added successfully",
		"labour":   labour,
		"estimate": estimate,
	})
}

func UpdateEstimateLabour(c *gin.Context) {
	estimate, ok := loadPendingEstimate(c, "update labour of")
	if !ok {
		return
	}

	labour, ok := loadEstimateLabour(c, estimate.ID)
	if !ok {
		return
	}

	var req labourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	if req.Hours != nil {
		if *req.Hours <= 0 {
			httputil.BadRequest(c, "hours must be greater than 0")
			return
		}
		labour.Hours = *req.Hours
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate <= 0 {
			httputil.BadRequest(c, "hourly rate must be greater than 0")
			return
		}
		labour.HourlyRate = *req.HourlyRate
	}
	if req.Description != nil {
		labour.Description = *req.Description
	}
	if req.Notes != nil {
		labour.Notes = *req.Notes
	}
	labour.TotalCost = models.RoundCents(labour.Hours * labour.HourlyRate)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(labour).Error; err != nil {
			return err
		}
		return recalcEstimateTotals(tx, estimate)
	})
	if err != nil {
		httputil.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "labour updated successfully",
		"labour":   labour,
		"estimate": estimate,
	})
}

func DeleteEstimateLabour(c *gin.Context) {
	estimate, ok := loadPendingEstimate(c, "remove labour from")
	if !ok {
		return
	}

	labour, ok := loadEstimateLabour(c, estimate.ID)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(labour).Error; err != nil {
			return err
		}
		return recalcEstimateTotals(tx, estimate)
	})
	if err != nil {
		httputil.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "labour removed successfully",
		"estimate": estimate,
	})
}

func loadEstimatePart(c *gin.Context, estimateID uint) (*models.EstimatePart, bool) {
	partID := parseID(c, "part_id")
	if partID == 0 {
		httputil.BadRequest(c, "invalid part id")
		return nil, false
	}
	var part models.EstimatePart
	if err := database.DB.First(&part, partID).Error; err != nil {
		httputil.NotFound(c, "part not found")
		return nil, false
	}
	if part.EstimateID != estimateID {
		httputil.BadRequest(c, "part does not belong to this estimate")
		return nil, false
	}
	return &part, true
}

func loadEstimateLabour(c *gin.Context, estimateID uint) (*models.EstimateLabour, bool) {
	labourID := parseID(c, "labour_id")
	if labourID == 0 {
		httputil.BadRequest(c, "invalid labour id")
		return nil, false
	}
	var labour models.EstimateLabour
	if err := database.DB.First(&labour, labourID).Error; err != nil {
		httputil.NotFound(c, "labour not found")
		return nil, false
	}
	if labour.EstimateID != estimateID {
		httputil.BadRequest(c, "labour does not belong to this estimate")
		return nil, false
	}
	return &labour, true
}
