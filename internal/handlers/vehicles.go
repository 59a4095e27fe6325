package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autoshop-erp/internal/database"
	"autoshop-erp/internal/httputil"
	"autoshop-erp/internal/models"
)

func ListVehicles(c *gin.Context) {
	p := httputil.ParsePagination(c)

	q := database.DB.Model(&models.Vehicle{})
	if v := c.Query("customer_id"); v != "" {
		customerID, err := strconv.Atoi(v)
		if err != nil || customerID <= 0 {
			httputil.BadRequest(c, "invalid customer_id")
			return
		}
		q = q.Where("customer_id = ?", customerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	var vehicles []models.Vehicle
	if err := q.Order("id asc").Offset(p.Offset()).Limit(p.PerPage).Find(&vehicles).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles": vehicles,
		"total":    total,
		"page":     p.Page,
		"per_page": p.PerPage,
		"pages":    httputil.Pages(total, p.PerPage),
	})
}

func GetVehicle(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		httputil.BadRequest(c, "invalid vehicle id")
		return
	}

	q := database.DB
	if c.Query("include_owner") == "true" {
		q = q.Preload("Customer")
	}

	var vehicle models.Vehicle
	if err := q.First(&vehicle, id).Error; err != nil {
		httputil.NotFound(c, "vehicle not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

type createVehicleRequest struct {
	CustomerID   uint    `json:"customer_id" binding:"required"`
	Make         string  `json:"make" binding:"required"`
	Model        string  `json:"model" binding:"required"`
	Year         int     `json:"year" binding:"required"`
	Color        string  `json:"color"`
	VIN          *string `json:"vin"`
	LicensePlate string  `json:"license_plate"`
	Mileage      int     `json:"mileage"`
	EngineType   string  `json:"engine_type"`
}

func CreateVehicle(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, req.CustomerID).Error; err != nil {
		httputil.NotFound(c, "customer not found")
		return
	}

	var vin *string
	if req.VIN != nil && *req.VIN != "" {
		normalized := models.NormalizeVIN(*req.VIN)
		if err := models.ValidateVIN(normalized); err != nil {
			httputil.BadRequest(c, err.Error())
			return
		}
		taken, err := vinTaken(normalized, 0)
		if err != nil {
			httputil.Internal(c, err)
			return
		}
		if taken {
			httputil.Conflict(c, "vehicle with this VIN already exists")
			return
		}
		vin = &normalized
	}

	vehicle := models.Vehicle{
		CustomerID:   req.CustomerID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Color:        req.Color,
		VIN:          vin,
		LicensePlate: req.LicensePlate,
		Mileage:      req.Mileage,
		EngineType:   req.EngineType,
	}
	if err := database.DB.Create(&vehicle).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "vehicle", vehicle.ID, "create",
		fmt.Sprintf("created vehicle %d %s %s", vehicle.Year, vehicle.Make, vehicle.Model))

	c.JSON(http.StatusCreated, gin.H{
		"message": "vehicle created successfully",
		"vehicle": vehicle,
	})
}

type updateVehicleRequest struct {
	CustomerID   *uint   `json:"customer_id"`
	Make         *string `json:"make"`
	Model        *string `json:"model"`
	Year         *int    `json:"year"`
	Color        *string `json:"color"`
	VIN          *string `json:"vin"`
	LicensePlate *string `json:"license_plate"`
	Mileage      *int    `json:"mileage"`
	EngineType   *string `json:"engine_type"`
}

func UpdateVehicle(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		httputil.BadRequest(c, "invalid vehicle id")
		return
	}

	var vehicle models.Vehicle
	if err := database.DB.First(&vehicle, id).Error; err != nil {
		httputil.NotFound(c, "vehicle not found")
		return
	}

	var req updateVehicleRequest
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
		vehicle.CustomerID = *req.CustomerID
	}
	if req.VIN != nil && *req.VIN != "" {
		normalized := models.NormalizeVIN(*req.VIN)
		if err := models.ValidateVIN(normalized); err != nil {
			httputil.BadRequest(c, err.Error())
			return
		}
		taken, err := vinTaken(normalized, vehicle.ID)
		if err != nil {
			httputil.Internal(c, err)
			return
		}
		if taken {
			httputil.Conflict(c, "vehicle with this VIN already exists")
			return
		}
		vehicle.VIN = &normalized
	}
	if req.Make != nil {
		vehicle.Make = *req.Make
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Color != nil {
		vehicle.Color = *req.Color
	}
	if req.LicensePlate != nil {
		vehicle.LicensePlate = *req.LicensePlate
	}
	if req.Mileage != nil {
		vehicle.Mileage = *req.Mileage
	}
	if req.EngineType != nil {
		vehicle.EngineType = *req.EngineType
	}

	if err := database.DB.Save(&vehicle).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "vehicle", vehicle.ID, "update",
		fmt.Sprintf("updated vehicle %d %s %s", vehicle.Year, vehicle.Make, vehicle.Model))

	c.JSON(http.StatusOK, gin.H{
		"message": "vehicle updated successfully",
		"vehicle": vehicle,
	})
}

func DeleteVehicle(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		httputil.BadRequest(c, "invalid vehicle id")
		return
	}

	var vehicle models.Vehicle
	if err := database.DB.First(&vehicle, id).Error; err != nil {
		httputil.NotFound(c, "vehicle not found")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteEstimatesWhere(tx, "vehicle_id = ?", id); err != nil {
			return err
		}
		return tx.Delete(&models.Vehicle{}, id).Error
	})
	if err != nil {
		httputil.Internal(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "vehicle", id, "delete",
		fmt.Sprintf("deleted vehicle %d %s %s", vehicle.Year, vehicle.Make, vehicle.Model))

	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted successfully"})
}

func vinTaken(vin string, excludeID uint) (bool, error) {
	q := database.DB.Model(&models.Vehicle{}).Where("vin = ?", vin)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
