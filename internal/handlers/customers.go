package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autoshop-erp/internal/database"
	"autoshop-erp/internal/httputil"
	"autoshop-erp/internal/models"
)

func ListCustomers(c *gin.Context) {
	p := httputil.ParsePagination(c)

	var total int64
	if err := database.DB.Model(&models.Customer{}).Count(&total).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	var customers []models.Customer
	err := database.DB.Order("last_name asc, first_name asc").
		Offset(p.Offset()).Limit(p.PerPage).
		Find(&customers).Error
	if err != nil {
		httputil.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers": customers,
		"total":     total,
		"page":      p.Page,
		"per_page":  p.PerPage,
		"pages":     httputil.Pages(total, p.PerPage),
	})
}

func GetCustomer(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		httputil.BadRequest(c, "invalid customer id")
		return
	}

	q := database.DB
	if c.Query("include_vehicles") == "true" {
		q = q.Preload("Vehicles")
	}

	var customer models.Customer
	if err := q.First(&customer, id).Error; err != nil {
		httputil.NotFound(c, "customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

type createCustomerRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	ZipCode   string  `json:"zip_code"`
}

func CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	if req.Email != nil {
		taken, err := customerEmailTaken(*req.Email, 0)
		if err != nil {
			httputil.Internal(c, err)
			return
		}
		if taken {
			httputil.Conflict(c, "customer with this email already exists")
			return
		}
	}

	customer := models.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
	}
	if err := database.DB.Create(&customer).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "customer", customer.ID, "create",
		"created customer "+customer.FirstName+" "+customer.LastName)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "customer created successfully",
		"customer": customer,
	})
}

type updateCustomerRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	ZipCode   *string `json:"zip_code"`
}

func UpdateCustomer(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		httputil.BadRequest(c, "invalid customer id")
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, id).Error; err != nil {
		httputil.NotFound(c, "customer not found")
		return
	}

	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	if req.Email != nil {
		current := ""
		if customer.Email != nil {
			current = *customer.Email
		}
		if !strings.EqualFold(*req.Email, current) {
			taken, err := customerEmailTaken(*req.Email, customer.ID)
			if err != nil {
				httputil.Internal(c, err)
				return
			}
			if taken {
				httputil.Conflict(c, "customer with this email already exists")
				return
			}
		}
		customer.Email = req.Email
	}
	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.State != nil {
		customer.State = *req.State
	}
	if req.ZipCode != nil {
		customer.ZipCode = *req.ZipCode
	}

	if err := database.DB.Save(&customer).Error; err != nil {
		httputil.Internal(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "customer", customer.ID, "update",
		"updated customer "+customer.FirstName+" "+customer.LastName)

	c.JSON(http.StatusOK, gin.H{
		"message":  "customer updated successfully",
		"customer": customer,
	})
}

// DeleteCustomer removes the customer together with its vehicles and
// their estimates in one transaction, so no orphan rows survive.
func DeleteCustomer(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		httputil.BadRequest(c, "invalid customer id")
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, id).Error; err != nil {
		httputil.NotFound(c, "customer not found")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteEstimatesWhere(tx, "customer_id = ?", id); err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.Vehicle{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Customer{}, id).Error
	})
	if err != nil {
		httputil.Internal(c, err)
		return
	}

	database.CreateAuditLog(currentUserID(c), "customer", id, "delete",
		"deleted customer "+customer.FirstName+" "+customer.LastName)

	c.JSON(http.StatusOK, gin.H{"message": "customer deleted successfully"})
}

func customerEmailTaken(email string, excludeID uint) (bool, error) {
	q := database.DB.Model(&models.Customer{}).Where("LOWER(email) = LOWER(?)", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
