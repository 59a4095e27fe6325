package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"autoshop-erp/internal/auth"
	"autoshop-erp/internal/config"
	"autoshop-erp/internal/database"
	"autoshop-erp/internal/models"
	"autoshop-erp/internal/rbac"
	"autoshop-erp/internal/server"
)

const staffPassword = "Password123!"

func testConfig() *config.Config {
	return &config.Config{
		ServerPort:      "8080",
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		AdminUsername:   "admin",
		AdminEmail:      "admin@shop.local",
		AdminPassword:   "Admin123!",
	}
}

// setupServer wires the router against a fresh in-memory SQLite database
// seeded with the five roles, the default admin and one user per staff
// role.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	database.DB = db

	if err := database.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := testConfig()
	if err := database.Seed(cfg); err != nil {
		t.Fatalf("seed: %v", err)
	}
	seedStaff(t)

	return server.NewRouter(cfg)
}

func seedStaff(t *testing.T) {
	t.Helper()

	hash, err := auth.HashPassword(staffPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	staff := []rbac.Role{rbac.RoleManager, rbac.RoleReceptionist, rbac.RoleTechnician, rbac.RoleAccountant}
	for _, name := range staff {
		var role models.Role
		if err := database.DB.Where("name = ?", string(name)).First(&role).Error; err != nil {
			t.Fatalf("load role %s: %v", name, err)
		}
		user := models.User{
			Username:     string(name),
			Email:        string(name) + "@shop.local",
			PasswordHash: hash,
			FirstName:    "Test",
			LastName:     string(name),
			IsActive:     true,
			RoleID:       role.ID,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			t.Fatalf("create user %s: %v", name, err)
		}
	}
}

// doJSON performs a request against the test router and returns the
// recorder.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

type loginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

func login(t *testing.T, r *gin.Engine, username, password string) loginResponse {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", username, w.Code, w.Body.String())
	}

	var resp loginResponse
	decode(t, w, &resp)
	return resp
}

func loginAdmin(t *testing.T, r *gin.Engine) loginResponse {
	return login(t, r, "admin", "Admin123!")
}

// createCustomer is a shorthand used by tests that need an existing row.
func createCustomer(t *testing.T, r *gin.Engine, token string, fields gin.H) uint {
	t.Helper()

	body := gin.H{"first_name": "John", "last_name": "Doe", "phone": "555-0100"}
	for k, v := range fields {
		body[k] = v
	}
	w := doJSON(t, r, http.MethodPost, "/api/customers", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create customer: status %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Customer models.Customer `json:"customer"`
	}
	decode(t, w, &resp)
	return resp.Customer.ID
}

func createVehicle(t *testing.T, r *gin.Engine, token string, customerID uint, fields gin.H) uint {
	t.Helper()

	body := gin.H{"customer_id": customerID, "make": "Honda", "model": "Accord", "year": 2003}
	for k, v := range fields {
		body[k] = v
	}
	w := doJSON(t, r, http.MethodPost, "/api/vehicles", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create vehicle: status %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Vehicle models.Vehicle `json:"vehicle"`
	}
	decode(t, w, &resp)
	return resp.Vehicle.ID
}
