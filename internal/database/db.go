package database

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"autoshop-erp/internal/auth"
	"autoshop-erp/internal/config"
	"autoshop-erp/internal/models"
	"autoshop-erp/internal/rbac"
)

var DB *gorm.DB

// Init connects to Postgres, runs migrations and seeds the reference
// data. It is fatal on failure; the server cannot run without a store.
func Init(cfg *config.Config) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		logrus.Infof("connecting to database (attempt %d/%d)", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
		if err == nil {
			break
		}

		logrus.WithError(err).Warn("database connection failed")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		logrus.Fatalf("failed to connect to database after %d attempts: %v", maxAttempts, err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		logrus.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logrus.Info("database connection established")

	if err := Migrate(); err != nil {
		logrus.Fatalf("failed to migrate: %v", err)
	}
	if err := Seed(cfg); err != nil {
		logrus.Fatalf("failed to seed: %v", err)
	}
}

// Migrate runs AutoMigrate for every model.
func Migrate() error {
	return DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Customer{},
		&models.Vehicle{},
		&models.InsuranceCompany{},
		&models.Estimate{},
		&models.EstimatePart{},
		&models.EstimateLabour{},
		&models.AuditLog{},
	)
}

// Seed inserts the five fixed roles and a default admin account when
// they are missing. Safe to run on every startup.
func Seed(cfg *config.Config) error {
	if err := seedRoles(); err != nil {
		return err
	}
	return seedDefaultAdmin(cfg)
}

var roleDescriptions = map[rbac.Role]string{
	rbac.RoleAdmin:        "System administrator with full access",
	rbac.RoleManager:      "Manager with most permissions",
	rbac.RoleReceptionist: "Front desk staff handling customers",
	rbac.RoleTechnician:   "Technician performing vehicle services",
	rbac.RoleAccountant:   "Financial staff handling accounting",
}

func seedRoles() error {
	for _, name := range rbac.Roles() {
		role := models.Role{Name: string(name), Description: roleDescriptions[name]}
		err := DB.Where("name = ?", role.Name).FirstOrCreate(&role).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func seedDefaultAdmin(cfg *config.Config) error {
	var adminRole models.Role
	if err := DB.Where("name = ?", string(rbac.RoleAdmin)).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("role_id = ?", adminRole.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		FirstName:    "System",
		LastName:     "Administrator",
		IsActive:     true,
		RoleID:       adminRole.ID,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	logrus.WithField("username", admin.Username).Info("created default admin user")
	return nil
}
