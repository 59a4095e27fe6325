package models

import (
	"fmt"
	"strings"
	"time"
)

type Vehicle struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CustomerID   uint      `gorm:"not null;index" json:"customer_id"`
	Customer     *Customer `json:"owner,omitempty"`
	Make         string    `gorm:"size:50;not null" json:"make"`
	Model        string    `gorm:"size:50;not null" json:"model"`
	Year         int       `gorm:"not null" json:"year"`
	Color        string    `gorm:"size:30" json:"color,omitempty"`
	VIN          *string   `gorm:"column:vin;size:17;uniqueIndex" json:"vin,omitempty"`
	LicensePlate string    `gorm:"size:15" json:"license_plate,omitempty"`
	Mileage      int       `json:"mileage,omitempty"`
	EngineType   string    `gorm:"size:30" json:"engine_type,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const vinLength = 17

// ValidateVIN checks the standard VIN format: exactly 17 alphanumeric
// characters, excluding I, O and Q. Case-insensitive.
func ValidateVIN(vin string) error {
	if len(vin) != vinLength {
		return fmt.Errorf("VIN must be exactly %d characters", vinLength)
	}
	for _, r := range strings.ToUpper(vin) {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'Z':
			if r == 'I' || r == 'O' || r == 'Q' {
				return fmt.Errorf("VIN must not contain the letter %c", r)
			}
		default:
			return fmt.Errorf("VIN contains invalid character %q", r)
		}
	}
	return nil
}

// NormalizeVIN uppercases a VIN for storage and comparison.
func NormalizeVIN(vin string) string {
	return strings.ToUpper(strings.TrimSpace(vin))
}
