package models

import "time"

type Customer struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	FirstName string  `gorm:"size:50;not null" json:"first_name"`
	LastName  string  `gorm:"size:50;not null" json:"last_name"`
	Email     *string `gorm:"size:120;uniqueIndex" json:"email,omitempty"`
	Phone     string  `gorm:"size:20;not null" json:"phone"`
	Address   string  `gorm:"size:200" json:"address,omitempty"`
	City      string  `gorm:"size:50" json:"city,omitempty"`
	State     string  `gorm:"size:50" json:"state,omitempty"`
	ZipCode   string  `gorm:"size:10" json:"zip_code,omitempty"`

	Vehicles []Vehicle `json:"vehicles,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
