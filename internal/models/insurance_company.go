package models

import "time"

type InsuranceCompany struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	ContactPerson string    `gorm:"size:100" json:"contact_person,omitempty"`
	Phone         string    `gorm:"size:20" json:"phone,omitempty"`
	Email         string    `gorm:"size:120" json:"email,omitempty"`
	Address       string    `gorm:"size:200" json:"address,omitempty"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
