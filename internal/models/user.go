package models

import "time"

// User accounts are never hard-deleted; deactivate via IsActive instead.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:80;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string    `gorm:"size:256;not null" json:"-"`
	FirstName    string    `gorm:"size:50;not null" json:"first_name"`
	LastName     string    `gorm:"size:50;not null" json:"last_name"`
	Phone        string    `gorm:"size:20" json:"phone,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	RoleID       uint      `gorm:"not null" json:"role_id"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
