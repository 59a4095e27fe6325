package models

import (
	"math"
	"time"
)

type EstimateStatus string

const (
	EstimateStatusPending  EstimateStatus = "pending"
	EstimateStatusApproved EstimateStatus = "approved"
	EstimateStatusRejected EstimateStatus = "rejected"
)

// EstimateTaxRate is applied to the parts + labour subtotal.
const EstimateTaxRate = 0.10

type Estimate struct {
	ID                      uint              `gorm:"primaryKey" json:"id"`
	EstimateNumber          string            `gorm:"size:20;uniqueIndex;not null" json:"estimate_number"`
	CustomerID              uint              `gorm:"not null;index" json:"customer_id"`
	Customer                *Customer         `json:"customer,omitempty"`
	VehicleID               uint              `gorm:"not null;index" json:"vehicle_id"`
	Vehicle                 *Vehicle          `json:"vehicle,omitempty"`
	InsuranceCompanyID      *uint             `json:"insurance_company_id,omitempty"`
	InsuranceCompany        *InsuranceCompany `json:"insurance_company,omitempty"`
	InsuranceClaimNumber    string            `gorm:"size:50" json:"insurance_claim_number,omitempty"`
	IsInsuranceClaim        bool              `json:"is_insurance_claim"`
	Description             string            `gorm:"type:text" json:"description,omitempty"`
	Status                  EstimateStatus    `gorm:"size:20;not null;default:pending" json:"status"`
	EstimatedCompletionDate *time.Time        `json:"estimated_completion_date,omitempty"`

	PartsTotal  float64 `json:"parts_total"`
	LabourTotal float64 `json:"labour_total"`
	TaxAmount   float64 `json:"tax_amount"`
	GrandTotal  float64 `json:"grand_total"`

	CreatedBy       uint       `gorm:"not null" json:"created_by"`
	ApprovedBy      *uint      `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`

	Parts  []EstimatePart   `json:"parts,omitempty"`
	Labour []EstimateLabour `json:"labour,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EstimatePart struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EstimateID uint      `gorm:"not null;index" json:"estimate_id"`
	PartName   string    `gorm:"size:100;not null" json:"part_name"`
	PartNumber string    `gorm:"size:50" json:"part_number,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  float64   `gorm:"not null" json:"unit_price"`
	TotalPrice float64   `gorm:"not null" json:"total_price"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type EstimateLabour struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EstimateID  uint      `gorm:"not null;index" json:"estimate_id"`
	Description string    `gorm:"size:200;not null" json:"description"`
	Hours       float64   `gorm:"not null" json:"hours"`
	HourlyRate  float64   `gorm:"not null" json:"hourly_rate"`
	TotalCost   float64   `gorm:"not null" json:"total_cost"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RecalculateTotals recomputes the subtotal, tax and grand total from the
// given line items. Amounts are rounded to cents.
func (e *Estimate) RecalculateTotals(parts []EstimatePart, labour []EstimateLabour) {
	var partsTotal, labourTotal float64
	for _, p := range parts {
		partsTotal += p.TotalPrice
	}
	for _, l := range labour {
		labourTotal += l.TotalCost
	}
	e.PartsTotal = RoundCents(partsTotal)
	e.LabourTotal = RoundCents(labourTotal)
	e.TaxAmount = RoundCents((partsTotal + labourTotal) * EstimateTaxRate)
	e.GrandTotal = RoundCents(e.PartsTotal + e.LabourTotal + e.TaxAmount)
}

// RoundCents rounds a currency amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
