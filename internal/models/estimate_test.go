package models

import "testing"

func TestRecalculateTotals(t *testing.T) {
	e := &Estimate{}
	parts := []EstimatePart{
		{Quantity: 2, UnitPrice: 250, TotalPrice: 500},
		{Quantity: 4, UnitPrice: 150, TotalPrice: 600},
	}
	labour := []EstimateLabour{
		{Hours: 5, HourlyRate: 125, TotalCost: 625},
	}

	e.RecalculateTotals(parts, labour)

	if e.PartsTotal != 1100 {
		t.Errorf("parts total = %.2f, want 1100.00", e.PartsTotal)
	}
	if e.LabourTotal != 625 {
		t.Errorf("labour total = %.2f, want 625.00", e.LabourTotal)
	}
	if e.TaxAmount != 172.50 {
		t.Errorf("tax = %.2f, want 172.50", e.TaxAmount)
	}
	if e.GrandTotal != 1897.50 {
		t.Errorf("grand total = %.2f, want 1897.50", e.GrandTotal)
	}
}

func TestRecalculateTotalsEmpty(t *testing.T) {
	e := &Estimate{PartsTotal: 99, LabourTotal: 99, TaxAmount: 99, GrandTotal: 99}
	e.RecalculateTotals(nil, nil)

	if e.PartsTotal != 0 || e.LabourTotal != 0 || e.TaxAmount != 0 || e.GrandTotal != 0 {
		t.Errorf("totals = %.2f/%.2f/%.2f/%.2f, want all zero",
			e.PartsTotal, e.LabourTotal, e.TaxAmount, e.GrandTotal)
	}
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{12.344, 12.34},
		{12.346, 12.35},
		{172.499999, 172.5},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RoundCents(tt.in); got != tt.want {
			t.Errorf("RoundCents(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
