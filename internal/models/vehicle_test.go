package models

import "testing"

func TestValidateVIN(t *testing.T) {
	tests := []struct {
		name    string
		vin     string
		wantErr bool
	}{
		{"valid", "1HGCM82633A123456", false},
		{"valid lowercase", "1hgcm82633a123456", false},
		{"too short", "1HGCM82633A12345", true},
		{"too long", "1HGCM82633A1234567", true},
		{"empty", "", true},
		{"contains I", "IHGCM82633A123456", true},
		{"contains O", "1HGCM82633A12345O", true},
		{"contains Q", "1HGCM8Q633A123456", true},
		{"contains symbol", "1HGCM82633A12345-", true},
		{"contains space", "1HGCM82633A 23456", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVIN(tt.vin)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVIN(%q) = %v, wantErr %v", tt.vin, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeVIN(t *testing.T) {
	if got := NormalizeVIN(" 1hgcm82633a123456 "); got != "1HGCM82633A123456" {
		t.Errorf("NormalizeVIN = %q", got)
	}
}
