package validator_test

import (
	"strings"
	"testing"

	"lodge/shared/validator"
)

type stayRequest struct {
	UserID       string  `validate:"required"                  json:"UserId"`
	CheckinDate  string  `validate:"required,calendardate"     json:"CheckinDate"`
	CheckoutDate string  `validate:"required,calendardate"     json:"CheckoutDate"`
	TotalAmount  float64 `validate:"omitempty,gt=0"            json:"TotalAmount"`
	Status       string  `validate:"omitempty,oneof=pending confirmed" json:"Status"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *stayRequest
		expectError bool
	}{
		{
			name: "valid struct",
			data: &stayRequest{
				UserID:       "user-1",
				CheckinDate:  "2025-12-24",
				CheckoutDate: "2025-12-26",
				TotalAmount:  450,
				Status:       "pending",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &stayRequest{
				CheckinDate:  "2025-12-24",
				CheckoutDate: "2025-12-26",
			},
			expectError: true,
		},
		{
			name: "malformed calendar date",
			data: &stayRequest{
				UserID:       "user-1",
				CheckinDate:  "24/12/2025",
				CheckoutDate: "2025-12-26",
			},
			expectError: true,
		},
		{
			name: "negative amount",
			data: &stayRequest{
				UserID:       "user-1",
				CheckinDate:  "2025-12-24",
				CheckoutDate: "2025-12-26",
				TotalAmount:  -1,
			},
			expectError: true,
		},
		{
			name: "status outside the allowed set",
			data: &stayRequest{
				UserID:       "user-1",
				CheckinDate:  "2025-12-24",
				CheckoutDate: "2025-12-26",
				Status:       "parked",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name:        "valid body",
			body:        `{"UserId": "user-1", "CheckinDate": "2025-12-24", "CheckoutDate": "2025-12-26"}`,
			expectError: false,
		},
		{
			name:        "malformed JSON",
			body:        `{"UserId": "user-1",`,
			expectError: true,
		},
		{
			name:        "valid JSON failing validation",
			body:        `{"CheckinDate": "2025-12-24", "CheckoutDate": "2025-12-26"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := stayRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("2025-12-24", "calendardate"); err != nil {
		t.Errorf("expected calendar date to pass, got %v", err)
	}

	if err := validator.ValidateVar("not-a-date", "calendardate"); err == nil {
		t.Error("expected calendar date failure, got nil")
	}
}
