package handler

import (
	"testing"

	"padel-api/internal/domain"
	"padel-api/pkg/errors"
)

func TestValidateRegisterRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        *domain.RegisterRequest
		wantErr    bool
		wantFields []string
	}{
		{
			name: "valid request",
			req: &domain.RegisterRequest{
				Name:     "Somchai",
				Email:    "somchai@example.com",
				Password: "password123",
			},
			wantErr: false,
		},
		{
			name: "missing name",
			req: &domain.RegisterRequest{
				Email:    "somchai@example.com",
				Password: "password123",
			},
			wantErr:    true,
			wantFields: []string{"name"},
		},
		{
			name: "missing email",
			req: &domain.RegisterRequest{
				Name:     "Somchai",
				Password: "password123",
			},
			wantErr:    true,
			wantFields: []string{"email"},
		},
		{
			name: "malformed email",
			req: &domain.RegisterRequest{
				Name:     "Somchai",
				Email:    "not-an-email",
				Password: "password123",
			},
			wantErr:    true,
			wantFields: []string{"email"},
		},
		{
			name: "password too short",
			req: &domain.RegisterRequest{
				Name:     "Somchai",
				Email:    "somchai@example.com",
				Password: "short",
			},
			wantErr:    true,
			wantFields: []string{"password"},
		},
		{
			name:       "everything missing reported together",
			req:        &domain.RegisterRequest{},
			wantErr:    true,
			wantFields: []string{"name", "email", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRegisterRequest(tt.req)

			if !tt.wantErr {
				if err != nil {
					t.Errorf("validateRegisterRequest() returned error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("validateRegisterRequest() returned nil, want error")
			}

			appErr, ok := err.(*errors.AppError)
			if !ok {
				t.Fatalf("expected *errors.AppError, got %T", err)
			}
			if appErr.Type != errors.ErrorTypeValidation {
				t.Errorf("error type = %s, want validation", appErr.Type)
			}
			for _, field := range tt.wantFields {
				if _, present := appErr.Details[field]; !present {
					t.Errorf("missing detail for field %q: %v", field, appErr.Details)
				}
			}
		})
	}
}
