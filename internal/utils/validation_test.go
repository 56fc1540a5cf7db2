package utils

import (
	"strings"
	"testing"
)

type registerShape struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"omitempty,oneof=patient doctor admin"`
}

func TestValidate_RegisterShape(t *testing.T) {
	tests := []struct {
		name    string
		input   registerShape
		wantErr bool
	}{
		{
			name:  "valid",
			input: registerShape{Name: "Ann", Email: "a@b.com", Password: "secret1", Role: "patient"},
		},
		{
			name:  "role optional",
			input: registerShape{Name: "Ann", Email: "a@b.com", Password: "secret1"},
		},
		{
			name:    "bad email",
			input:   registerShape{Name: "Ann", Email: "not-an-email", Password: "secret1"},
			wantErr: true,
		},
		{
			name:    "short password",
			input:   registerShape{Name: "Ann", Email: "a@b.com", Password: "12345"},
			wantErr: true,
		},
		{
			name:    "unknown role",
			input:   registerShape{Name: "Ann", Email: "a@b.com", Password: "secret1", Role: "nurse"},
			wantErr: true,
		},
		{
			name:    "missing name",
			input:   registerShape{Email: "a@b.com", Password: "secret1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	err := Validate(registerShape{Name: "Ann", Email: "bad", Password: "123"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := FormatValidationError(err)
	if !strings.Contains(msg, "valid email") {
		t.Errorf("message %q missing email hint", msg)
	}
	if !strings.Contains(msg, "at least 6 characters") {
		t.Errorf("message %q missing length hint", msg)
	}
}
