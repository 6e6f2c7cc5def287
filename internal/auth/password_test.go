package auth_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/ems-backend/internal/auth"
)

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !auth.CheckPassword(hash, "correct horse") {
		t.Error("CheckPassword() = false for the original password")
	}
	if auth.CheckPassword(hash, "battery staple") {
		t.Error("CheckPassword() = true for a different password")
	}
}

func TestHashPassword_TooShort(t *testing.T) {
	if _, err := auth.HashPassword("short"); !errors.Is(err, auth.ErrWeakPassword) {
		t.Errorf("HashPassword() error = %v, want ErrWeakPassword", err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Ops@Example.com", "ops@example.com", false},
		{"  admin@site.io ", "admin@site.io", false},
		{"not-an-email", "", true},
		{"Name <name@example.com>", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := auth.NormalizeEmail(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeEmail(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{auth.ErrNotFound, 404},
		{auth.ErrDuplicate, 409},
		{auth.ErrInvalidEmail, 400},
		{auth.ErrWeakPassword, 400},
		{auth.ErrInvalidCredentials, 401},
		{auth.ErrInvalidToken, 401},
		{errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := auth.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
