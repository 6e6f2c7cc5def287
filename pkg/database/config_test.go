package database_test

import (
	"os"
	"strings"
	"testing"

	"github.com/JaimeStill/ems-backend/pkg/database"
)

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := &database.Config{Name: "ems", User: "ems"}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Host", cfg.Host, "localhost"},
		{"Port", cfg.Port, 5432},
		{"MaxOpenConns", cfg.MaxOpenConns, 25},
		{"MaxIdleConns", cfg.MaxIdleConns, 5},
		{"ConnMaxLifetime", cfg.ConnMaxLifetime, "15m"},
		{"ConnTimeout", cfg.ConnTimeout, "5s"},
		{"SSLMode", cfg.SSLMode, "disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestConfig_Finalize_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  database.Config
	}{
		{"missing name", database.Config{User: "ems"}},
		{"missing user", database.Config{Name: "ems"}},
		{"bad lifetime", database.Config{Name: "ems", User: "ems", ConnMaxLifetime: "forever"}},
		{"bad timeout", database.Config{Name: "ems", User: "ems", ConnTimeout: "soon"}},
		{"bad ssl mode", database.Config{Name: "ems", User: "ems", SSLMode: "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("Finalize() expected error")
			}
		})
	}
}

func TestConfig_Finalize_EnvOverrides(t *testing.T) {
	os.Setenv("TEST_DB_HOST", "db.internal")
	os.Setenv("TEST_DB_PORT", "6543")
	os.Setenv("TEST_DB_SSL_MODE", "require")
	defer func() {
		os.Unsetenv("TEST_DB_HOST")
		os.Unsetenv("TEST_DB_PORT")
		os.Unsetenv("TEST_DB_SSL_MODE")
	}()

	cfg := &database.Config{Name: "ems", User: "ems"}
	err := cfg.Finalize(&database.Env{
		Host:    "TEST_DB_HOST",
		Port:    "TEST_DB_PORT",
		SSLMode: "TEST_DB_SSL_MODE",
	})
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Host != "db.internal" || cfg.Port != 6543 || cfg.SSLMode != "require" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := &database.Config{Host: "localhost", Name: "ems", User: "ems"}
	cfg.Merge(&database.Config{Host: "db", Password: "secret"})

	if cfg.Host != "db" || cfg.Password != "secret" || cfg.Name != "ems" {
		t.Errorf("Merge() = %+v", cfg)
	}
}

func TestConfig_Dsn(t *testing.T) {
	cfg := &database.Config{Name: "ems", User: "ems", Password: "pw"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	dsn := cfg.Dsn()
	for _, want := range []string{"host=localhost", "port=5432", "dbname=ems", "user=ems", "password=pw", "sslmode=disable"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("Dsn() = %q, missing %q", dsn, want)
		}
	}
}

func TestErrNotReady(t *testing.T) {
	if database.ErrNotReady.Error() != "database not ready" {
		t.Errorf("ErrNotReady = %q", database.ErrNotReady.Error())
	}
}
