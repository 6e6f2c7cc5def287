package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/ems-backend/internal/config"
)

const baseConfig = `
version = "1.2.3"

[database]
name = "ems"
user = "ems"

[auth]
secret = "0123456789abcdef0123456789abcdef"

[stream]
pong_timeout = "20s"
`

func writeConfig(t *testing.T, files map[string]string) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	t.Chdir(dir)
}

func TestLoad_Defaults(t *testing.T) {
	writeConfig(t, map[string]string{config.BaseConfigFile: baseConfig})

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Version != "1.2.3" {
		t.Errorf("Version = %q, want 1.2.3", cfg.Version)
	}
	if cfg.Server.Addr() != "0.0.0.0:8000" {
		t.Errorf("Addr = %q", cfg.Server.Addr())
	}
	if cfg.API.BasePath != "/api/v1" {
		t.Errorf("BasePath = %q, want /api/v1", cfg.API.BasePath)
	}
	if cfg.API.MaxBodySizeBytes() != 1000000 {
		t.Errorf("MaxBodySizeBytes = %d, want 1000000", cfg.API.MaxBodySizeBytes())
	}
	if cfg.Auth.TokenTTLDuration() != 30*time.Minute {
		t.Errorf("TokenTTL = %v, want 30m", cfg.Auth.TokenTTLDuration())
	}
	if cfg.Assistant.Enabled {
		t.Error("assistant enabled by default")
	}
	if cfg.Stream.PongTimeoutDuration() != 20*time.Second {
		t.Errorf("PongTimeout = %v, want 20s", cfg.Stream.PongTimeoutDuration())
	}
	if cfg.Stream.PingIntervalDuration() != 18*time.Second {
		t.Errorf("PingInterval = %v, want 18s", cfg.Stream.PingIntervalDuration())
	}
	if cfg.Stream.BufferSize != 16 {
		t.Errorf("BufferSize = %d, want 16", cfg.Stream.BufferSize)
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoad_Overlay(t *testing.T) {
	writeConfig(t, map[string]string{
		config.BaseConfigFile: baseConfig,
		"config.staging.toml": `
[server]
port = 9000

[assistant]
enabled = true
config_file = "agent.json"
`,
	})
	t.Setenv(config.EnvServiceEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if !cfg.Assistant.Enabled || cfg.Assistant.ConfigFile != "agent.json" {
		t.Errorf("Assistant = %+v", cfg.Assistant)
	}
	if cfg.Version != "1.2.3" {
		t.Errorf("Version = %q, base value lost", cfg.Version)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	writeConfig(t, map[string]string{config.BaseConfigFile: baseConfig})

	t.Setenv(config.EnvAPIBasePath, "/ems")
	t.Setenv(config.EnvStreamBufferSize, "64")
	t.Setenv(config.EnvAuthTokenTTL, "2h")
	t.Setenv(config.EnvServiceVersion, "9.9.9")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BasePath != "/ems" {
		t.Errorf("BasePath = %q, want /ems", cfg.API.BasePath)
	}
	if cfg.Stream.BufferSize != 64 {
		t.Errorf("BufferSize = %d, want 64", cfg.Stream.BufferSize)
	}
	if cfg.Auth.TokenTTLDuration() != 2*time.Hour {
		t.Errorf("TokenTTL = %v, want 2h", cfg.Auth.TokenTTLDuration())
	}
	if cfg.Version != "9.9.9" {
		t.Errorf("Version = %q, want 9.9.9", cfg.Version)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "short secret",
			content: strings.Replace(baseConfig, "0123456789abcdef0123456789abcdef", "short", 1),
			want:    "auth",
		},
		{
			name:    "malformed base path",
			content: baseConfig + "\n[api]\nbase_path = \"api/\"\n",
			want:    "api",
		},
		{
			name:    "assistant without config file",
			content: baseConfig + "\n[assistant]\nenabled = true\n",
			want:    "assistant",
		},
		{
			name:    "non-positive pong timeout",
			content: strings.Replace(baseConfig, `pong_timeout = "20s"`, `pong_timeout = "0s"`, 1),
			want:    "stream",
		},
		{
			name:    "s3 without bucket",
			content: baseConfig + "\n[storage]\nbackend = \"s3\"\n",
			want:    "storage",
		},
		{
			name:    "unknown storage backend",
			content: baseConfig + "\n[storage]\nbackend = \"tape\"\n",
			want:    "storage",
		},
		{
			name:    "missing database name",
			content: strings.Replace(baseConfig, `name = "ems"`, "", 1),
			want:    "database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, map[string]string{config.BaseConfigFile: tt.content})

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := config.Load(); err == nil {
		t.Error("expected error when config.toml is missing")
	}
}
