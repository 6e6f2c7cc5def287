package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// EnvAssistantEnabled toggles the language model assistant.
	EnvAssistantEnabled = "ASSISTANT_ENABLED"

	// EnvAssistantConfigFile overrides the path to the agent configuration JSON.
	EnvAssistantConfigFile = "ASSISTANT_CONFIG_FILE"

	// EnvAssistantTimeout overrides the per-request assistant timeout.
	EnvAssistantTimeout = "ASSISTANT_TIMEOUT"
)

// AssistantConfig controls the optional language model assistant used by
// ask-ai and root cause analysis.
type AssistantConfig struct {
	Enabled    bool   `toml:"enabled"`
	ConfigFile string `toml:"config_file"`
	Timeout    string `toml:"timeout"`
}

// TimeoutDuration parses and returns the assistant timeout as a time.Duration.
func (c *AssistantConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

func (c *AssistantConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *AssistantConfig) Merge(overlay *AssistantConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.ConfigFile != "" {
		c.ConfigFile = overlay.ConfigFile
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *AssistantConfig) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
}

func (c *AssistantConfig) loadEnv() {
	if v := os.Getenv(EnvAssistantEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = b
		}
	}
	if v := os.Getenv(EnvAssistantConfigFile); v != "" {
		c.ConfigFile = v
	}
	if v := os.Getenv(EnvAssistantTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *AssistantConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.Enabled && c.ConfigFile == "" {
		return fmt.Errorf("config_file required when enabled")
	}
	return nil
}
