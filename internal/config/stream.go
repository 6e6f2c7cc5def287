package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// EnvStreamWriteTimeout overrides the websocket write deadline.
	EnvStreamWriteTimeout = "STREAM_WRITE_TIMEOUT"

	// EnvStreamPongTimeout overrides how long a client may stay silent.
	EnvStreamPongTimeout = "STREAM_PONG_TIMEOUT"

	// EnvStreamBufferSize overrides the per-client send buffer length.
	EnvStreamBufferSize = "STREAM_BUFFER_SIZE"
)

// StreamConfig contains live telemetry websocket settings.
type StreamConfig struct {
	WriteTimeout string `toml:"write_timeout"`
	PongTimeout  string `toml:"pong_timeout"`
	BufferSize   int    `toml:"buffer_size"`
}

// WriteTimeoutDuration parses and returns the write deadline as a time.Duration.
func (c *StreamConfig) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	return d
}

// PongTimeoutDuration parses and returns the read deadline as a time.Duration.
func (c *StreamConfig) PongTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.PongTimeout)
	return d
}

// PingIntervalDuration returns the ping period, nine tenths of the pong timeout.
func (c *StreamConfig) PingIntervalDuration() time.Duration {
	return c.PongTimeoutDuration() * 9 / 10
}

func (c *StreamConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *StreamConfig) Merge(overlay *StreamConfig) {
	if overlay.WriteTimeout != "" {
		c.WriteTimeout = overlay.WriteTimeout
	}
	if overlay.PongTimeout != "" {
		c.PongTimeout = overlay.PongTimeout
	}
	if overlay.BufferSize != 0 {
		c.BufferSize = overlay.BufferSize
	}
}

func (c *StreamConfig) loadDefaults() {
	if c.WriteTimeout == "" {
		c.WriteTimeout = "10s"
	}
	if c.PongTimeout == "" {
		c.PongTimeout = "60s"
	}
	if c.BufferSize == 0 {
		c.BufferSize = 16
	}
}

func (c *StreamConfig) loadEnv() {
	if v := os.Getenv(EnvStreamWriteTimeout); v != "" {
		c.WriteTimeout = v
	}
	if v := os.Getenv(EnvStreamPongTimeout); v != "" {
		c.PongTimeout = v
	}
	if v := os.Getenv(EnvStreamBufferSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BufferSize = n
		}
	}
}

func (c *StreamConfig) validate() error {
	if _, err := time.ParseDuration(c.WriteTimeout); err != nil {
		return fmt.Errorf("invalid write_timeout: %w", err)
	}
	if d, err := time.ParseDuration(c.PongTimeout); err != nil {
		return fmt.Errorf("invalid pong_timeout: %w", err)
	} else if d <= 0 {
		return fmt.Errorf("pong_timeout must be positive")
	}
	if c.BufferSize < 1 {
		return fmt.Errorf("buffer_size must be at least 1")
	}
	return nil
}
