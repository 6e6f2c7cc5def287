package storage

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docker/go-units"
)

const (
	BackendFilesystem = "filesystem"
	BackendS3         = "s3"
)

// Config contains blob storage configuration.
type Config struct {
	// Backend selects the store: "filesystem" (default) or "s3".
	Backend string `toml:"backend"`
	// BasePath is the root directory for filesystem storage. Default: ".data/blobs".
	BasePath string `toml:"base_path"`
	// MaxUploadSize bounds a single blob, in human form such as "10MB".
	MaxUploadSize string `toml:"max_upload_size"`

	S3 S3Config `toml:"s3"`

	maxUploadBytes int64
}

// S3Config addresses an S3-compatible bucket.
type S3Config struct {
	Bucket          string `toml:"bucket"`
	Prefix          string `toml:"prefix"`
	Region          string `toml:"region"`
	Endpoint        string `toml:"endpoint"`
	UsePathStyle    bool   `toml:"use_path_style"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
}

// Env maps environment variable names for storage configuration.
type Env struct {
	Backend       string
	BasePath      string
	MaxUploadSize string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3PathStyle   string
	S3AccessKeyID string
	S3SecretKey   string
}

// MaxUploadSizeBytes returns the parsed size limit. Zero until Finalize succeeds.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadBytes
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	c.S3.merge(&overlay.S3)
}

func (c *S3Config) merge(overlay *S3Config) {
	if overlay.Bucket != "" {
		c.Bucket = overlay.Bucket
	}
	if overlay.Prefix != "" {
		c.Prefix = overlay.Prefix
	}
	if overlay.Region != "" {
		c.Region = overlay.Region
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.UsePathStyle {
		c.UsePathStyle = true
	}
	if overlay.AccessKeyID != "" {
		c.AccessKeyID = overlay.AccessKeyID
	}
	if overlay.SecretAccessKey != "" {
		c.SecretAccessKey = overlay.SecretAccessKey
	}
}

func (c *Config) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFilesystem
	}
	if c.S3.Region == "" {
		c.S3.Region = "us-east-1"
	}
	if c.BasePath == "" {
		c.BasePath = ".data/blobs"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	setString := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	setString(env.Backend, &c.Backend)
	setString(env.S3Bucket, &c.S3.Bucket)
	setString(env.S3Region, &c.S3.Region)
	setString(env.S3Endpoint, &c.S3.Endpoint)
	setString(env.S3AccessKeyID, &c.S3.AccessKeyID)
	setString(env.S3SecretKey, &c.S3.SecretAccessKey)
	if env.S3PathStyle != "" {
		if v, err := strconv.ParseBool(os.Getenv(env.S3PathStyle)); err == nil {
			c.S3.UsePathStyle = v
		}
	}

	if env.BasePath != "" {
		if v := os.Getenv(env.BasePath); v != "" {
			c.BasePath = v
		}
	}
	if env.MaxUploadSize != "" {
		if v := os.Getenv(env.MaxUploadSize); v != "" {
			c.MaxUploadSize = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendFilesystem:
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3 bucket required")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Backend)
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadBytes = size
	return nil
}
