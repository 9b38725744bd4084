package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds all application configuration.
// Values come from an optional YAML file, overridden by environment variables.
type Config struct {
	ServerAddr string `yaml:"server_addr" env:"SERVER_ADDR" env-default:":8080"`

	// DataFile is the JSON document holding the profile and projects
	DataFile string `yaml:"data_file" env:"PORTFOLIO_DATA_FILE" env-default:"data.json"`

	// StaticDir is served under StaticPrefix
	StaticDir    string `yaml:"static_dir" env:"PORTFOLIO_STATIC_DIR" env-default:"static"`
	StaticPrefix string `yaml:"static_prefix" env:"PORTFOLIO_STATIC_PREFIX" env-default:"/static"`

	// UploadDir receives uploaded project images; UploadURL is the path they are served at
	UploadDir   string `yaml:"upload_dir" env:"PORTFOLIO_UPLOAD_DIR" env-default:"static/project_images"`
	UploadURL   string `yaml:"upload_url" env:"PORTFOLIO_UPLOAD_URL" env-default:"/static/project_images"`
	MaxUploadMB int64  `yaml:"max_upload_mb" env:"PORTFOLIO_MAX_UPLOAD_MB" env-default:"16"`

	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
}

// Load reads configuration from path (if it exists) with environment variable overrides.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", path, err)
			}
			return cfg, cfg.Validate()
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return errors.New("data_file is required")
	}
	if c.UploadDir == "" {
		return errors.New("upload_dir is required")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("invalid log_format %q: must be json or console", c.LogFormat)
	}
	return nil
}

// MaxUploadBytes returns the request body limit for project forms
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
