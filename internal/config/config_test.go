package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "data.json", cfg.DataFile)
	assert.Equal(t, "static", cfg.StaticDir)
	assert.Equal(t, "/static", cfg.StaticPrefix)
	assert.Equal(t, "static/project_images", cfg.UploadDir)
	assert.Equal(t, "/static/project_images", cfg.UploadURL)
	assert.Equal(t, int64(16), cfg.MaxUploadMB)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("PORTFOLIO_DATA_FILE", "/var/lib/portfolio/data.json")
	t.Setenv("PORTFOLIO_MAX_UPLOAD_MB", "2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ServerAddr)
	assert.Equal(t, "/var/lib/portfolio/data.json", cfg.DataFile)
	assert.Equal(t, int64(2), cfg.MaxUploadMB)
	assert.Equal(t, int64(2<<20), cfg.MaxUploadBytes())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server_addr: \":7000\"\ndata_file: site.json\nlog_format: console\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.ServerAddr)
	assert.Equal(t, "site.json", cfg.DataFile)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "static/project_images", cfg.UploadDir)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_addr: \":7000\"\n"), 0o600))
	t.Setenv("SERVER_ADDR", ":7001")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7001", cfg.ServerAddr)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DataFile:    "data.json",
			UploadDir:   "uploads",
			MaxUploadMB: 1,
			LogLevel:    "info",
			LogFormat:   "json",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing data file", mutate: func(c *Config) { c.DataFile = "" }, wantErr: true},
		{name: "missing upload dir", mutate: func(c *Config) { c.UploadDir = "" }, wantErr: true},
		{name: "zero upload limit", mutate: func(c *Config) { c.MaxUploadMB = 0 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		t.Run(format, func(t *testing.T) {
			c := &Config{LogLevel: "warn", LogFormat: format}
			logger, err := c.NewLogger()
			require.NoError(t, err)
			assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
			assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
		})
	}
}
