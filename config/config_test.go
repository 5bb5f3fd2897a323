package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "storefront.yml")
	require.NoError(t, os.WriteFile(file, []byte(body), 0o600))
	return file
}

func TestLoadConfig_FileValues(t *testing.T) {
	file := writeConfig(t, `
system:
  workdir: /tmp/sf
web:
  port: 8088
database:
  type: mongodb
  uri: mongodb://localhost:27017
admin:
  passphrase: open-sesame
media:
  backend: inline
`)
	cfg := LoadConfig(file)

	assert.Equal(t, "/tmp/sf", cfg.System.Workdir)
	assert.Equal(t, 8088, cfg.Web.Port)
	assert.Equal(t, "mongodb", cfg.Database.Type)
	assert.Equal(t, "inline", cfg.Media.Backend)
	// untouched sections keep defaults
	assert.Equal(t, 8, cfg.Media.MaxUploadMB)
	assert.Equal(t, "/tmp/sf/data", cfg.GetDataDir())
	assert.Equal(t, "/tmp/sf/uploads", cfg.GetMediaDir())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	file := writeConfig(t, "web:\n  port: 8088\n")
	t.Setenv("STOREFRONT_WEB_PORT", "9090")
	t.Setenv("STOREFRONT_DB_TYPE", "sqlite")
	t.Setenv("STOREFRONT_LOGGER_FILE_ENABLE", "false")
	t.Setenv("STOREFRONT_MEDIA_MAX_UPLOAD_MB", "not-a-number")

	cfg := LoadConfig(file)

	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.False(t, cfg.Logger.FileEnable)
	assert.Equal(t, 8, cfg.Media.MaxUploadMB)
}

func TestLoadConfig_DoesNotMutateDefaults(t *testing.T) {
	file := writeConfig(t, "web:\n  port: 7000\n")
	_ = LoadConfig(file)
	assert.Equal(t, 3000, DefaultAppConfig.Web.Port)
}

func TestAppConfig_Validate(t *testing.T) {
	valid := func() *AppConfig {
		cfg := *DefaultAppConfig
		cfg.Admin.Passphrase = "secret"
		return &cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *AppConfig) {}},
		{name: "hash only", mutate: func(c *AppConfig) { c.Admin.Passphrase = ""; c.Admin.PassphraseHash = "$2a$10$x" }},
		{name: "missing passphrase", mutate: func(c *AppConfig) { c.Admin.Passphrase = "" }, wantErr: true},
		{name: "short secret", mutate: func(c *AppConfig) { c.Web.Secret = "change-me" }, wantErr: true},
		{name: "long secret", mutate: func(c *AppConfig) { c.Web.Secret = "0123456789abcdef0123" }},
		{name: "invalid port", mutate: func(c *AppConfig) { c.Web.Port = 70000 }, wantErr: true},
		{name: "unknown database", mutate: func(c *AppConfig) { c.Database.Type = "redis" }, wantErr: true},
		{name: "unknown media backend", mutate: func(c *AppConfig) { c.Media.Backend = "s3" }, wantErr: true},
		{name: "mongodb without uri", mutate: func(c *AppConfig) { c.Database.Type = "mongodb" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppConfig_EnsureSecret(t *testing.T) {
	assert.Empty(t, DefaultAppConfig.Web.Secret, "no signing secret ships with the defaults")

	cfg := *DefaultAppConfig
	generated, err := cfg.EnsureSecret()
	require.NoError(t, err)
	assert.True(t, generated)
	assert.Len(t, cfg.Web.Secret, 64)
	cfg.Admin.Passphrase = "x"
	assert.NoError(t, cfg.Validate())

	other := *DefaultAppConfig
	_, err = other.EnsureSecret()
	require.NoError(t, err)
	assert.NotEqual(t, cfg.Web.Secret, other.Web.Secret)

	kept := cfg.Web.Secret
	generated, err = cfg.EnsureSecret()
	require.NoError(t, err)
	assert.False(t, generated)
	assert.Equal(t, kept, cfg.Web.Secret)
}
