package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig system configuration
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig web server configuration
type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

// DBConfig database configuration.
// Type is one of bolt, mongodb, postgres, sqlite.
type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	URI      string `yaml:"uri" json:"uri"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Timeout  int    `yaml:"timeout" json:"timeout"` // seconds
	Debug    bool   `yaml:"debug" json:"debug"`
}

// AdminConfig admin gate configuration
type AdminConfig struct {
	Passphrase     string `yaml:"passphrase" json:"-"`
	PassphraseHash string `yaml:"passphrase_hash" json:"-"`
	SessionMaxAge  int    `yaml:"session_max_age" json:"session_max_age"` // seconds
	TokenTTL       int    `yaml:"token_ttl" json:"token_ttl"`             // seconds
}

// MediaConfig image storage configuration.
// Backend is disk (durable local directory) or inline (data: references, for ephemeral hosts).
type MediaConfig struct {
	Backend     string `yaml:"backend" json:"backend"`
	Dir         string `yaml:"dir" json:"dir"`
	MaxUploadMB int    `yaml:"max_upload_mb" json:"max_upload_mb"`
}

// LogConfig logging configuration
type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig   `yaml:"system" json:"system"`
	Web      WebConfig   `yaml:"web" json:"web"`
	Database DBConfig    `yaml:"database" json:"database"`
	Admin    AdminConfig `yaml:"admin" json:"admin"`
	Media    MediaConfig `yaml:"media" json:"media"`
	Logger   LogConfig   `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetMediaDir() string {
	if c.Media.Dir != "" {
		return c.Media.Dir
	}
	return path.Join(c.System.Workdir, "uploads")
}

func (c *AppConfig) GetMetricsDir() string {
	return path.Join(c.GetDataDir(), "metrics")
}

// InitDirs creates the working directories
func (c *AppConfig) InitDirs() error {
	for _, dir := range []string{c.GetDataDir(), c.GetLogDir(), c.GetMetricsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if c.Media.Backend == "disk" {
		if err := os.MkdirAll(c.GetMediaDir(), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", c.GetMediaDir(), err)
		}
	}
	return nil
}

// MinSecretLength is the shortest web.secret accepted for signing sessions and tokens
const MinSecretLength = 16

// EnsureSecret fills an empty web.secret with random bytes. Sessions and
// tokens signed with a generated secret do not survive a restart.
func (c *AppConfig) EnsureSecret() (generated bool, err error) {
	if c.Web.Secret != "" {
		return false, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return false, fmt.Errorf("generate web.secret: %w", err)
	}
	c.Web.Secret = hex.EncodeToString(buf)
	return true, nil
}

// Validate checks the values that have no usable default
func (c *AppConfig) Validate() error {
	if c.Admin.Passphrase == "" && c.Admin.PassphraseHash == "" {
		return fmt.Errorf("admin.passphrase or admin.passphrase_hash is required")
	}
	if c.Web.Secret != "" && len(c.Web.Secret) < MinSecretLength {
		return fmt.Errorf("web.secret must be at least %d characters", MinSecretLength)
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return fmt.Errorf("invalid web.port %d", c.Web.Port)
	}
	switch c.Database.Type {
	case "bolt", "mongodb", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database.type %q", c.Database.Type)
	}
	switch c.Media.Backend {
	case "disk", "inline":
	default:
		return fmt.Errorf("unsupported media.backend %q", c.Media.Backend)
	}
	if c.Database.Type == "mongodb" && c.Database.URI == "" {
		return fmt.Errorf("database.uri is required for mongodb")
	}
	return nil
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "Storefront",
		Location: "Asia/Kolkata",
		Workdir:  "/var/storefront",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   3000,
		Secret: "",
	},
	Database: DBConfig{
		Type:     "bolt",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "storefront",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  20,
		IdleConn: 5,
		Timeout:  10,
		Debug:    false,
	},
	Admin: AdminConfig{
		SessionMaxAge: 86400,
		TokenTTL:      43200,
	},
	Media: MediaConfig{
		Backend:     "disk",
		MaxUploadMB: 8,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/storefront/storefront.log",
	},
}

// LoadConfig reads the yaml file (if any), then applies .env and STOREFRONT_* overrides
func LoadConfig(cfile string) *AppConfig {
	// .env is optional
	_ = godotenv.Load()

	if cfile == "" {
		cfile = "storefront.yml"
	}
	if !fileExists(cfile) {
		cfile = "/etc/storefront.yml"
	}
	cfg := *DefaultAppConfig
	if fileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err != nil {
			panic(err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			panic(err)
		}
	}
	cfg.applyEnvOverrides()
	return &cfg
}

func (c *AppConfig) applyEnvOverrides() {
	setEnvValue("STOREFRONT_SYSTEM_WORKER_DIR", &c.System.Workdir)
	setEnvValue("STOREFRONT_SYSTEM_LOCATION", &c.System.Location)
	setEnvBoolValue("STOREFRONT_SYSTEM_DEBUG", &c.System.Debug)

	setEnvValue("STOREFRONT_WEB_HOST", &c.Web.Host)
	setEnvIntValue("STOREFRONT_WEB_PORT", &c.Web.Port)
	setEnvValue("STOREFRONT_WEB_SECRET", &c.Web.Secret)

	setEnvValue("STOREFRONT_DB_TYPE", &c.Database.Type)
	setEnvValue("STOREFRONT_DB_URI", &c.Database.URI)
	setEnvValue("STOREFRONT_DB_HOST", &c.Database.Host)
	setEnvIntValue("STOREFRONT_DB_PORT", &c.Database.Port)
	setEnvValue("STOREFRONT_DB_NAME", &c.Database.Name)
	setEnvValue("STOREFRONT_DB_USER", &c.Database.User)
	setEnvValue("STOREFRONT_DB_PWD", &c.Database.Passwd)
	setEnvBoolValue("STOREFRONT_DB_DEBUG", &c.Database.Debug)

	setEnvValue("STOREFRONT_ADMIN_PASSPHRASE", &c.Admin.Passphrase)
	setEnvValue("STOREFRONT_ADMIN_PASSPHRASE_HASH", &c.Admin.PassphraseHash)

	setEnvValue("STOREFRONT_MEDIA_BACKEND", &c.Media.Backend)
	setEnvValue("STOREFRONT_MEDIA_DIR", &c.Media.Dir)
	setEnvIntValue("STOREFRONT_MEDIA_MAX_UPLOAD_MB", &c.Media.MaxUploadMB)

	setEnvValue("STOREFRONT_LOGGER_MODE", &c.Logger.Mode)
	setEnvBoolValue("STOREFRONT_LOGGER_FILE_ENABLE", &c.Logger.FileEnable)
	setEnvValue("STOREFRONT_LOGGER_FILENAME", &c.Logger.Filename)
}

func setEnvValue(name string, val *string) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = cast.ToBool(strings.ToLower(evalue))
	}
}

func setEnvIntValue(name string, val *int) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	if p, err := cast.ToIntE(evalue); err == nil {
		*val = p
	}
}

func fileExists(file string) bool {
	info, err := os.Stat(file)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
