package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to environment overrides, e.g. QUICKINVOICE_LOG_LEVEL
const EnvPrefix = "QUICKINVOICE"

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// Invoice defaults
	Invoice InvoiceConfig `yaml:"invoice" mapstructure:"invoice"`

	// Business profile prefilled into new drafts
	Business BusinessConfig `yaml:"business" mapstructure:"business"`

	// Export settings
	Export ExportConfig `yaml:"export" mapstructure:"export"`

	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // Path to the encrypted SQLite store
}

type InvoiceConfig struct {
	DefaultTemplate string `yaml:"default_template" mapstructure:"default_template"` // classic, modern, minimal, professional, creative
}

type BusinessConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Email   string `yaml:"email" mapstructure:"email"`
	Phone   string `yaml:"phone" mapstructure:"phone"`
	Address string `yaml:"address" mapstructure:"address"`
}

type ExportConfig struct {
	OutputDir     string `yaml:"output_dir" mapstructure:"output_dir"`         // Directory for exported invoices
	DefaultFormat string `yaml:"default_format" mapstructure:"default_format"` // pdf, html or txt
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // trace, debug, info, warn, error
	Env   string `yaml:"env" mapstructure:"env"`     // development -> console output, production -> JSON
	File  string `yaml:"file" mapstructure:"file"`   // Log file used while the TUI owns the terminal
}

type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"` // Listen address for the print preview server
}

// Dir returns ~/.config/quickinvoice
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "quickinvoice")
	}
	return filepath.Join(homeDir, ".config", "quickinvoice")
}

// DefaultConfigPath returns ~/.config/quickinvoice/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := Dir()

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "quickinvoice.db"),
		},
		Invoice: InvoiceConfig{
			DefaultTemplate: "classic",
		},
		Export: ExportConfig{
			OutputDir:     filepath.Join(dir, "invoices"),
			DefaultFormat: "pdf",
		},
		Log: LogConfig{
			Level: "info",
			Env:   "production",
			File:  filepath.Join(dir, "quickinvoice.log"),
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8088",
		},
	}
}

// Load loads config from the given path, or returns defaults if the file doesn't exist.
// QUICKINVOICE_* environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("invoice.default_template", d.Invoice.DefaultTemplate)
	v.SetDefault("business.name", d.Business.Name)
	v.SetDefault("business.email", d.Business.Email)
	v.SetDefault("business.phone", d.Business.Phone)
	v.SetDefault("business.address", d.Business.Address)
	v.SetDefault("export.output_dir", d.Export.OutputDir)
	v.SetDefault("export.default_format", d.Export.DefaultFormat)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.env", d.Log.Env)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("server.addr", d.Server.Addr)
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (database, exports, logs)
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Database.Path),
		c.Export.OutputDir,
	}
	if c.Log.File != "" {
		dirs = append(dirs, filepath.Dir(c.Log.File))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}
