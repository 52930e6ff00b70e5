package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Site     SiteConfig     `toml:"site"`
	Source   SourceConfig   `toml:"source"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Covers   CoversConfig   `toml:"covers"`
	Log      LogConfig      `toml:"log"`
}

// SiteConfig contains the directories and labels used by the site generator.
type SiteConfig struct {
	Title       string `toml:"title"`
	DataDir     string `toml:"data_dir"`
	OutputDir   string `toml:"output_dir"`
	AssetsDir   string `toml:"assets_dir"`
	Placeholder string `toml:"placeholder"`
}

// SourceConfig selects where catalog JSON is loaded from.
type SourceConfig struct {
	Kind      string  `toml:"kind"`
	BaseURL   string  `toml:"base_url"`
	RateLimit float64 `toml:"rate_limit"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// CoversConfig contains cover thumbnail settings.
type CoversConfig struct {
	Dir       string `toml:"dir"`
	ThumbDir  string `toml:"thumb_dir"`
	MaxWidth  int    `toml:"max_width"`
	MaxHeight int    `toml:"max_height"`
	Workers   int    `toml:"workers"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Source kinds accepted in [source] kind.
const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceDB   = "db"
)

// Addr returns the host:port pair for the preview server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate checks values that would otherwise fail later in a confusing way.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceFile, SourceDB, "":
	case SourceHTTP:
		if c.Source.BaseURL == "" {
			return fmt.Errorf("%w: source.base_url is required for http sources", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown source kind %q", ErrInvalidConfig, c.Source.Kind)
	}
	if c.Site.OutputDir == "" {
		return fmt.Errorf("%w: site.output_dir is required", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes the configuration to path as TOML.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
