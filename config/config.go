// Package config holds the comicgen.yaml configuration types and loaders.
package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for the generation endpoint.
const (
	DefaultScheme         = "http"
	DefaultHost           = "localhost"
	DefaultPort           = 8002
	DefaultPath           = "/generate-comic/"
	DefaultConnectTimeout = 10 * time.Second
	DefaultRenderStyle    = "auto"
	DefaultCacheSize      = 32
)

// Config represents the top-level comicgen.yaml configuration.
type Config struct {
	Server  ServerRef `yaml:"server,omitempty"`
	Render  RenderRef `yaml:"render,omitempty"`
	Theme   string    `yaml:"theme,omitempty"`    // dark, light, or empty for detection
	LogFile string    `yaml:"log_file,omitempty"` // TUI log destination; empty discards
}

// ServerRef locates the comic generation endpoint.
type ServerRef struct {
	Scheme         string        `yaml:"scheme,omitempty"`
	Host           string        `yaml:"host,omitempty"` // hostname the client is "served from"; localhost maps to 127.0.0.1
	Port           int           `yaml:"port,omitempty"`
	Path           string        `yaml:"path,omitempty"`
	ConnectTimeout time.Duration `yaml:"connect_timeout,omitempty"`
}

// RenderRef configures markdown rendering of the finished comic.
type RenderRef struct {
	Style     string `yaml:"style,omitempty"`      // auto, dark, light, notty, ascii
	WordWrap  int    `yaml:"word_wrap,omitempty"`  // 0 follows the terminal width
	CacheSize int    `yaml:"cache_size,omitempty"` // rendered outputs kept in memory
}

var renderStyles = map[string]bool{
	"auto":  true,
	"dark":  true,
	"light": true,
	"notty": true,
	"ascii": true,
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Parse parses raw YAML bytes into a Config, applies defaults, and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing comicgen config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Scheme == "" {
		c.Server.Scheme = DefaultScheme
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Path == "" {
		c.Server.Path = DefaultPath
	}
	if c.Server.ConnectTimeout == 0 {
		c.Server.ConnectTimeout = DefaultConnectTimeout
	}
	if c.Render.Style == "" {
		c.Render.Style = DefaultRenderStyle
	}
	if c.Render.CacheSize == 0 {
		c.Render.CacheSize = DefaultCacheSize
	}
}

// Validate checks field ranges after defaults have been applied.
func (c *Config) Validate() error {
	switch c.Server.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("comicgen config: server.scheme must be http or https, got %q", c.Server.Scheme)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("comicgen config: server.port %d out of range", c.Server.Port)
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		return fmt.Errorf("comicgen config: server.path must start with /, got %q", c.Server.Path)
	}
	if c.Server.ConnectTimeout < 0 {
		return fmt.Errorf("comicgen config: server.connect_timeout must not be negative")
	}
	if !renderStyles[c.Render.Style] {
		return fmt.Errorf("comicgen config: unknown render.style %q", c.Render.Style)
	}
	if c.Render.WordWrap < 0 {
		return fmt.Errorf("comicgen config: render.word_wrap must not be negative")
	}
	if c.Render.CacheSize < 0 {
		return fmt.Errorf("comicgen config: render.cache_size must not be negative")
	}
	switch strings.ToLower(c.Theme) {
	case "", "auto", "dark", "light":
	default:
		return fmt.Errorf("comicgen config: unknown theme %q", c.Theme)
	}
	return nil
}
