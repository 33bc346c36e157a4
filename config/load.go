package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvHost    = "COMICGEN_HOST"
	EnvPort    = "COMICGEN_PORT"
	EnvTheme   = "COMICGEN_THEME"
	EnvStyle   = "COMICGEN_STYLE"
	EnvLogFile = "COMICGEN_LOG_FILE"
)

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// Path is the comicgen.yaml location. A missing file is not an error
	// unless Required is set.
	Path     string
	Required bool
	// EnvFile is an optional .env file. Values never override variables
	// already present in the process environment.
	EnvFile string
}

// Load reads the config file (if any), loads the .env file (if any), and
// applies COMICGEN_* environment overrides.
func Load(opts LoadOptions) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading env file %s: %w", opts.EnvFile, err)
		}
	}

	cfg := Default()
	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		switch {
		case err == nil:
			cfg, err = Parse(data)
			if err != nil {
				return nil, err
			}
		case errors.Is(err, fs.ErrNotExist) && !opts.Required:
		default:
			return nil, fmt.Errorf("reading comicgen config %s: %w", opts.Path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvHost); v != "" {
		c.Server.Host = v
	}
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q: %w", EnvPort, v, err)
		}
		c.Server.Port = port
	}
	if v := getenv(EnvTheme); v != "" {
		c.Theme = v
	}
	if v := getenv(EnvStyle); v != "" {
		c.Render.Style = v
	}
	if v := getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	return nil
}
