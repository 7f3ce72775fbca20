package config

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Output formats understood by the storage layer.
const (
	FormatJSON   = "json"
	FormatJSONL  = "jsonl"
	FormatSQLite = "sqlite"
)

type Config struct {
	SeedsFile   string        `mapstructure:"seeds"`
	OutputDir   string        `mapstructure:"output"`
	Formats     []string      `mapstructure:"formats"`
	Workers     int           `mapstructure:"workers"`
	RateLimit   int           `mapstructure:"rate"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRetries  int           `mapstructure:"retries"`
	MaxPages    int           `mapstructure:"max-pages"`
	UserAgent   string        `mapstructure:"user-agent"`
	ProfileFile string        `mapstructure:"profile"`
	Verbose     bool          `mapstructure:"verbose"`
}

func New() *Config {
	return &Config{
		Workers:    20,
		RateLimit:  5,
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		MaxPages:   2,
		OutputDir:  "data/output",
		Formats:    []string{FormatJSON},
		UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}

func (c *Config) Validate() error {
	if c.SeedsFile == "" {
		return fmt.Errorf("%w: seeds file is required", ErrInvalid)
	}

	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be greater than 0", ErrInvalid)
	}

	if c.RateLimit <= 0 {
		return fmt.Errorf("%w: rate must be greater than 0", ErrInvalid)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be greater than 0", ErrInvalid)
	}

	if c.MaxRetries <= 0 {
		return fmt.Errorf("%w: retries must be greater than 0", ErrInvalid)
	}

	if c.MaxPages <= 0 {
		return fmt.Errorf("%w: max-pages must be greater than 0", ErrInvalid)
	}

	if len(c.Formats) == 0 {
		return fmt.Errorf("%w: at least one output format is required", ErrInvalid)
	}

	known := []string{FormatJSON, FormatJSONL, FormatSQLite}
	for _, format := range c.Formats {
		if !slices.Contains(known, format) {
			return fmt.Errorf("%w: unknown output format %q", ErrInvalid, format)
		}
	}

	return nil
}
