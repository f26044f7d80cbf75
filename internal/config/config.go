package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DefaultFile    string `yaml:"default_file,omitempty"`
	Output         string `yaml:"output,omitempty"`
	IDKey          string `yaml:"id_key,omitempty"`
	SortByFilename *bool  `yaml:"sort_by_filename,omitempty"`
	Locale         string `yaml:"locale,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty"`
}

// Keys lists the settings accepted by Set, in display order.
var Keys = []string{"default_file", "output", "id_key", "sort_by_filename", "locale", "log_level"}

func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func Save(dataDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dataDir, "config.yaml")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Set assigns one setting from its string form. An empty value clears it.
func (c *Config) Set(key, value string) error {
	switch key {
	case "default_file":
		c.DefaultFile = value
	case "output":
		c.Output = value
	case "id_key":
		c.IDKey = value
	case "sort_by_filename":
		if value == "" {
			c.SortByFilename = nil
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: must be true or false", value, key)
		}
		c.SortByFilename = &b
	case "locale":
		if value != "" {
			if _, err := language.Parse(value); err != nil {
				return fmt.Errorf("invalid locale %q: %w", value, err)
			}
		}
		c.Locale = value
	case "log_level":
		if value != "" {
			if _, err := ParseLevel(value); err != nil {
				return err
			}
		}
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// Level returns the configured log level, warn when unset.
func (c *Config) Level() (slog.Level, error) {
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	return ParseLevel(c.LogLevel)
}

// Tag returns the configured collation locale, if any.
func (c *Config) Tag() (language.Tag, bool, error) {
	if c.Locale == "" {
		return language.Und, false, nil
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, false, fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return tag, true, nil
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
	}
	return l, nil
}
