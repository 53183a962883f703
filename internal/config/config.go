// Package config loads server and feed configuration from an optional YAML
// file with environment variable overrides. With no file the built-in feed
// set is served.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"custom-rss/internal/domain/entity"
	"custom-rss/internal/infra/extractor"
	pkgconfig "custom-rss/pkg/config"

	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr      = "127.0.0.1:3101"
	defaultTimezone        = "Europe/Madrid"
	defaultRefreshSchedule = "@every 15m"
	defaultShutdownTimeout = 10 * time.Second
	defaultRefreshInterval = time.Hour
)

// Config is the full runtime configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Feeds  []FeedConfig `yaml:"feeds"`
}

// ServerConfig holds HTTP server and scheduler settings.
type ServerConfig struct {
	ListenAddr      string        `yaml:"listen_addr"`
	Timezone        string        `yaml:"timezone"`
	RefreshSchedule string        `yaml:"refresh_schedule"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// FeedConfig is one feed definition as written in the YAML file.
type FeedConfig struct {
	Path            string        `yaml:"path"`
	SourceURL       string        `yaml:"source_url"`
	Extractor       string        `yaml:"extractor"`
	Title           string        `yaml:"title"`
	Description     string        `yaml:"description"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// Load reads the YAML file at path when it exists, fills defaults, applies
// environment overrides and validates the result. An empty path or a
// missing file yields the built-in configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = defaultListenAddr
	}
	if c.Server.Timezone == "" {
		c.Server.Timezone = defaultTimezone
	}
	if c.Server.RefreshSchedule == "" {
		c.Server.RefreshSchedule = defaultRefreshSchedule
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = defaultShutdownTimeout
	}
	if len(c.Feeds) == 0 {
		c.Feeds = defaultFeeds()
	}
	for i := range c.Feeds {
		if c.Feeds[i].RefreshInterval == 0 {
			c.Feeds[i].RefreshInterval = defaultRefreshInterval
		}
	}
}

func (c *Config) applyEnv() {
	c.Server.ListenAddr = pkgconfig.GetEnvString("LISTEN_ADDR", c.Server.ListenAddr)
	c.Server.Timezone = pkgconfig.GetEnvString("TIMEZONE", c.Server.Timezone)
	c.Server.RefreshSchedule = pkgconfig.GetEnvString("REFRESH_SCHEDULE", c.Server.RefreshSchedule)
	c.Server.ShutdownTimeout = pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
}

// Validate checks the server settings and every feed definition.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server: listen_addr is required")
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("server: unknown timezone %q: %w", c.Server.Timezone, err)
	}
	if err := pkgconfig.ValidatePositiveDuration(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("server: shutdown_timeout: %w", err)
	}

	seen := make(map[string]struct{}, len(c.Feeds))
	for i, f := range c.Feeds {
		def := f.definition()
		if err := def.Validate(); err != nil {
			return fmt.Errorf("feed %d (%s): %w", i, f.Path, err)
		}
		if _, err := extractor.ForKind(f.Extractor); err != nil {
			return fmt.Errorf("feed %d (%s): %w", i, f.Path, err)
		}
		if _, dup := seen[f.Path]; dup {
			return fmt.Errorf("feed %d: duplicate path %q", i, f.Path)
		}
		seen[f.Path] = struct{}{}
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Server.Timezone)
}

// Definitions converts the feed configs into domain definitions.
func (c *Config) Definitions() []entity.FeedDefinition {
	defs := make([]entity.FeedDefinition, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		defs = append(defs, f.definition())
	}
	return defs
}

func (f FeedConfig) definition() entity.FeedDefinition {
	return entity.FeedDefinition{
		Path:            f.Path,
		SourceURL:       f.SourceURL,
		ExtractorKind:   f.Extractor,
		Title:           f.Title,
		Description:     f.Description,
		RefreshInterval: f.RefreshInterval,
	}
}

// defaultFeeds is the feed set served when no config file is present.
func defaultFeeds() []FeedConfig {
	return []FeedConfig{
		{
			Path:        "/blog-isabel/feed",
			SourceURL:   "https://marmenormarmayor.es/El-blog-de-Isabel/archive.html",
			Extractor:   extractor.KindIsabel,
			Title:       "El blog de Isabel",
			Description: "Entradas de El blog de Isabel",
		},
		{
			Path:        "/verde/blog/feed",
			SourceURL:   "https://elclickverde.com/blog",
			Extractor:   extractor.KindVerdeBlog,
			Title:       "Elclickverde: blogs",
			Description: "Entradas de los blogs de elclickverde",
		},
		{
			Path:        "/verde/reportajes/feed",
			SourceURL:   "https://elclickverde.com/reportajes",
			Extractor:   extractor.KindVerdeReportajes,
			Title:       "Elclickverde: reportajes",
			Description: "Reportajes de elclickverde",
		},
	}
}
