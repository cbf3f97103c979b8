package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
	"github.com/robfig/cron/v3"
)

type Config struct {
	App      App
	Sanity   Sanity
	Database Database
	Redis    Redis
	Webhook  Webhook
}

type App struct {
	Host     string
	Port     int
	SiteURL  string
	SiteName string
	// Timezone is the IANA zone dates are rendered in; empty means the server zone.
	Timezone string
	// ReindexSchedule is a cron spec for rebuilding the search index, e.g.
	// "@every 15m". Empty disables scheduled rebuilds.
	ReindexSchedule string
}

type Sanity struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	UseCDN     bool
	Token      string
	Timeout    time.Duration
}

// Database configures the optional Postgres mirror. When Enabled, pages are
// served from the mirror instead of the content API.
type Database struct {
	pg.Options
	Enabled    bool
	LogQueries bool
}

// Redis configures the page cache. An empty Addr disables it.
type Redis struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Webhook configures the revalidation endpoint. An empty Secret disables it.
type Webhook struct {
	Secret string
}

const (
	DefaultPort          = 3000
	DefaultSiteName      = "Old Ruins"
	DefaultAPIVersion    = "2025-01-01"
	DefaultSanityTimeout = 15 * time.Second
	DefaultCacheTTL      = 5 * time.Minute
)

// Load decodes the TOML file at path, applies defaults and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) SetDefaults() {
	if c.App.Port == 0 {
		c.App.Port = DefaultPort
	}
	if c.App.SiteName == "" {
		c.App.SiteName = DefaultSiteName
	}
	if c.App.SiteURL == "" {
		c.App.SiteURL = fmt.Sprintf("http://localhost:%d", c.App.Port)
	}
	c.App.SiteURL = strings.TrimRight(c.App.SiteURL, "/")

	if c.Sanity.APIVersion == "" {
		c.Sanity.APIVersion = DefaultAPIVersion
	}
	if c.Sanity.Timeout == 0 {
		c.Sanity.Timeout = DefaultSanityTimeout
	}

	if c.Redis.TTL == 0 {
		c.Redis.TTL = DefaultCacheTTL
	}
}

// Validate reports every missing or malformed parameter in one error.
func (c *Config) Validate() error {
	var missing []string
	if c.Sanity.ProjectID == "" {
		missing = append(missing, "Sanity.ProjectID")
	}
	if c.Sanity.Dataset == "" {
		missing = append(missing, "Sanity.Dataset")
	}
	if c.Database.Enabled {
		if c.Database.Addr == "" {
			missing = append(missing, "Database.Addr")
		}
		if c.Database.Database == "" {
			missing = append(missing, "Database.Database")
		}
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required config parameters: %s", strings.Join(missing, ", ")))
	}
	if c.App.Port < 1 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid App.Port: %d", c.App.Port))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.App.ReindexSchedule != "" {
		if _, err := cron.ParseStandard(c.App.ReindexSchedule); err != nil {
			errs = append(errs, fmt.Errorf("invalid App.ReindexSchedule %q: %w", c.App.ReindexSchedule, err))
		}
	}

	return errors.Join(errs...)
}

// Location returns the zone dates are rendered in.
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid App.Timezone %q: %w", c.App.Timezone, err)
	}

	return loc, nil
}
