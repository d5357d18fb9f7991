package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/natindo/FamilyFlow/internal/models"
)

const (
	defaultDatabaseURL    = "user=myuser password=mypass dbname=mydb host=localhost port=5432 sslmode=disable"
	defaultTimezone       = "UTC"
	defaultNotifyBefore   = 60
	defaultNotifySchedule = "@every 1m"
	defaultExportDir      = "exports"
)

// Config holds the bot settings. Values come from a YAML file and are then
// overridden by the environment.
type Config struct {
	TelegramToken string `yaml:"telegram_token"`
	DatabaseURL   string `yaml:"database_url"`

	// Timezone is the IANA zone used for "today" and reminder times.
	Timezone string `yaml:"timezone"`

	// NotifyBefore is the reminder lead in minutes.
	NotifyBefore   int    `yaml:"notify_before_minutes"`
	NotifySchedule string `yaml:"notify_schedule"`

	LogLevel string `yaml:"log_level"`

	// Children is the family roster offered on the "who is this for" step.
	Children []models.Child `yaml:"children"`

	// ExtraLocations are appended to the built-in location directory.
	ExtraLocations []models.Option `yaml:"extra_locations"`

	ExportDir string `yaml:"export_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		DatabaseURL:    defaultDatabaseURL,
		Timezone:       defaultTimezone,
		NotifyBefore:   defaultNotifyBefore,
		NotifySchedule: defaultNotifySchedule,
		LogLevel:       "info",
		Children:       []models.Child{},
		ExtraLocations: []models.Option{},
		ExportDir:      defaultExportDir,
	}
}

// Normalize fills zero values with defaults so partial files still work.
func (c *Config) Normalize() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = defaultDatabaseURL
	}
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
	if c.NotifyBefore <= 0 {
		c.NotifyBefore = defaultNotifyBefore
	}
	if c.NotifySchedule == "" {
		c.NotifySchedule = defaultNotifySchedule
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Children == nil {
		c.Children = []models.Child{}
	}
	for i := range c.Children {
		if c.Children[i].ID == "" {
			c.Children[i].ID = "child-" + strconv.Itoa(i+1)
		}
	}
	if c.ExtraLocations == nil {
		c.ExtraLocations = []models.Option{}
	}
	if c.ExportDir == "" {
		c.ExportDir = defaultExportDir
	}
}

// Validate reports settings the bot cannot start without.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return errors.New("telegram token is not set (TELEGRAM_BOT_TOKEN or telegram_token)")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads the YAML file at path, if any, then applies environment
// overrides. A missing file is not an error; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			cfg = &Config{}
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
			}
		}
	}
	cfg.applyEnv()
	cfg.Normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("FAMILYFLOW_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("FAMILYFLOW_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Save writes cfg as YAML with 0600 permissions, creating the directory.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
