package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultFields is the artwork field subset the table consumes.
const DefaultFields = "id,title,place_of_origin,artist_display,inscriptions,date_start,date_end"

// Config holds application configuration.
type Config struct {
	API APIConfig
	Log LogConfig
	UI  UIConfig
}

// APIConfig holds remote catalog settings.
type APIConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	PageSize          int           `mapstructure:"page_size"`
	Fields            string        `mapstructure:"fields"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// LogConfig holds log sink settings. An empty path discards log output.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PlaceholderTitle  string `mapstructure:"placeholder_title"`
	PlaceholderArtist string `mapstructure:"placeholder_artist"`
}

// FieldList splits the configured field list.
func (c APIConfig) FieldList() []string {
	var out []string
	for _, f := range strings.Split(c.Fields, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Load reads configuration from file and env. Env var overrides use prefix ARTGRID_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("api.base_url", "https://api.artic.edu/api/v1")
	v.SetDefault("api.page_size", 12)
	v.SetDefault("api.fields", DefaultFields)
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.requests_per_minute", 60)
	v.SetDefault("api.user_agent", "artgrid (github.com/jask/artgrid)")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "artgrid", "artgrid.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.placeholder_title", "Untitled")
	v.SetDefault("ui.placeholder_artist", "Unknown artist")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ARTGRID_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "artgrid"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ARTGRID")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine; an explicit path must exist
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the loader cannot work with.
func (c Config) Validate() error {
	if c.API.PageSize <= 0 {
		return fmt.Errorf("config: api.page_size must be positive, got %d", c.API.PageSize)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if len(c.API.FieldList()) == 0 {
		return fmt.Errorf("config: api.fields is empty")
	}
	if c.API.RequestsPerMinute < 0 {
		return fmt.Errorf("config: api.requests_per_minute must not be negative")
	}
	return nil
}
