package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/wistiakit/wistia"
)

// EnvPrefix is the prefix for environment overrides, e.g. WISTIA_LOGGING_LEVEL
const EnvPrefix = "WISTIA"

const placeholderAPIKey = "your-api-password-here"

// Load loads the configuration from file and environment. Without an explicit
// path a missing config file is not an error, so the tool can run from
// WISTIA_API_KEY alone.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The API key gets short names since it is the one value usually set from the shell
	_ = v.BindEnv("wistia.api_key", "WISTIA_API_KEY", "WISTIA_API_PASSWORD")
	_ = v.BindEnv("wistia.base_url", "WISTIA_BASE_URL")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".wistiakit"))
		}

		v.AddConfigPath("/etc/wistiakit/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Wistia defaults
	v.SetDefault("wistia.api_key", "")
	v.SetDefault("wistia.base_url", wistia.DefaultBaseURL())
	v.SetDefault("wistia.debug", "none")
	v.SetDefault("wistia.timeout", 30*time.Second)
	v.SetDefault("wistia.strict_status", false)

	// List defaults
	v.SetDefault("list.per_page", wistia.DefaultPerPage)
	v.SetDefault("list.sort_by", string(wistia.SortByUpdated))
	v.SetDefault("list.sort_direction", "asc")

	v.SetDefault("filter.default_expression", "")

	// Output defaults
	v.SetDefault("output.format", "table")
	v.SetDefault("output.show_details", false)
	v.SetDefault("output.strip_numbering", false)
	v.SetDefault("output.show_empty_section", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Wistia.APIKey == "" || cfg.Wistia.APIKey == placeholderAPIKey {
		return fmt.Errorf("wistia.api_key must be set to a valid API password")
	}

	if u, err := url.Parse(cfg.Wistia.BaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid wistia.base_url: %q", cfg.Wistia.BaseURL)
	}

	if _, ok := wistia.ParseDebugLevel(strings.ToLower(cfg.Wistia.Debug)); !ok {
		return fmt.Errorf("invalid wistia.debug: %s (must be none, basic or verbose)", cfg.Wistia.Debug)
	}

	if cfg.Wistia.Timeout <= 0 {
		return fmt.Errorf("wistia.timeout must be positive")
	}

	if cfg.List.PerPage < 1 || cfg.List.PerPage > wistia.MaxPerPage {
		return fmt.Errorf("list.per_page must be between 1 and %d", wistia.MaxPerPage)
	}

	if _, err := wistia.ParseSortBy(cfg.List.SortBy); err != nil {
		return fmt.Errorf("invalid list.sort_by: %s", cfg.List.SortBy)
	}

	if _, err := wistia.ParseSortDirection(cfg.List.SortDirection); err != nil {
		return fmt.Errorf("invalid list.sort_direction: %s", cfg.List.SortDirection)
	}

	for name, preset := range cfg.Filter.Presets {
		if strings.TrimSpace(preset.Expression) == "" {
			return fmt.Errorf("filter preset '%s' has no expression", name)
		}
	}

	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	if err := ValidateOutputFormat(cfg.Output.Format); err != nil {
		return err
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// ValidateOutputFormat checks that format is one of table, json or yaml
func ValidateOutputFormat(format string) error {
	switch format {
	case "table", "json", "yaml":
		return nil
	}
	return fmt.Errorf("invalid output format: %s", format)
}

// DebugLevel returns the parsed client debug level
func (c *Config) DebugLevel() wistia.DebugLevel {
	level, _ := wistia.ParseDebugLevel(strings.ToLower(c.Wistia.Debug))
	return level
}

// ClientOptions translates the Wistia section into client options
func (c *Config) ClientOptions() []wistia.Option {
	opts := []wistia.Option{
		wistia.WithBaseURL(c.Wistia.BaseURL),
		wistia.WithTimeout(c.Wistia.Timeout),
		wistia.WithDebugLevel(c.DebugLevel()),
		wistia.WithPageSize(c.List.PerPage),
	}
	if c.Wistia.StrictStatus {
		opts = append(opts, wistia.WithStrictStatus())
	}
	return opts
}

// ListOptions returns the configured list defaults
func (c *Config) ListOptions() wistia.ListOptions {
	sortBy, _ := wistia.ParseSortBy(c.List.SortBy)
	dir, _ := wistia.ParseSortDirection(c.List.SortDirection)
	return wistia.ListOptions{
		Page:          wistia.DefaultPage,
		PerPage:       c.List.PerPage,
		SortBy:        sortBy,
		SortDirection: dir,
	}
}
