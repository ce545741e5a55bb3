package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Wistia  WistiaConfig  `mapstructure:"wistia"`
	List    ListConfig    `mapstructure:"list"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// WistiaConfig holds Wistia Data API connection details
type WistiaConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Debug        string        `mapstructure:"debug"`
	Timeout      time.Duration `mapstructure:"timeout"`
	StrictStatus bool          `mapstructure:"strict_status"`
}

// ListConfig contains paging and sorting defaults for list commands
type ListConfig struct {
	PerPage       int    `mapstructure:"per_page"`
	SortBy        string `mapstructure:"sort_by"`
	SortDirection string `mapstructure:"sort_direction"`
}

// FilterConfig contains the default filter and named presets
type FilterConfig struct {
	DefaultExpression string                  `mapstructure:"default_expression"`
	Presets           map[string]PresetFilter `mapstructure:"presets"`
}

// PresetFilter is a named filter expression
type PresetFilter struct {
	Expression  string `mapstructure:"expression"`
	Description string `mapstructure:"description"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format           string `mapstructure:"format"`
	ShowDetails      bool   `mapstructure:"show_details"`
	StripNumbering   bool   `mapstructure:"strip_numbering"`
	ShowEmptySection bool   `mapstructure:"show_empty_section"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
