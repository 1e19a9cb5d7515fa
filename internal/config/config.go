// internal/config/config.go
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Render() RenderConfig
	Output() OutputConfig
	Job() JobConfig
	SetJob(j JobConfig)

	// Render setters, used by CLI flags to override file values.
	SetViewport(width, height float64)
	SetDevicePixelRatio(ratio float64)
	SetRootFontSize(px float64)
	SetUserAgentStyles(enabled bool)
	SetRenderConcurrency(n int)

	// Output setters
	SetOutputFormat(format string)
}

// Config holds the entire application configuration. Fields are exported so
// viper can unmarshal into them; access goes through the Interface getters.
type Config struct {
	LoggerCfg LoggerConfig `mapstructure:"logger" yaml:"logger"`
	RenderCfg RenderConfig `mapstructure:"render" yaml:"render"`
	OutputCfg OutputConfig `mapstructure:"output" yaml:"output"`
	// job gets its marching orders from CLI flags, not the config file.
	job JobConfig `mapstructure:"-" yaml:"-"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig { return c.LoggerCfg }
func (c *Config) Render() RenderConfig { return c.RenderCfg }
func (c *Config) Output() OutputConfig { return c.OutputCfg }
func (c *Config) Job() JobConfig       { return c.job }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetJob(j JobConfig) { c.job = j }

// Render setters
func (c *Config) SetViewport(width, height float64) {
	c.RenderCfg.ViewportWidth = width
	c.RenderCfg.ViewportHeight = height
}
func (c *Config) SetDevicePixelRatio(ratio float64) { c.RenderCfg.DevicePixelRatio = ratio }
func (c *Config) SetRootFontSize(px float64)        { c.RenderCfg.RootFontSize = px }
func (c *Config) SetUserAgentStyles(enabled bool)   { c.RenderCfg.UserAgentStyles = enabled }
func (c *Config) SetRenderConcurrency(n int)        { c.RenderCfg.Concurrency = n }

// Output setters
func (c *Config) SetOutputFormat(format string) { c.OutputCfg.Format = format }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// RenderConfig carries the defaults for the rendering pipeline: the initial
// containing block, font metrics, and how many documents render in parallel.
type RenderConfig struct {
	ViewportWidth    float64 `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight   float64 `mapstructure:"viewport_height" yaml:"viewport_height"`
	DevicePixelRatio float64 `mapstructure:"device_pixel_ratio" yaml:"device_pixel_ratio"`
	RootFontSize     float64 `mapstructure:"root_font_size" yaml:"root_font_size"`
	UserAgentStyles  bool    `mapstructure:"user_agent_styles" yaml:"user_agent_styles"`
	Concurrency      int     `mapstructure:"concurrency" yaml:"concurrency"`
}

// OutputConfig controls how render results are serialized.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// JobConfig holds settings populated from CLI flags for a specific render job.
type JobConfig struct {
	Inputs      []string
	Stylesheets []string
	Output      string
	Format      string
	Selector    string
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "ordinal")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Render --
	v.SetDefault("render.viewport_width", 1920)
	v.SetDefault("render.viewport_height", 1080)
	v.SetDefault("render.device_pixel_ratio", 2.0)
	v.SetDefault("render.root_font_size", 16)
	v.SetDefault("render.user_agent_styles", true)
	v.SetDefault("render.concurrency", 4)

	// -- Output --
	v.SetDefault("output.format", "text")
	v.SetDefault("output.pretty", true)
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.LoggerCfg.Validate(); err != nil {
		return fmt.Errorf("logger configuration invalid: %w", err)
	}
	if err := c.RenderCfg.Validate(); err != nil {
		return fmt.Errorf("render configuration invalid: %w", err)
	}
	if err := c.OutputCfg.Validate(); err != nil {
		return fmt.Errorf("output configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the logger settings.
func (l *LoggerConfig) Validate() error {
	switch l.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logger.format must be \"console\" or \"json\", got %q", l.Format)
	}
	if l.LogFile != "" && l.MaxSize <= 0 {
		return fmt.Errorf("logger.max_size must be a positive number of megabytes")
	}
	return nil
}

// Validate checks the render settings.
func (r *RenderConfig) Validate() error {
	if r.ViewportWidth <= 0 || r.ViewportHeight <= 0 {
		return fmt.Errorf("render.viewport_width and render.viewport_height must be positive")
	}
	if r.DevicePixelRatio <= 0 {
		return fmt.Errorf("render.device_pixel_ratio must be positive")
	}
	if r.RootFontSize <= 0 {
		return fmt.Errorf("render.root_font_size must be positive")
	}
	if r.Concurrency <= 0 {
		return fmt.Errorf("render.concurrency must be a positive integer")
	}
	return nil
}

// Validate checks the output settings.
func (o *OutputConfig) Validate() error {
	switch o.Format {
	case "", "text", "json", "tree":
	default:
		return fmt.Errorf("output.format must be one of \"text\", \"json\", or \"tree\", got %q", o.Format)
	}
	return nil
}
