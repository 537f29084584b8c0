package main

import (
	"time"

	"github.com/kbukum/coursequery/config"
	"github.com/kbukum/coursequery/queries"
	"github.com/kbukum/coursequery/validation"
)

const serviceName = "coursequery"

// Output formats.
const (
	FormatTable = "table"
	FormatPlain = "plain"
	FormatYAML  = "yaml"
)

var formats = []string{FormatTable, FormatPlain, FormatYAML}

// Config is the coursequery configuration. It is read from config.yml, a
// .env file and the environment, then overridden by command line flags.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Dataset              DatasetConfig  `yaml:"dataset" mapstructure:"dataset"`
	Output               OutputConfig   `yaml:"output" mapstructure:"output"`
	Query                queries.Params `yaml:"query" mapstructure:"query"`
	Tracing              TracingConfig  `yaml:"tracing" mapstructure:"tracing"`
	Metrics              MetricsConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// DatasetConfig selects the catalog. An empty path uses the built-in sample.
type DatasetConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// OutputConfig controls how results are written.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	Stats  bool   `yaml:"stats" mapstructure:"stats"`
}

// TracingConfig enables span export over OTLP HTTP.
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// MetricsConfig enables metric export over OTLP HTTP.
type MetricsConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// defaultConfig is loaded over, so keys absent from every source keep
// these values.
func defaultConfig() *Config {
	return &Config{
		ServiceConfig: config.ServiceConfig{Name: serviceName, Environment: "production"},
		Output:        OutputConfig{Format: FormatTable},
		Query:         queries.DefaultParams(),
		Tracing:       TracingConfig{Endpoint: "localhost:4318", Insecure: true, SampleRate: 1.0},
		Metrics:       MetricsConfig{Endpoint: "localhost:4318", Insecure: true, Interval: 15 * time.Second},
	}
}

// loadConfig reads the configuration and applies defaults.
func loadConfig(opts ...config.LoaderOption) (*Config, error) {
	cfg := defaultConfig()
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills the values the loaded sources may have cleared.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Output.Format == "" {
		c.Output.Format = FormatTable
	}
}

// Validate checks the service, output, query and telemetry settings.
func (c *Config) Validate() error {
	v := validation.New().Merge(c.ServiceConfig.Validate())
	v.In("output").OneOf("format", c.Output.Format, formats)
	v.In("tracing").
		Fraction("sample_rate", c.Tracing.SampleRate).
		Check(!c.Tracing.Enabled || c.Tracing.Endpoint != "", "endpoint", "is required when tracing is enabled")
	v.In("metrics").
		Check(!c.Metrics.Enabled || c.Metrics.Endpoint != "", "endpoint", "is required when metrics are enabled").
		Check(!c.Metrics.Enabled || c.Metrics.Interval > 0, "interval", "must be positive")
	v.In("query").Merge(c.Query.Validate())
	return v.Err()
}
