package meta

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ApplicationConfig is a top-level block for application-level meta configuration.
type ApplicationConfig struct {
	SentryDSN string `yaml:"sentry_dsn"`
}

// MetricsConfig is a top-level block for metrics configuration.
type MetricsConfig struct {
	Statsd *struct {
		Address    string  `yaml:"addr"`
		SampleRate float32 `yaml:"sample_rate"`
	} `yaml:"statsd"`
}

// RunnerConfig is a top-level block for task runner configuration.
type RunnerConfig struct {
	// Repeat is the number of times each selected task is invoked.
	Repeat int `yaml:"repeat"`
}

// Config describes all application configuration options.
type Config struct {
	Application *ApplicationConfig `yaml:"application"`
	Metrics     *MetricsConfig     `yaml:"metrics"`
	Runner      *RunnerConfig      `yaml:"runner"`
}

// DefaultConfig returns the configuration used when no config file is supplied: no error
// reporting, no metrics, and a single invocation per task.
func DefaultConfig() *Config {
	return &Config{
		Runner: &RunnerConfig{Repeat: 1},
	}
}

// ParseConfig parses a Config struct instance from a file specified as a path on disk.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: error reading config: err=%v", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: error parsing config: err=%v", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate the contents of the configuration. Returns an error if validation failed; nil otherwise.
func (c *Config) validate() error {
	/* Metrics */

	// Users can omit the metrics block entirely to disable metrics reporting.
	if c.Metrics != nil && c.Metrics.Statsd != nil {
		if c.Metrics.Statsd.Address == "" {
			return fmt.Errorf("config: missing metrics statsd address")
		}

		if c.Metrics.Statsd.SampleRate < 0 || c.Metrics.Statsd.SampleRate > 1 {
			return fmt.Errorf("config: statsd sample rate must be in range [0.0, 1.0]")
		}
	}

	/* Runner */

	if c.Runner == nil {
		c.Runner = &RunnerConfig{Repeat: 1}
	}

	if c.Runner.Repeat < 1 {
		return fmt.Errorf("config: runner repeat must be positive: repeat=%d", c.Runner.Repeat)
	}

	return nil
}
