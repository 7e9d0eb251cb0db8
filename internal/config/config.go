// Package config loads the leafscan configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the file omits a value or no file is given.
const (
	DefaultEndpoint = "http://localhost:8000"
	DefaultTimeout  = 60 * time.Second
)

// Duration decodes YAML scalars like "30s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: bad duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// EndpointEnv names the environment variable that overrides the analyzer
// endpoint from file and defaults alike.
const EndpointEnv = "LEAFSCAN_ENDPOINT"

// Config holds all client settings.
type Config struct {
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Grading  GradingConfig  `yaml:"grading"`
	Log      LogConfig      `yaml:"log"`
}

// AnalyzerConfig configures the remote analysis service.
type AnalyzerConfig struct {
	// Endpoint is the base URL of the analysis service
	// (default http://localhost:8000).
	Endpoint string `yaml:"endpoint"`

	// Timeout bounds one upload round trip (default 60s).
	Timeout Duration `yaml:"timeout"`
}

// GradingConfig tunes the scoring engine.
type GradingConfig struct {
	// ZeroEpsilon treats damaged-area readings at or below this value as
	// healthy, absorbing analyzer noise near zero. Default 0 keeps the
	// exact-zero rule.
	ZeroEpsilon float64 `yaml:"zero_epsilon"`
}

// LogConfig configures the running CSV log.
type LogConfig struct {
	// Path of the CSV log file. Empty disables logging.
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	c := Config{}
	c.applyDefaults()
	return c
}

// Load reads a YAML config file, fills defaults, and applies environment
// overrides. An empty path yields Default() plus overrides.
func Load(path string) (Config, error) {
	var c Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config.Load: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("config.Load: parse %s: %w", path, err)
		}
	}

	c.applyDefaults()
	if env := os.Getenv(EndpointEnv); env != "" {
		c.Analyzer.Endpoint = env
	}

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Analyzer.Endpoint == "" {
		c.Analyzer.Endpoint = DefaultEndpoint
	}
	if c.Analyzer.Timeout == 0 {
		c.Analyzer.Timeout = Duration(DefaultTimeout)
	}
}

func (c *Config) validate() error {
	if c.Analyzer.Timeout < 0 {
		return fmt.Errorf("config: analyzer.timeout must not be negative")
	}
	if c.Grading.ZeroEpsilon < 0 {
		return fmt.Errorf("config: grading.zero_epsilon must not be negative")
	}
	return nil
}
