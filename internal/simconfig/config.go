package simconfig

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes one channel-sim run: the simulated window, the scenario
// file with the transmissions, and the observability surfaces.
type Config struct {
	Sim struct {
		Duration    time.Duration `yaml:"duration"`
		Tick        time.Duration `yaml:"tick"`
		Accelerated bool          `yaml:"accelerated"`
	} `yaml:"sim"`
	Channel struct {
		ScenarioPath string `yaml:"scenario_path"`
		// NoiseFloorDBw overrides the scenario's noise profile when set.
		NoiseFloorDBw *float64 `yaml:"noise_floor_dbw"`
		Clearance     struct {
			FreqIndex    int     `yaml:"freq_index"`
			ThresholdDBw float64 `yaml:"threshold_dbw"`
		} `yaml:"clearance"`
	} `yaml:"channel"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SCENARIO_PATH"); v != "" {
		c.Channel.ScenarioPath = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Sim.Duration == 0 {
		c.Sim.Duration = 60 * time.Second
	}
	if c.Sim.Tick == 0 {
		c.Sim.Tick = time.Second
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9090"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Sim.Tick <= 0 {
		return fmt.Errorf("sim.tick must be positive")
	}
	if c.Sim.Duration < c.Sim.Tick {
		return fmt.Errorf("sim.duration must be at least one tick")
	}
	if c.Channel.ScenarioPath == "" {
		return fmt.Errorf("channel.scenario_path is required")
	}
	if c.Channel.Clearance.FreqIndex < 0 {
		return fmt.Errorf("channel.clearance.freq_index must not be negative")
	}
	return nil
}
