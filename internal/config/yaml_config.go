package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Lists and chart styling are easier to manage in YAML than env vars.
type YAMLConfig struct {
	FallbackTrends []string    `yaml:"fallback_trends"` // Used when the model exposes no trend_ features
	Chart          ChartConfig `yaml:"chart"`
}

// ChartConfig defines the weekday bar chart geometry and colours.
type ChartConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	BarColor string `yaml:"bar_color"` // Hex, e.g. "#87ceeb"
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	return LoadYAMLConfigFile(getEnv("CONFIG_FILE", "config.yaml"))
}

// LoadYAMLConfigFile loads the YAML configuration from an explicit path.
func LoadYAMLConfigFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Chart.Width <= 0 {
		cfg.Chart.Width = 800
	}
	if cfg.Chart.Height <= 0 {
		cfg.Chart.Height = 400
	}

	return &cfg, nil
}

// GetFallbackTrends returns the configured fallback trends, or nil.
func (c *YAMLConfig) GetFallbackTrends() []string {
	if c == nil {
		return nil
	}
	return c.FallbackTrends
}

// GetChart returns the chart settings, or nil when no file was loaded.
func (c *YAMLConfig) GetChart() *ChartConfig {
	if c == nil {
		return nil
	}
	return &c.Chart
}
