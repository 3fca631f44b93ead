package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type JourneyConfig struct {
	BaseURL  string `yaml:"base_url"`
	TokenURL string `yaml:"token_url"`
	Language string `yaml:"language"`
	Limit    int    `yaml:"limit"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

type WatchConfig struct {
	From           string `yaml:"from"`
	To             string `yaml:"to"`
	Interval       string `yaml:"interval"`        // e.g. "5m"
	DelayThreshold int    `yaml:"delay_threshold"` // minutes
}

// IntervalDuration parses the poll interval, defaulting to five minutes.
func (w WatchConfig) IntervalDuration() (time.Duration, error) {
	if w.Interval == "" {
		return 5 * time.Minute, nil
	}
	parsed, err := time.ParseDuration(w.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q: %w", w.Interval, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("interval %q must be positive", w.Interval)
	}
	return parsed, nil
}

type Config struct {
	Journey     JourneyConfig `yaml:"journey"`
	Server      ServerConfig  `yaml:"server"`
	Watch       WatchConfig   `yaml:"watch"`
	Disclaimers string        `yaml:"disclaimers"` // directory of <lang>.txt files
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Journey.BaseURL == "" {
		return fmt.Errorf("journey: base_url is required")
	}
	if c.Journey.TokenURL == "" {
		return fmt.Errorf("journey: token_url is required")
	}
	if _, err := c.Watch.IntervalDuration(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Journey.Language == "" {
		c.Journey.Language = "en"
	}
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
}
