package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Content struct {
		Domain string `yaml:"domain"`
		TTL    string `yaml:"ttl"`
	} `yaml:"content"`
	Quiz struct {
		PassThreshold int `yaml:"passThreshold"`
	} `yaml:"quiz"`
	Results struct {
		URL string `yaml:"url"`
	} `yaml:"results"`
	Assess struct {
		URL string `yaml:"url"`
	} `yaml:"assess"`
	Emotion struct {
		Enabled      bool   `yaml:"enabled"`
		URL          string `yaml:"url"`
		PollInterval string `yaml:"pollInterval"`
	} `yaml:"emotion"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ContentDomain returns the configured document domain, defaulting to the
// astronaut portal.
func (c Config) ContentDomain() string {
	if c.Content.Domain == "" {
		return "astronaut"
	}
	return c.Content.Domain
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
