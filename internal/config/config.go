package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

type Config struct {
	APIBaseURL  string `yaml:"api_base_url"`
	ListenAddr  string `yaml:"listen_addr"`
	DBPath      string `yaml:"db_path"`
	NotifyEmail string `yaml:"notify_email"`
}

// Load reads config from the given YAML file, or from the path in the
// HABITS_CONFIG environment variable if set. Missing fields fall back to
// defaults.
func Load(path string) (*Config, error) {
	if env := os.Getenv("HABITS_CONFIG"); env != "" {
		path = env
	}

	cfg := &Config{
		APIBaseURL: "http://localhost:8080",
		ListenAddr: ":8080",
		DBPath:     "habits.db",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, but a missing file yields the defaults rather
// than an error.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return &Config{
			APIBaseURL: "http://localhost:8080",
			ListenAddr: ":8080",
			DBPath:     "habits.db",
		}
	}
	return cfg
}
