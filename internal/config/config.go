// Package config loads the backend configuration from an optional TOML file
// with sane defaults. Secrets are taken from the environment in main.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Addr        string `koanf:"addr"`
	StoragePath string `koanf:"storage_path"`
	HistorySize int    `koanf:"history_size"`

	OpenAI   OpenAIConfig   `koanf:"openai"`
	Spotify  SpotifyConfig  `koanf:"spotify"`
	Playback PlaybackConfig `koanf:"playback"`
}

// OpenAIConfig holds analysis-service settings. The API key is not read from
// the file on purpose; it comes from the environment.
type OpenAIConfig struct {
	BaseURL        string `koanf:"base_url"`
	Model          string `koanf:"model"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
}

type SpotifyConfig struct {
	BaseURL string `koanf:"base_url"`
}

// PlaybackConfig points at the external playback collaborator.
type PlaybackConfig struct {
	BaseURL string `koanf:"base_url"`
}

func defaults() *Config {
	return &Config{
		Addr:        ":8080",
		StoragePath: "moodmatch.db",
		HistorySize: 20,
		OpenAI: OpenAIConfig{
			TimeoutSeconds: 30,
		},
		Playback: PlaybackConfig{
			BaseURL: "http://localhost:9090",
		},
	}
}

// Load reads the config file at path when it exists and merges it over the
// defaults. An empty path skips file loading entirely.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}

	return cfg, nil
}

// OpenAITimeout returns the analysis-call timeout as a duration.
func (c *Config) OpenAITimeout() time.Duration {
	return time.Duration(c.OpenAI.TimeoutSeconds) * time.Second
}
