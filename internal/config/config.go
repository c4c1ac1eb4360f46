// Package config loads service configuration from an optional YAML file with
// an environment variable overlay.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Gemini   GeminiConfig   `koanf:"gemini"`
	Storage  StorageConfig  `koanf:"storage"`
	Renderer RendererConfig `koanf:"renderer"`
	Advisor  AdvisorConfig  `koanf:"advisor"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type GeminiConfig struct {
	APIKey          string `koanf:"api_key"`
	MatchModel      string `koanf:"match_model"`
	ReviewModel     string `koanf:"review_model"`
	ExplainModel    string `koanf:"explain_model"`
	MaxPromptTokens int    `koanf:"max_prompt_tokens"`
}

type StorageConfig struct {
	Type   string       `koanf:"type"` // file, sqlite
	File   FileConfig   `koanf:"file"`
	SQLite SQLiteConfig `koanf:"sqlite"`
}

type FileConfig struct {
	Dir string `koanf:"dir"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

type RendererConfig struct {
	// BaseURL of a Kroki-compatible rendering service.
	BaseURL string `koanf:"base_url"`
}

type AdvisorConfig struct {
	// Timeout bounds each generation call, e.g. "60s".
	Timeout string `koanf:"timeout"`
}

// CallTimeout parses the advisor timeout, falling back to a minute.
func (a AdvisorConfig) CallTimeout() time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// Load reads the YAML file at path (skipped when absent), overlays
// ADVISOR_-prefixed environment variables, and applies defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	// Environment variables: ADVISOR_SERVER_PORT -> server.port
	if err := k.Load(env.Provider("ADVISOR_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "ADVISOR_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	// Gemini key names contain underscores, which the env mapping above
	// splits. Map the common ones back explicitly.
	remapEnvKeys(k)

	applyDefaults(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// remapEnvKeys restores multi-word leaf keys mangled by the "_" to "."
// conversion, e.g. gemini.api.key -> gemini.api_key.
func remapEnvKeys(k *koanf.Koanf) {
	remap := map[string]string{
		"gemini.api.key":           "gemini.api_key",
		"gemini.match.model":       "gemini.match_model",
		"gemini.review.model":      "gemini.review_model",
		"gemini.explain.model":     "gemini.explain_model",
		"gemini.max.prompt.tokens": "gemini.max_prompt_tokens",
		"renderer.base.url":        "renderer.base_url",
	}
	for from, to := range remap {
		if k.Exists(from) {
			k.Set(to, k.Get(from))
			k.Delete(from)
		}
	}
}

func applyDefaults(k *koanf.Koanf) {
	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("storage.type") {
		k.Set("storage.type", "file")
	}
	if !k.Exists("storage.file.dir") {
		k.Set("storage.file.dir", "./data")
	}
	if !k.Exists("storage.sqlite.path") {
		k.Set("storage.sqlite.path", "./data/advisor.db")
	}
	if !k.Exists("renderer.base_url") {
		k.Set("renderer.base_url", "https://kroki.io")
	}
	if !k.Exists("advisor.timeout") {
		k.Set("advisor.timeout", "60s")
	}
}
