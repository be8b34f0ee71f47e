// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Content sources.
const (
	SourceAuto    = "auto"
	SourceGemini  = "gemini"
	SourceOffline = "offline"
	SourceNone    = "none"
)

// Config is everything the client reads at startup.
type Config struct {
	GeminiAPIKey   string        `env:"NEBULA_GEMINI_API_KEY"`
	GeminiModel    string        `env:"NEBULA_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiURL      string        `env:"NEBULA_GEMINI_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	Content        string        `env:"NEBULA_CONTENT" envDefault:"auto"`
	ContentTimeout time.Duration `env:"NEBULA_CONTENT_TIMEOUT" envDefault:"20s"`
	LogLevel       string        `env:"NEBULA_LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"NEBULA_LOG_FORMAT" envDefault:"text"`
	Seed           uint64        `env:"NEBULA_SEED" envDefault:"0"`
	WindowScale    float64       `env:"NEBULA_WINDOW_SCALE" envDefault:"1.0"`
	Briefing       time.Duration `env:"NEBULA_BRIEFING" envDefault:"3.5s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and checks the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Content = strings.ToLower(strings.TrimSpace(cfg.Content))
	switch cfg.Content {
	case SourceAuto, SourceGemini, SourceOffline, SourceNone:
	default:
		return Config{}, fmt.Errorf("NEBULA_CONTENT %q: want auto, gemini, offline or none", cfg.Content)
	}
	if cfg.Content == SourceGemini && strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return Config{}, fmt.Errorf("NEBULA_CONTENT=gemini needs NEBULA_GEMINI_API_KEY")
	}
	if cfg.WindowScale <= 0 {
		return Config{}, fmt.Errorf("NEBULA_WINDOW_SCALE must be positive, got %v", cfg.WindowScale)
	}
	if cfg.ContentTimeout <= 0 {
		return Config{}, fmt.Errorf("NEBULA_CONTENT_TIMEOUT must be positive, got %s", cfg.ContentTimeout)
	}
	if cfg.Briefing < 0 {
		cfg.Briefing = 0
	}
	return cfg, nil
}

// Source resolves "auto" into the concrete content source.
func (c Config) Source() string {
	if c.Content != SourceAuto && c.Content != "" {
		return c.Content
	}
	if strings.TrimSpace(c.GeminiAPIKey) != "" {
		return SourceGemini
	}
	return SourceOffline
}
