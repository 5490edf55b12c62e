package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds configuration loaded from the environment. A .env file in
// the working directory is read first; real environment variables win.
type Config struct {
	GeminiAPIKey string  `env:"GEMINI_API_KEY"`
	DocumentPath string  `env:"SECONDBRAIN_DOC" envDefault:"knowledge.md"`
	DBPath       string  `env:"SECONDBRAIN_DB"`
	ChatModel    string  `env:"SECONDBRAIN_CHAT_MODEL"`
	EmbedModel   string  `env:"SECONDBRAIN_EMBED_MODEL"`
	TopK         int     `env:"SECONDBRAIN_TOP_K" envDefault:"5"`
	EmbedRPS     float64 `env:"SECONDBRAIN_EMBED_RPS" envDefault:"2"`
	Addr         string  `env:"SECONDBRAIN_ADDR" envDefault:":8080"`
	LogLevel     string  `env:"SECONDBRAIN_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads configuration from .env and the environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	return cfg, nil
}

// SlogLevel maps the configured log level onto slog.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "secondbrain.db"
	}
	dir := filepath.Join(home, ".secondbrain")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "secondbrain.db")
}
