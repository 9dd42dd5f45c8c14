package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultPlainswareNumberPattern is the validation rule applied to
// plainsware_number when PLAINSWARE_NUMBER_PATTERN is not set: "JJMD-"
// followed by exactly seven digits, matched case-insensitively.
const DefaultPlainswareNumberPattern = `(?i)^JJMD-\d{7}$`

// Config carries everything read from the environment at startup.
type Config struct {
	DatabasePath      string
	Addr              string
	APIKey            string
	PlainswarePattern *regexp.Regexp
}

// Load reads configuration from the environment, applying defaults.
// An unset API_KEY is replaced with a generated one, logged once so a
// single-user deployment can pick it up.
func Load() (*Config, error) {
	cfg := &Config{
		DatabasePath: envOr("PORTFOLIO_DB", "portfolio.db"),
		Addr:         envOr("ADDR", ":8080"),
		APIKey:       os.Getenv("API_KEY"),
	}

	if cfg.APIKey == "" {
		cfg.APIKey = fmt.Sprintf("portfolio_%s", uuid.New().String())
		logrus.WithField("api_key", cfg.APIKey).Warn("API_KEY not set, generated one for this run")
	}

	pattern := envOr("PLAINSWARE_NUMBER_PATTERN", DefaultPlainswareNumberPattern)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid PLAINSWARE_NUMBER_PATTERN: %w", err)
	}
	cfg.PlainswarePattern = re

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
