package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Config holds the generator settings.
type Config struct {
	Output  string `json:"output"`
	Sizes   string `json:"sizes"`
	Pattern string `json:"pattern"`
	Color   string `json:"color,omitempty"` // empty keeps the pattern's own colour
	Encoder string `json:"encoder"`
}

var configPath string

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	configPath = filepath.Join(home, ".config", "mkico", "config.json")
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Output:  "icon.ico",
		Sizes:   "32",
		Pattern: patternSolid,
		Encoder: encoderAuto,
	}
}

// loadConfig loads config from disk. A missing file means defaults; it is
// only created by initConfig.
// Missing fields keep their defaults via json.Unmarshal into a pre-populated struct.
func loadConfig() Config {
	cfg := defaultConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read config %s: %v", configPath, err)
		}
		return cfg
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("Failed to parse config %s: %v", configPath, err)
		return defaultConfig()
	}

	defaults := defaultConfig()
	if cfg.Output == "" {
		log.Printf("Empty output in config, using default %q", defaults.Output)
		cfg.Output = defaults.Output
	}
	if !validSizes(cfg.Sizes) {
		log.Printf("Invalid sizes %q in config, using default %q", cfg.Sizes, defaults.Sizes)
		cfg.Sizes = defaults.Sizes
	}
	if !ValidPatternName(cfg.Pattern) {
		log.Printf("Unknown pattern %q in config, using default %q", cfg.Pattern, defaults.Pattern)
		cfg.Pattern = defaults.Pattern
	}
	if cfg.Color != "" && !validColor(cfg.Color) {
		log.Printf("Invalid color %q in config, using the pattern default", cfg.Color)
		cfg.Color = ""
	}
	if !ValidEncoderName(cfg.Encoder) {
		log.Printf("Unknown encoder %q in config, using default %q", cfg.Encoder, defaults.Encoder)
		cfg.Encoder = defaults.Encoder
	}

	return cfg
}

// initConfig writes the default config unless a config file already exists.
func initConfig() error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config %s already exists", configPath)
	}
	return saveConfig(defaultConfig())
}

// saveConfig writes config to disk.
func saveConfig(cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	return os.WriteFile(configPath, data, 0600)
}
