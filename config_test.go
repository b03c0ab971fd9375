package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Default(t *testing.T) {
	orig := configPath
	defer func() { configPath = orig }()

	configPath = filepath.Join(t.TempDir(), "mkico", "config.json")

	cfg := loadConfig()
	if cfg != defaultConfig() {
		t.Errorf("loadConfig() = %+v, want defaults %+v", cfg, defaultConfig())
	}

	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Error("loadConfig should not create a config file")
	}
}

func TestLoadConfig_RunWritesOnlyIcon(t *testing.T) {
	orig := configPath
	defer func() { configPath = orig }()

	dir := t.TempDir()
	configPath = filepath.Join(dir, "cfg", "config.json")

	cfg := loadConfig()
	cfg.Output = filepath.Join(dir, "icon.ico")
	cfg.Encoder = "manual"
	if _, err := run(cfg); err != nil {
		t.Fatalf("run error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "icon.ico" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only icon.ico", names)
	}
}

func TestInitConfig(t *testing.T) {
	orig := configPath
	defer func() { configPath = orig }()

	configPath = filepath.Join(t.TempDir(), "mkico", "config.json")

	if err := initConfig(); err != nil {
		t.Fatalf("initConfig() error: %v", err)
	}
	if cfg := loadConfig(); cfg != defaultConfig() {
		t.Errorf("loadConfig() after init = %+v, want defaults", cfg)
	}
	if err := initConfig(); err == nil {
		t.Error("initConfig should refuse to overwrite an existing config")
	}
}

func TestLoadConfig_ExistingFile(t *testing.T) {
	orig := configPath
	defer func() { configPath = orig }()

	configPath = filepath.Join(t.TempDir(), "config.json")

	custom := Config{
		Output:  "app.ico",
		Sizes:   "16,32,48,256",
		Pattern: "gradient",
		Color:   "#ff0000",
		Encoder: "manual",
	}
	data, _ := json.MarshalIndent(custom, "", "  ")
	os.WriteFile(configPath, data, 0600)

	cfg := loadConfig()
	if cfg != custom {
		t.Errorf("loadConfig() = %+v, want %+v", cfg, custom)
	}
}

func TestLoadConfig_PartialFile(t *testing.T) {
	orig := configPath
	defer func() { configPath = orig }()

	configPath = filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(configPath, []byte(`{"pattern": "gradient"}`), 0600)

	cfg := loadConfig()
	if cfg.Pattern != "gradient" {
		t.Errorf("Pattern = %q, want gradient", cfg.Pattern)
	}
	if cfg.Sizes != "32" {
		t.Errorf("Sizes = %q, want 32 (default)", cfg.Sizes)
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	orig := configPath
	defer func() { configPath = orig }()

	configPath = filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(configPath, []byte(`{
		"output": "",
		"sizes": "0,16",
		"pattern": "plaid",
		"color": "green",
		"encoder": "pil"
	}`), 0600)

	cfg := loadConfig()
	if cfg != defaultConfig() {
		t.Errorf("loadConfig() = %+v, want every invalid field reset to %+v", cfg, defaultConfig())
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	orig := configPath
	defer func() { configPath = orig }()

	configPath = filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(configPath, []byte(`{broken`), 0600)

	cfg := loadConfig()
	if cfg != defaultConfig() {
		t.Errorf("loadConfig() = %+v, want defaults on parse error", cfg)
	}
}

func TestSaveConfig(t *testing.T) {
	orig := configPath
	defer func() { configPath = orig }()

	configPath = filepath.Join(t.TempDir(), "sub", "config.json")

	cfg := defaultConfig()
	cfg.Sizes = "16,32"
	if err := saveConfig(cfg); err != nil {
		t.Fatalf("saveConfig() error: %v", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permissions = %o, want 0600", perm)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	var loaded Config
	json.Unmarshal(data, &loaded)
	if loaded.Sizes != "16,32" {
		t.Errorf("Sizes = %q, want %q", loaded.Sizes, "16,32")
	}
}
