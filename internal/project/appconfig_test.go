package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/calepinage/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := model.DefaultAppConfig()
	cfg.DefaultKerf = 3.2
	cfg.DefaultStockWidth = 1250
	cfg.DefaultGCodeProfile = "Grbl"
	cfg.RecentProjects = []string{"/tmp/kitchen.json", "/tmp/shelves.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultKerf != 3.2 {
		t.Errorf("expected DefaultKerf=3.2, got %f", loaded.DefaultKerf)
	}
	if loaded.DefaultStockWidth != 1250 {
		t.Errorf("expected DefaultStockWidth=1250, got %f", loaded.DefaultStockWidth)
	}
	if loaded.DefaultGCodeProfile != "Grbl" {
		t.Errorf("expected profile Grbl, got %s", loaded.DefaultGCodeProfile)
	}
	if len(loaded.RecentProjects) != 2 {
		t.Errorf("expected 2 recent projects, got %d", len(loaded.RecentProjects))
	}
}

func TestSaveAppConfigWritesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "config.toml")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file was not created: %v", err)
	}
	if !strings.Contains(string(data), "default_stock_length = 2440") {
		t.Errorf("expected snake_case TOML keys, got:\n%s", data)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.toml")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultKerf != defaults.DefaultKerf {
		t.Errorf("expected default kerf %f, got %f", defaults.DefaultKerf, cfg.DefaultKerf)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("default_kerf = 2.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.DefaultKerf != 2.5 {
		t.Errorf("expected kerf 2.5, got %f", cfg.DefaultKerf)
	}
	if cfg.DefaultStockLength != 2440 {
		t.Errorf("expected default stock length to survive, got %f", cfg.DefaultStockLength)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil after loading")
	}
}

func TestLoadAppConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid syntax", "not valid toml {{{"},
		{"wrong type", "default_kerf = \"thin\"\n"},
		{"unknown key", "default_kerff = 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadAppConfig(path); err == nil {
				t.Fatal("expected an error, got nil")
			}
		})
	}
}
