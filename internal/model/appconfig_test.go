package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultKerf != defaults.Kerf {
		t.Errorf("Kerf mismatch: config=%f settings=%f", cfg.DefaultKerf, defaults.Kerf)
	}
	if cfg.DefaultToolDiameter != defaults.ToolDiameter {
		t.Errorf("ToolDiameter mismatch: config=%f settings=%f", cfg.DefaultToolDiameter, defaults.ToolDiameter)
	}
	if cfg.DefaultGCodeProfile != defaults.GCodeProfile {
		t.Errorf("GCodeProfile mismatch: config=%s settings=%s", cfg.DefaultGCodeProfile, defaults.GCodeProfile)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultKerf = 2.5
	cfg.DefaultFeedRate = 2000
	cfg.DefaultGCodeProfile = "Grbl"

	var s CutSettings
	cfg.ApplyToSettings(&s)

	if s.Kerf != 2.5 {
		t.Errorf("expected kerf 2.5, got %f", s.Kerf)
	}
	if s.FeedRate != 2000 {
		t.Errorf("expected feed rate 2000, got %f", s.FeedRate)
	}
	if s.GCodeProfile != "Grbl" {
		t.Errorf("expected profile Grbl, got %s", s.GCodeProfile)
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentProject("a.json", 3)
	cfg.AddRecentProject("b.json", 3)
	cfg.AddRecentProject("a.json", 3)
	cfg.AddRecentProject("c.json", 3)
	cfg.AddRecentProject("d.json", 3)

	want := []string{"d.json", "c.json", "a.json"}
	if len(cfg.RecentProjects) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.RecentProjects)
	}
	for i := range want {
		if cfg.RecentProjects[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], cfg.RecentProjects[i])
		}
	}
}

func TestDefaultStock(t *testing.T) {
	cfg := DefaultAppConfig()
	s := cfg.DefaultStock()
	if s.Width != cfg.DefaultStockWidth || s.Length != cfg.DefaultStockLength {
		t.Errorf("default stock mismatch: %+v", s)
	}
}
