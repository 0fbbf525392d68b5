package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/calepinage/internal/model"
)

func TestSaveAndLoadCustomProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.toml")

	profiles := []model.GCodeProfile{
		{
			Name:          "Shapeoko",
			Description:   "Carbide Motion",
			StartCode:     []string{"G90", "G21"},
			SpindleStart:  "M3 S%d",
			SpindleStop:   "M5",
			RapidMove:     "G0",
			FeedMove:      "G1",
			EndCode:       []string{"M5", "M2"},
			CommentPrefix: ";",
			DecimalPlaces: 3,
		},
		{
			Name:          "Fanuc",
			RapidMove:     "G00",
			FeedMove:      "G01",
			CommentPrefix: "(",
			CommentSuffix: ")",
			DecimalPlaces: 4,
		},
	}

	if err := SaveCustomProfiles(path, profiles); err != nil {
		t.Fatalf("SaveCustomProfiles failed: %v", err)
	}

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("LoadCustomProfiles failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(loaded))
	}
	if loaded[0].Name != "Shapeoko" || len(loaded[0].StartCode) != 2 {
		t.Errorf("unexpected first profile %+v", loaded[0])
	}
	if loaded[1].CommentSuffix != ")" || loaded[1].RapidMove != "G00" {
		t.Errorf("unexpected second profile %+v", loaded[1])
	}
}

func TestLoadCustomProfilesDefaultsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.toml")
	content := `[[profile]]
name = "Minimal"
spindle_start = "M3 S%d"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("LoadCustomProfiles failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(loaded))
	}
	p := loaded[0]
	if p.RapidMove != "G0" || p.FeedMove != "G1" || p.CommentPrefix != ";" || p.DecimalPlaces != 3 {
		t.Errorf("expected Generic defaults, got %+v", p)
	}
}

func TestLoadCustomProfilesMissingFile(t *testing.T) {
	loaded, err := LoadCustomProfiles(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if loaded == nil || len(loaded) != 0 {
		t.Errorf("expected an empty slice, got %v", loaded)
	}
}

func TestLoadCustomProfilesRejectsNamelessProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.toml")
	if err := os.WriteFile(path, []byte("[[profile]]\ndescription = \"no name\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCustomProfiles(path); err == nil {
		t.Fatal("expected an error for a profile without name")
	}
}
