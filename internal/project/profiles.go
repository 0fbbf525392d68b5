package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/piwi3910/calepinage/internal/model"
)

// profileFile is the on-disk layout: one [[profile]] table per profile.
type profileFile struct {
	Profiles []model.GCodeProfile `toml:"profile"`
}

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.toml")
}

// SaveCustomProfiles saves custom profiles to a TOML file.
func SaveCustomProfiles(path string, profiles []model.GCodeProfile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(profileFile{Profiles: profiles}); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// LoadCustomProfiles loads custom profiles from a TOML file.
// Returns an empty slice if the file does not exist. Every profile needs a
// name; unset move commands and comment syntax default to the Generic ones.
func LoadCustomProfiles(path string) ([]model.GCodeProfile, error) {
	var file profileFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.GCodeProfile{}, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	generic := model.GetProfile("Generic")
	for i := range file.Profiles {
		p := &file.Profiles[i]
		if p.Name == "" {
			return nil, fmt.Errorf("parse %s: profile %d has no name", path, i+1)
		}
		if p.RapidMove == "" {
			p.RapidMove = generic.RapidMove
		}
		if p.FeedMove == "" {
			p.FeedMove = generic.FeedMove
		}
		if p.CommentPrefix == "" {
			p.CommentPrefix = generic.CommentPrefix
		}
		if p.DecimalPlaces <= 0 {
			p.DecimalPlaces = generic.DecimalPlaces
		}
	}
	if file.Profiles == nil {
		file.Profiles = []model.GCodeProfile{}
	}
	return file.Profiles, nil
}
