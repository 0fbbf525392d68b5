package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/calepinage/internal/model"
)

// SaveProject writes p as indented JSON, creating parent directories.
func SaveProject(path string, p model.Project) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProject reads a project file. Fields missing from the file keep the
// values of model.NewProject, and a blank name becomes "Untitled".
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}

	p := model.NewProject()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project %s: %w", path, err)
	}

	if strings.TrimSpace(p.Name) == "" {
		p.Name = "Untitled"
	}
	if p.Pieces == nil {
		p.Pieces = []model.PieceType{}
	}
	if p.Stock.Label == "" {
		p.Stock = model.NewStock(p.Stock.Width, p.Stock.Length)
	}
	return p, nil
}
