package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/piwi3910/calepinage/internal/model"
	"github.com/piwi3910/calepinage/internal/project"
)

func TestParsePieceSpec(t *testing.T) {
	tests := []struct {
		spec    string
		want    model.PieceType
		wantErr bool
	}{
		{spec: "Side:720x560:2", want: model.NewPieceType("Side", 720, 560, 2)},
		{spec: "Shelf:764X540", want: model.NewPieceType("Shelf", 764, 540, 1)},
		{spec: " Door : 700.5 x 396 : 4", want: model.NewPieceType("Door", 700.5, 396, 4)},
		{spec: ":100x50", want: model.NewPieceType("", 100, 50, 1)},
		{spec: "Side", wantErr: true},
		{spec: "Side:720", wantErr: true},
		{spec: "Side:axb", wantErr: true},
		{spec: "Side:720x560:two", wantErr: true},
		{spec: "Side:1x2:3:4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parsePieceSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

// parsedInputs registers the input flags on a bare command and parses args.
func parsedInputs(t *testing.T, args ...string) (*inputFlags, *cobra.Command) {
	t.Helper()
	in := &inputFlags{}
	cmd := &cobra.Command{Use: "test"}
	in.register(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	return in, cmd
}

func TestResolveUsesConfigDefaults(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.DefaultKerf = 2
	cfg.DefaultGCodeProfile = "Grbl"

	in, cmd := parsedInputs(t, "--piece", "A:100x50")
	j, err := in.resolve(context.Background(), cmd, cfg)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if j.Stock != cfg.DefaultStock() {
		t.Errorf("expected default stock, got %+v", j.Stock)
	}
	if j.Settings.Kerf != 2 || j.Settings.GCodeProfile != "Grbl" {
		t.Errorf("config defaults not applied: %+v", j.Settings)
	}
	if j.Name != "Untitled" || len(j.Pieces) != 1 {
		t.Errorf("unexpected job %+v", j)
	}
}

func TestResolveFlagsOverrideProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cabinet.json")
	p := model.NewProject()
	p.Name = "Cabinet"
	p.Stock = model.NewStock(1250, 2500)
	p.Settings.Kerf = 3
	p.Pieces = []model.PieceType{model.NewPieceType("Side", 720, 560, 2)}
	if err := project.SaveProject(path, p); err != nil {
		t.Fatal(err)
	}

	in, cmd := parsedInputs(t, "--project", path, "--kerf", "5", "--stock-length", "3000",
		"--piece", "Top:800x560", "--profile", "Mach3")
	j, err := in.resolve(context.Background(), cmd, model.DefaultAppConfig())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if j.Name != "Cabinet" {
		t.Errorf("expected project name, got %q", j.Name)
	}
	if j.Settings.Kerf != 5 {
		t.Errorf("expected --kerf to win, got %v", j.Settings.Kerf)
	}
	if j.Stock.Width != 1250 || j.Stock.Length != 3000 || j.Stock.Label != "3000 x 1250" {
		t.Errorf("expected width from project and length from flag, got %+v", j.Stock)
	}
	if j.Settings.GCodeProfile != "Mach3" {
		t.Errorf("expected --profile to win, got %q", j.Settings.GCodeProfile)
	}
	if len(j.Pieces) != 2 || j.Pieces[1].Label != "Top" {
		t.Errorf("expected project rows then --piece rows, got %+v", j.Pieces)
	}
}

func TestResolveErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	tests := []struct {
		name string
		args []string
	}{
		{"no pieces", nil},
		{"bad piece", []string{"--piece", "nonsense"}},
		{"missing project", []string{"--project", missing + ".json"}},
		{"missing import", []string{"--input", missing + ".csv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, cmd := parsedInputs(t, tt.args...)
			if _, err := in.resolve(context.Background(), cmd, model.DefaultAppConfig()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
