package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/calepinage/internal/engine"
	"github.com/piwi3910/calepinage/internal/export"
	"github.com/piwi3910/calepinage/internal/gcode"
	"github.com/piwi3910/calepinage/internal/model"
	"github.com/piwi3910/calepinage/internal/project"
)

// packOutputs names the files the pack command writes. Empty means skip.
type packOutputs struct {
	pdf      string
	labels   string
	xlsx     string
	dxf      string
	gcodeDir string
	json     string
	save     string
}

func newPackCmd(g *globalFlags) *cobra.Command {
	var (
		in  inputFlags
		out packOutputs
	)

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Nest a cut list onto stock panels",
		Long: `Nest a cut list onto stock panels and print the resulting plan.

Pieces come from a project file (--project), an imported cut list (--input)
and --piece flags, in that order. Each piece is grown by the kerf on both
sides before packing. Exports are written only for the flags given.`,
		Example: `  calepinage pack --piece "Side:720x560:2" --piece "Shelf:764x540:3" --pdf plan.pdf
  calepinage pack -i cutlist.csv --stock-width 1250 --stock-length 2500 --gcode out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd.Context(), cmd, g, &in, out)
		},
	}

	in.register(cmd)
	f := cmd.Flags()
	f.StringVar(&out.pdf, "pdf", "", "write the cutting plan PDF")
	f.StringVar(&out.labels, "labels", "", "write QR piece labels PDF")
	f.StringVar(&out.xlsx, "xlsx", "", "write the cut list workbook")
	f.StringVar(&out.dxf, "dxf", "", "write the layout drawing DXF")
	f.StringVar(&out.gcodeDir, "gcode", "", "write one GCode program per panel into this directory")
	f.StringVar(&out.json, "json", "", "write the plan as JSON")
	f.StringVar(&out.save, "save", "", "save the resolved cut list as a project file")

	return cmd
}

func runPack(ctx context.Context, cmd *cobra.Command, g *globalFlags, in *inputFlags, out packOutputs) error {
	logger := loggerFromContext(ctx)
	w := cmd.OutOrStdout()

	cfg, err := loadConfig(ctx, g)
	if err != nil {
		return err
	}
	j, err := in.resolve(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	if out.gcodeDir != "" {
		// Fail before any export is written.
		if err := gcode.New(j.Settings).CheckClearance(); err != nil {
			return err
		}
	}

	prog := newProgress(logger)
	plan, err := engine.BuildPlan(j.Pieces, j.Stock, j.Settings.Kerf)
	if err != nil {
		var unplaceable *model.UnplaceablePieceError
		if errors.As(err, &unplaceable) {
			pc := unplaceable.Piece
			printError(w, "%q needs %.1f x %.1f mm (%.1f x %.1f with kerf), stock is %s mm",
				pc.Label, pc.Length-j.Settings.Kerf, pc.Width-j.Settings.Kerf, pc.Length, pc.Width, j.Stock.Label)
		}
		return err
	}
	prog.done(fmt.Sprintf("Packed %d pieces on %d panels", plan.Summary.PieceCount, plan.Summary.PanelCount))

	est := model.EstimatePanels(j.Pieces, j.Stock, j.Settings.Kerf, cfg.WastePercent)
	printPlan(w, j.Name, plan, est)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var written []string
	for _, e := range []struct {
		path  string
		write func(string, model.Plan) error
	}{
		{out.pdf, export.ExportPDF},
		{out.labels, export.ExportLabels},
		{out.xlsx, export.ExportExcel},
		{out.dxf, export.ExportDXF},
		{out.json, writePlanJSON},
	} {
		if e.path == "" {
			continue
		}
		if err := e.write(e.path, plan); err != nil {
			return fmt.Errorf("write %s: %w", e.path, err)
		}
		logger.Debug("Wrote export", "path", e.path)
		written = append(written, e.path)
	}

	if out.gcodeDir != "" {
		files, err := writeGCode(ctx, g, out.gcodeDir, plan, j.Settings)
		if err != nil {
			return err
		}
		written = append(written, files...)
	}

	if out.save != "" {
		if err := saveJob(ctx, g, cfg, out.save, j); err != nil {
			return err
		}
		written = append(written, out.save)
	}

	if len(written) > 0 {
		fmt.Fprintln(w)
		printSuccess(w, "Wrote %d files", len(written))
		for _, path := range written {
			printFile(w, path)
		}
	}
	return nil
}

// writeGCode writes panel_01.gcode, panel_02.gcode, ... into dir using the
// configured profile, custom profiles included.
func writeGCode(ctx context.Context, g *globalFlags, dir string, plan model.Plan, settings model.CutSettings) ([]string, error) {
	logger := loggerFromContext(ctx)

	custom, err := project.LoadCustomProfiles(profilesPath(g))
	if err != nil {
		return nil, err
	}
	profile := model.FindProfile(settings.GCodeProfile, custom)
	if profile.Name != settings.GCodeProfile {
		logger.Warn("Unknown GCode profile, using "+profile.Name, "profile", settings.GCodeProfile)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	gen := gcode.NewWithProfile(settings, profile)
	var files []string
	for i, code := range gen.GenerateAll(plan) {
		path := filepath.Join(dir, fmt.Sprintf("panel_%02d.gcode", i+1))
		if err := os.WriteFile(path, []byte(code), 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		stats := gcode.Analyze(code)
		logger.Info("Wrote GCode", "panel", i+1, "plunges", stats.Plunges,
			"cut_m", fmt.Sprintf("%.1f", stats.CutLength/1000), "minutes", fmt.Sprintf("%.1f", stats.CutMinutes))
		files = append(files, path)
	}
	return files, nil
}

func writePlanJSON(path string, plan model.Plan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// saveJob saves the project and records it in the recent list.
func saveJob(ctx context.Context, g *globalFlags, cfg model.AppConfig, path string, j job) error {
	if err := project.SaveProject(path, j.Project()); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	cfg.AddRecentProject(path, 10)
	if err := project.SaveAppConfig(g.configPath, cfg); err != nil {
		loggerFromContext(ctx).Warn("Could not update recent projects", "err", err)
	}
	return nil
}
