package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/calepinage/internal/importer"
	"github.com/piwi3910/calepinage/internal/model"
	"github.com/piwi3910/calepinage/internal/project"
)

// inputFlags collects the cut-list sources and overrides shared by pack,
// compare and view.
type inputFlags struct {
	project     string
	input       string
	pieces      []string
	stockWidth  float64
	stockLength float64
	kerf        float64
	profile     string
}

func (in *inputFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&in.project, "project", "p", "", "project file to load")
	f.StringVarP(&in.input, "input", "i", "", "cut list to import (.csv, .xlsx, .dxf)")
	f.StringArrayVar(&in.pieces, "piece", nil, `piece as "label:LxW[:qty]", repeatable`)
	f.Float64Var(&in.stockWidth, "stock-width", 0, "stock panel width in mm (default from config)")
	f.Float64Var(&in.stockLength, "stock-length", 0, "stock panel length in mm (default from config)")
	f.Float64Var(&in.kerf, "kerf", 0, "saw kerf in mm (default from config)")
	f.StringVar(&in.profile, "profile", "", "GCode profile name (default from config)")
}

// job is a resolved cut list ready for the planner.
type job struct {
	Name     string
	Stock    model.Stock
	Settings model.CutSettings
	Pieces   []model.PieceType
}

// Project returns the job as a saveable project.
func (j job) Project() model.Project {
	p := model.NewProject()
	p.Name = j.Name
	p.Stock = j.Stock
	p.Settings = j.Settings
	p.Pieces = j.Pieces
	return p
}

// resolve merges config defaults, the project file, the import and the
// --piece flags, in that order. Explicit stock and kerf flags win.
func (in *inputFlags) resolve(ctx context.Context, cmd *cobra.Command, cfg model.AppConfig) (job, error) {
	logger := loggerFromContext(ctx)

	j := job{Name: "Untitled", Stock: cfg.DefaultStock(), Settings: model.DefaultSettings()}
	cfg.ApplyToSettings(&j.Settings)

	if in.project != "" {
		p, err := project.LoadProject(in.project)
		if err != nil {
			return job{}, fmt.Errorf("load project %s: %w", in.project, err)
		}
		logger.Debug("Loaded project", "name", p.Name, "rows", len(p.Pieces))
		j.Name, j.Stock, j.Settings = p.Name, p.Stock, p.Settings
		j.Pieces = append(j.Pieces, p.Pieces...)
	}

	if in.input != "" {
		res := importer.ImportFile(in.input)
		for _, w := range res.Warnings {
			logger.Warn(w, "file", in.input)
		}
		for _, e := range res.Errors {
			logger.Error(e, "file", in.input)
		}
		if len(res.Pieces) == 0 {
			return job{}, fmt.Errorf("import %s: no valid pieces", in.input)
		}
		logger.Debug("Imported cut list", "rows", len(res.Pieces), "pieces", res.TotalPieces())
		if in.project == "" {
			j.Name = strings.TrimSuffix(filepath.Base(in.input), filepath.Ext(in.input))
		}
		j.Pieces = append(j.Pieces, res.Pieces...)
	}

	for _, spec := range in.pieces {
		pt, err := parsePieceSpec(spec)
		if err != nil {
			return job{}, err
		}
		j.Pieces = append(j.Pieces, pt)
	}

	flags := cmd.Flags()
	if flags.Changed("stock-width") || flags.Changed("stock-length") {
		w, l := j.Stock.Width, j.Stock.Length
		if flags.Changed("stock-width") {
			w = in.stockWidth
		}
		if flags.Changed("stock-length") {
			l = in.stockLength
		}
		j.Stock = model.NewStock(w, l)
	}
	if flags.Changed("kerf") {
		j.Settings.Kerf = in.kerf
	}
	if flags.Changed("profile") {
		j.Settings.GCodeProfile = in.profile
	}

	if len(j.Pieces) == 0 {
		return job{}, errors.New("no pieces: use --project, --input or --piece")
	}
	if j.Settings.Kerf == 0 {
		logger.Warn("Kerf is 0, pieces are packed without saw clearance")
	}
	return j, nil
}

// parsePieceSpec parses "label:LxW" or "label:LxW:qty". The label may be
// empty, in which case the planner names the row.
func parsePieceSpec(spec string) (model.PieceType, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return model.PieceType{}, fmt.Errorf("invalid piece %q: want label:LxW[:qty]", spec)
	}

	dims := strings.Split(strings.ToLower(parts[1]), "x")
	if len(dims) != 2 {
		return model.PieceType{}, fmt.Errorf("invalid piece %q: size must be LxW", spec)
	}
	length, err := strconv.ParseFloat(strings.TrimSpace(dims[0]), 64)
	if err != nil {
		return model.PieceType{}, fmt.Errorf("invalid piece %q: length: %w", spec, err)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(dims[1]), 64)
	if err != nil {
		return model.PieceType{}, fmt.Errorf("invalid piece %q: width: %w", spec, err)
	}

	qty := 1
	if len(parts) == 3 {
		qty, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return model.PieceType{}, fmt.Errorf("invalid piece %q: quantity: %w", spec, err)
		}
	}

	return model.NewPieceType(strings.TrimSpace(parts[0]), length, width, qty), nil
}

// loadConfig reads the preferences file named by --config.
func loadConfig(ctx context.Context, g *globalFlags) (model.AppConfig, error) {
	cfg, err := project.LoadAppConfig(g.configPath)
	if err != nil {
		return model.AppConfig{}, err
	}
	loggerFromContext(ctx).Debug("Loaded config", "path", g.configPath)
	return cfg, nil
}

// profilesPath keeps custom GCode profiles next to the preferences file.
func profilesPath(g *globalFlags) string {
	return filepath.Join(filepath.Dir(g.configPath), "profiles.toml")
}
