package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/calepinage/internal/engine"
	"github.com/piwi3910/calepinage/internal/gcode"
	"github.com/piwi3910/calepinage/internal/model"
	"github.com/piwi3910/calepinage/internal/project"
	"github.com/piwi3910/calepinage/internal/ui"
)

func newViewCmd(g *globalFlags) *cobra.Command {
	var (
		in        inputFlags
		toolpaths bool
	)

	cmd := &cobra.Command{
		Use:   "view [project.json]",
		Short: "Draw the packed panels in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				in.project = args[0]
			}

			cfg, err := loadConfig(ctx, g)
			if err != nil {
				return err
			}
			j, err := in.resolve(ctx, cmd, cfg)
			if err != nil {
				return err
			}
			plan, err := engine.BuildPlan(j.Pieces, j.Stock, j.Settings.Kerf)
			if err != nil {
				return err
			}

			var codes []string
			if toolpaths {
				custom, err := project.LoadCustomProfiles(profilesPath(g))
				if err != nil {
					return err
				}
				gen := gcode.NewWithProfile(j.Settings, model.FindProfile(j.Settings.GCodeProfile, custom))
				if err := gen.CheckClearance(); err != nil {
					loggerFromContext(ctx).Warn("Toolpaths cut into neighbouring pieces", "err", err)
				}
				codes = gen.GenerateAll(plan)
			}

			loggerFromContext(ctx).Info("Opening viewer", "panels", plan.Summary.PanelCount)
			ui.ShowLayout(j.Name, plan, codes)
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&toolpaths, "toolpaths", false, "add a tab previewing the GCode of each panel")
	return cmd
}
