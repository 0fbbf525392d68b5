package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/calepinage/internal/engine"
)

func newCompareCmd(g *globalFlags) *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare panel usage under alternative stock and kerf settings",
		Long: `Pack the same cut list under the current settings, with the stock turned
a quarter turn, with half the kerf and without kerf, and print the panels
used by each. Scenarios that cannot be packed show the reason.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx, g)
			if err != nil {
				return err
			}
			j, err := in.resolve(ctx, cmd, cfg)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			scenarios := engine.BuildDefaultScenarios(j.Stock, j.Settings.Kerf)
			results := engine.CompareScenarios(scenarios, j.Pieces)
			prog.done(fmt.Sprintf("Compared %d scenarios", len(results)))

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, styleTitle.Render(j.Name))
			fmt.Fprintln(w, comparisonTable(results).Render())

			best := -1
			for i, r := range results {
				if r.Err == nil && (best < 0 || r.PanelsUsed < results[best].PanelsUsed) {
					best = i
				}
			}
			switch {
			case best < 0:
				return fmt.Errorf("no scenario could be packed: %w", results[0].Err)
			case best == 0:
				printSuccess(w, "Current settings already use the fewest panels (%d)", results[0].PanelsUsed)
			default:
				printWarning(w, "%s saves %d panels", results[best].Scenario.Name,
					savedPanels(results[0], results[best]))
			}
			return nil
		},
	}

	in.register(cmd)
	return cmd
}

// savedPanels returns how many panels alt saves over base. A base that
// failed to pack counts as saving all of alt's success.
func savedPanels(base, alt engine.ComparisonResult) int {
	if base.Err != nil {
		return alt.PanelsUsed
	}
	return base.PanelsUsed - alt.PanelsUsed
}
