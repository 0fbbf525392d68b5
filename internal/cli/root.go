// Package cli implements the calepinage command-line interface.
//
// The commands read a cut list from a project file, a CSV/Excel/DXF import
// or --piece flags, nest it onto stock panels and write the requested
// reports:
//   - pack: build the plan, print it and export PDF, labels, XLSX, DXF, GCode
//   - compare: pack the same cut list under what-if settings
//   - config: show, create or locate the TOML preferences file
//   - view: draw the plan in a desktop window
//
// All commands support --verbose (-v) for debug logging. The logger is
// carried through context.Context.
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/calepinage/internal/project"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version, usually
// from values injected with ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbose    bool
	configPath string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "calepinage",
		Short:         "Calepinage nests woodworking cut lists onto stock panels",
		Long:          `Calepinage computes how to cut a list of rectangular pieces out of standard stock panels using as few panels as possible, then exports cutting plans, labels, spreadsheets, DXF drawings and CNC programs.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if g.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("calepinage %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&g.configPath, "config", project.DefaultConfigPath(), "preferences file")

	root.AddCommand(newPackCmd(g))
	root.AddCommand(newCompareCmd(g))
	root.AddCommand(newConfigCmd(g))
	root.AddCommand(newViewCmd(g))

	return root
}

// Execute runs the CLI until the command finishes or ctx is cancelled.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
