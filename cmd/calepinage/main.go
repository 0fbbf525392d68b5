// calepinage - panel nesting for woodworking cut lists
//
// Nests rectangular pieces onto standard stock panels and exports cutting
// plans, QR labels, spreadsheets, DXF drawings and CNC GCode.
//
// Build:
//   go build -o calepinage ./cmd/calepinage
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o calepinage.exe ./cmd/calepinage
//   GOOS=darwin  GOARCH=arm64 go build -o calepinage-darwin ./cmd/calepinage

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/calepinage/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
