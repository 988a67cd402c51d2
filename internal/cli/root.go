// Package cli wires the harness engine to its cobra command surface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Miyamura80/appctl/internal/config"
	"github.com/Miyamura80/appctl/internal/engine"
)

// NewRootCommand creates the root command for the appctl CLI.
func NewRootCommand(app *engine.AppContext, registry *engine.Registry, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appctl",
		Short: "Headless CLI test harness",
		Long: `appctl exercises the application backend's OS capabilities (filesystem,
network, clipboard) without a window server, for VM and CI compatibility
testing.

Exit codes:
  0 - pass or skip
  1 - fail (scenario expectation mismatch)
  2 - error`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewDoctorCommand())
	cmd.AddCommand(NewCallCommand(app, registry))
	cmd.AddCommand(NewProbeCommand(app))
	cmd.AddCommand(NewRunScenarioCommand(app, registry))
	cmd.AddCommand(NewServeCommand(app, registry, cfg))
	cmd.AddCommand(NewEmitCommand(app))

	return cmd
}
