package cli

import (
	"github.com/spf13/cobra"

	"github.com/Miyamura80/appctl/internal/engine"
)

// ProbeOptions holds flags for the probe command.
type ProbeOptions struct {
	JSON      bool
	Artifacts string
}

// NewProbeCommand creates the probe command.
func NewProbeCommand(app *engine.AppContext) *cobra.Command {
	opts := &ProbeOptions{}

	cmd := &cobra.Command{
		Use:   "probe <target>",
		Short: "Run a targeted capability check",
		Long: `Run a targeted capability check: filesystem, network, or clipboard.

Examples:
  appctl probe filesystem
  appctl probe network --json
  appctl probe clipboard --artifacts ./out`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := engine.RunProbe(cmd.Context(), args[0], app)
			if opts.Artifacts != "" {
				writeArtifacts(opts.Artifacts, result.RunID, result, []any{result})
			}
			return outputResult(cmd.OutOrStdout(), result, opts.JSON)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output as JSON")
	cmd.Flags().StringVar(&opts.Artifacts, "artifacts", "", "directory for artifacts output")

	return cmd
}
