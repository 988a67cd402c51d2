package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Miyamura80/appctl/internal/engine"
)

// DoctorOptions holds flags for the doctor command.
type DoctorOptions struct {
	JSON bool
	Out  string
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Collect environment facts and emit an env report",
		Long: `Collect environment facts (OS, kernel, user, display, proxies) and emit
a diagnostic report.

Examples:
  appctl doctor
  appctl doctor --json
  appctl doctor --out /tmp/doctor.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output as JSON")
	cmd.Flags().StringVar(&opts.Out, "out", "", "write result JSON to this path")

	return cmd
}

func runDoctor(opts *DoctorOptions, cmd *cobra.Command) error {
	result := engine.RunDoctor()

	if opts.Out != "" {
		if data, err := json.MarshalIndent(result, "", "  "); err == nil {
			if err := os.WriteFile(opts.Out, data, 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to write result to %s: %v\n", opts.Out, err)
			}
		}
	}

	return outputResult(cmd.OutOrStdout(), result, opts.JSON)
}
