package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Miyamura80/appctl/internal/engine"
	"github.com/Miyamura80/appctl/internal/scenario"
)

// RunScenarioOptions holds flags for the run-scenario command.
type RunScenarioOptions struct {
	JSON      bool
	Artifacts string
}

// NewRunScenarioCommand creates the run-scenario command.
func NewRunScenarioCommand(app *engine.AppContext, registry *engine.Registry) *cobra.Command {
	opts := &RunScenarioOptions{}

	cmd := &cobra.Command{
		Use:   "run-scenario <file>",
		Short: "Run a scripted scenario from a YAML file",
		Long: `Run a scripted scenario from a YAML file. Steps are executed strictly in
order with no short-circuit on failure; the aggregate verdict is pass or
fail.

Example scenario:
  name: smoke
  steps:
    - call: ping
      args: {}
      expect_status: pass
    - probe: filesystem`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioFile(opts, args[0], app, registry, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output as JSON")
	cmd.Flags().StringVar(&opts.Artifacts, "artifacts", "", "directory for artifacts output")

	return cmd
}

func runScenarioFile(opts *RunScenarioOptions, path string, app *engine.AppContext, registry *engine.Registry, cmd *cobra.Command) error {
	data, err := os.ReadFile(path)
	if err != nil {
		result := engine.ResultErr("run-scenario", path, engine.NewRunID(), 0,
			engine.CodeIoError, fmt.Sprintf("cannot read scenario file: %v", err))
		return outputResult(cmd.OutOrStdout(), result, opts.JSON)
	}

	scen, err := scenario.Load(data)
	if err != nil {
		result := engine.ResultErr("run-scenario", path, engine.NewRunID(), 0,
			engine.CodeInvalidInput, err.Error())
		return outputResult(cmd.OutOrStdout(), result, opts.JSON)
	}

	scenarioResult := scenario.Run(cmd.Context(), scen, app, registry)

	w := cmd.OutOrStdout()
	if opts.JSON {
		if data, err := json.MarshalIndent(scenarioResult, "", "  "); err == nil {
			fmt.Fprintln(w, string(data))
		}
	} else {
		name := scenarioResult.Name
		if name == "" {
			name = "<unnamed>"
		}
		fmt.Fprintf(w, "Scenario: %s\n", name)
		fmt.Fprintf(w, "Overall: %s\n", statusLabel(scenarioResult.OverallStatus))
		for i, sr := range scenarioResult.StepResults {
			fmt.Fprintf(w, "  Step %d: %s -> %s (%dms)\n", i, sr.Target, statusLabel(sr.Status), sr.Timing.Total)
		}
	}

	if opts.Artifacts != "" {
		events := make([]any, len(scenarioResult.StepResults))
		for i, sr := range scenarioResult.StepResults {
			events[i] = sr
		}
		writeArtifacts(opts.Artifacts, engine.NewRunID(), scenarioResult, events)
	}

	return statusExitError(scenarioResult.OverallStatus)
}
