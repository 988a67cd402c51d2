package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Miyamura80/appctl/internal/engine"
)

// CallOptions holds flags for the call command.
type CallOptions struct {
	Args      string
	JSON      bool
	Timeout   string
	Artifacts string
}

// NewCallCommand creates the call command.
func NewCallCommand(app *engine.AppContext, registry *engine.Registry) *cobra.Command {
	opts := &CallOptions{}

	cmd := &cobra.Command{
		Use:   "call <cmd>",
		Short: "Invoke a registered command by name with JSON args",
		Long: fmt.Sprintf(`Invoke a registered command by name with JSON args.

Registered commands: %s

Examples:
  appctl call ping
  appctl call read_file --args '{"path":"/etc/hostname"}'
  appctl call write_file --args '{"path":"/tmp/x","content":"hi"}' --json`,
			strings.Join(registry.List(), ", ")),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(opts, args[0], app, registry, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Args, "args", "{}", "JSON args to pass to the command")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output as JSON")
	cmd.Flags().StringVar(&opts.Timeout, "timeout", "", "timeout duration (informational)")
	cmd.Flags().StringVar(&opts.Artifacts, "artifacts", "", "directory for artifacts output")

	return cmd
}

func runCall(opts *CallOptions, name string, app *engine.AppContext, registry *engine.Registry, cmd *cobra.Command) error {
	var argsMap map[string]any
	if err := json.Unmarshal([]byte(opts.Args), &argsMap); err != nil {
		result := engine.ResultErr("call", name, engine.NewRunID(), 0,
			engine.CodeInvalidInput, fmt.Sprintf("invalid JSON args: %v", err))
		return outputResult(cmd.OutOrStdout(), result, opts.JSON)
	}
	if argsMap == nil {
		argsMap = map[string]any{}
	}

	result := registry.Execute(name, argsMap, app)
	if opts.Artifacts != "" {
		writeArtifacts(opts.Artifacts, result.RunID, result, []any{result})
	}
	return outputResult(cmd.OutOrStdout(), result, opts.JSON)
}
