package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Miyamura80/appctl/internal/engine"
)

// EmitOptions holds flags for the emit command.
type EmitOptions struct {
	Payload string
	JSON    bool
}

// NewEmitCommand creates the emit command. This is a deliberate placeholder
// surface: desktop-event delivery is not backed yet, so every invocation
// reports Skip.
func NewEmitCommand(app *engine.AppContext) *cobra.Command {
	opts := &EmitOptions{}

	cmd := &cobra.Command{
		Use:   "emit <event>",
		Short: "Emit a desktop event (placeholder)",
		Long: `Emit a desktop event: tray-click | deep-link | file-drop | app-focus.

Not yet backed by real desktop-event delivery; always reports skip.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(opts, args[0], app, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Payload, "payload", "{}", "optional event payload as JSON")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output as JSON")

	return cmd
}

func runEmit(opts *EmitOptions, event string, app *engine.AppContext, cmd *cobra.Command) error {
	runID := engine.NewRunID()

	code := engine.CodeUnimplemented
	msg := fmt.Sprintf("event '%s' is not yet implemented", event)
	if app.Headless {
		code = engine.CodeUnsupported
		msg = fmt.Sprintf("event '%s' unsupported in headless environment", event)
	}

	result := engine.ExecutionResult{
		RunID:   runID,
		Command: "emit",
		Target:  event,
		Status:  engine.StatusSkip,
		Error: &engine.ErrorInfo{
			Code:    code,
			Message: msg,
		},
		Artifacts: []string{},
		Env:       engine.NewEnvSummary(),
	}
	return outputResult(cmd.OutOrStdout(), result, opts.JSON)
}
