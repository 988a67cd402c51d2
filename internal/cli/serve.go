package cli

import (
	"github.com/spf13/cobra"

	"github.com/Miyamura80/appctl/internal/config"
	"github.com/Miyamura80/appctl/internal/daemon"
	"github.com/Miyamura80/appctl/internal/engine"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	Socket string
}

// NewServeCommand creates the serve command.
func NewServeCommand(app *engine.AppContext, registry *engine.Registry, cfg *config.Config) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start daemon mode over a Unix socket",
		Long: `Start daemon mode: serve the command registry, probe runner, and doctor
over a newline-delimited JSON protocol on a Unix domain socket. Connections
are served one at a time.

Example:
  appctl serve --socket /tmp/appctl.sock`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			socket := opts.Socket
			if socket == "" {
				socket = cfg.SocketPath
			}
			if socket == "" {
				return NewExitError(ExitCommandError, "--socket is required (or set APPCTL_SOCKET)")
			}

			server := daemon.New(app, registry)
			if err := server.ListenAndServe(socket); err != nil {
				return WrapExitError(ExitCommandError, "daemon failed", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Socket, "socket", "", "path for the Unix domain socket")

	return cmd
}
