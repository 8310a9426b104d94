package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waterfall/internal/server"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve chart rendering over HTTP until interrupted.

Endpoints:
  POST /render?format=svg|png|pdf|json   render a chart definition
  POST /table?format=json|xlsx           compute the step table
  GET  /healthz                          liveness and version
  GET  /metrics                          Prometheus metrics

Configuration is read from the environment:
  WATERFALL_ADDR              listen address (default :8080)
  WATERFALL_MAX_BODY_BYTES    request body limit (default 1048576)
  WATERFALL_READ_TIMEOUT      read timeout (default 15s)
  WATERFALL_WRITE_TIMEOUT     per-request timeout (default 30s)
  WATERFALL_SHUTDOWN_TIMEOUT  graceful shutdown limit (default 10s)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			printKeyValue(cmd.ErrOrStderr(), "Address", cfg.Addr)
			return server.New(cfg, loggerFromContext(cmd.Context())).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides WATERFALL_ADDR)")
	return cmd
}
