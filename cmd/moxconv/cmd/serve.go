package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/shapestone/shape-moxfield/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP conversion service",
	Long: `Runs an HTTP service that converts exports posted to it.

Endpoints:
  POST /convert  - CSV body in, text list out (JSON with Accept: application/json)
  GET  /healthz  - liveness

Examples:
  moxconv serve
  moxconv serve --port 9000
  curl --data-binary @moxfield_haves.csv localhost:8080/convert`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config: 127.0.0.1)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config: 8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Server, logger).Run(ctx)
}
