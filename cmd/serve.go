package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KaramelBytes/groupr-cli/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr      string
	serveMaxBodyMB int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the grouping API over HTTP",
	Long: `Starts an HTTP server exposing:
  POST /api/groups?groups=N&seed=S   body: CSV text or multipart "file"
  POST /api/columns                  body: CSV text or multipart "file"
  GET  /healthz
  GET  /metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		addr := c.ServeAddr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		maxMB := c.MaxBodyMB
		if cmd.Flags().Changed("max-body-mb") {
			maxMB = serveMaxBodyMB
		}
		if maxMB <= 0 {
			return fmt.Errorf("--max-body-mb must be positive, got %d", maxMB)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Serving on %s\n", addr)
		return server.New(server.Options{
			Addr:          addr,
			MaxBodyBytes:  int64(maxMB) << 20,
			DefaultGroups: c.Groups,
			Hidden:        c.HiddenColumns,
			Strict:        c.Strict,
			Logger:        logger,
		}).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address (overrides config)")
	serveCmd.Flags().IntVar(&serveMaxBodyMB, "max-body-mb", 10, "maximum upload size in MiB (overrides config)")
}
