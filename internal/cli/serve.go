package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inkframe-labs/inkframe/internal/config"
	"github.com/inkframe-labs/inkframe/internal/extension"
	"github.com/inkframe-labs/inkframe/internal/host"

	// Built-in extensions register their factories on import.
	_ "github.com/inkframe-labs/inkframe/internal/extensions/frameinfo"
	_ "github.com/inkframe-labs/inkframe/internal/extensions/pluginmanager"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the host and serve extension endpoints",
	Long: `Run the long-lived host. Extensions are loaded once at startup; their
endpoint groups are registered, the routing table is frozen, and the host
serves until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, logger, err := newLifecycleManager()
		if err != nil {
			return err
		}
		defer logger.Sync()

		addr := serveAddr
		if addr == "" {
			addr = config.ListenAddr()
		}

		loader := extension.NewLoader(mgr, extension.Builtins(), logger)
		h := host.New(addr, mgr, loader, buildVersion, logger)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return h.Run(ctx)
	},
}
