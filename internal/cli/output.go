package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkframe-labs/inkframe/internal/config"
	"github.com/inkframe-labs/inkframe/internal/lifecycle"
)

// shortHash abbreviates a commit hash for display.
func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	if hash == "" {
		return "-"
	}
	return hash
}

// printRestartNotice tells the operator a restart is needed for the change
// to take effect. With a restart command configured the supervisor handles
// it, so nothing is printed.
func printRestartNotice(cmd *cobra.Command, mgr *lifecycle.Manager) {
	if mgr.RestartPending() && config.RestartCommand() == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Restart the host for the change to take effect.")
	}
}
