package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/inkframe-labs/inkframe/internal/branding"
	"github.com/inkframe-labs/inkframe/internal/config"
	"github.com/inkframe-labs/inkframe/internal/updater"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` manages extensions for a long-running display host:
install them from GitHub, keep them updated, and serve their endpoints.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// The server manages its own lifecycle and logs instead of printing.
		if cmd.Name() == "serve" {
			return
		}

		// Non-blocking banner from cached version check.
		u := updater.New(buildVersion)
		u.CheckAndPrintBanner(os.Stderr, config.Dir())
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
