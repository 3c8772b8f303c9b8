package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <github-url>",
	Short: "Install an extension from a GitHub repository",
	Long: `Install an extension by cloning its public GitHub repository. The
repository must contain a valid plugin-info descriptor whose id matches the
repository name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, logger, err := newLifecycleManager()
		if err != nil {
			return err
		}
		defer logger.Sync()

		entry, err := mgr.Install(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Installed %s (%s)\n", entry.ID, shortHash(entry.CommitHash))
		printRestartNotice(cmd, mgr)
		return nil
	},
}
