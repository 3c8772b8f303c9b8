package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkUpdateCmd)
}

var checkUpdateCmd = &cobra.Command{
	Use:   "check-update <id>",
	Short: "Check whether an installed extension has a newer remote commit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, logger, err := newLifecycleManager()
		if err != nil {
			return err
		}
		defer logger.Sync()

		check, err := mgr.CheckUpdate(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if check.UpToDate {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date (%s)\n", args[0], shortHash(check.LocalHash))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s has an update: %s -> %s\n",
			args[0], shortHash(check.LocalHash), shortHash(check.RemoteHash))
		return nil
	},
}
