package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inkframe-labs/inkframe/internal/registry"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed extensions",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, logger, err := newLifecycleManager()
		if err != nil {
			return err
		}
		defer logger.Sync()

		entries := mgr.List()
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No extensions installed yet.")
			return nil
		}

		if listJSON {
			return printListJSON(cmd, entries)
		}
		return printListTable(cmd, entries)
	},
}

func printListTable(cmd *cobra.Command, entries []registry.Extension) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMMIT\tREPOSITORY")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, shortHash(e.CommitHash), e.RepositoryURL)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []registry.Extension) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
