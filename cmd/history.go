package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/treesync/internal/model"
)

// historyCmd represents the history command.
var historyCmd = newHistoryCmd()

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <file>",
		Short: "List the recorded saves of a file",
		Long:  "List the saves of a file recorded in the save journal, oldest first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := m.Path(args[0])

			entries, err := workflow.History(cmd.Context(), path)
			if err != nil {
				return err
			}

			return ui.DisplayHistory(path, entries)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
