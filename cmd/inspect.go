package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inspectTreeFlag bool
var inspectFunctionFlag string
var inspectStrictFlag bool

// inspectCmd represents the inspect command.
var inspectCmd = newInspectCmd()

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [paths...]",
		Short: "Parse source files and show their UI functions",
		Long: `Parse the UI source files under the given paths and list their UI functions
and element counts, or print the full element trees with --tree.

Without paths the current directory is scanned recursively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"./..."}
			}

			docs, err := workflow.Inspect(cmd.Context(), parsePaths(args)...)
			if err != nil {
				return err
			}

			if !inspectTreeFlag {
				if err := ui.DisplayDocuments(docs); err != nil {
					return err
				}
			} else {
				for _, doc := range docs {
					if err := ui.DisplayTree(doc, inspectFunctionFlag); err != nil {
						return err
					}
				}
			}

			if inspectStrictFlag {
				for _, doc := range docs {
					if doc.Degraded() {
						return fmt.Errorf("%s does not parse: %w", doc.Path, doc.Err)
					}
				}
			}

			return nil
		},
	}
	cmd.Flags().BoolVarP(&inspectTreeFlag, "tree", "t", false, "print the element tree of every function")
	cmd.Flags().StringVar(&inspectFunctionFlag, "function", "", "with --tree, print only this function")
	cmd.Flags().BoolVar(&inspectStrictFlag, "strict", false, "fail when a file does not parse")

	return cmd
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
