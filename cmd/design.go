package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mouse-blink/treesync/internal/controller"
	m "github.com/mouse-blink/treesync/internal/model"
)

var designFunctionFlag string
var designWrapFlag string
var designInsertFlag string
var designWatchFlag bool

// designCmd represents the design command.
var designCmd = newDesignCmd()

func newDesignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "design <file>",
		Short: "Edit a source file's element tree interactively",
		Long: `Open a source file in the interactive designer. The element tree of one UI
function is listed; edits made with the keyboard are spliced into the text and
can be undone, redone and saved. When watching is enabled, changes made to the
file by another editor are picked up while there are no unsaved edits.

Keys:
  enter/space  select or clear the node under the cursor
  tab          next function
  w            wrap the selection in the wrap container
  a            insert an element into the selection
  x            remove the selection
  u / r        undo / redo
  s            save
  q            quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := designOptions()
			if err != nil {
				return err
			}

			path := m.Path(args[0])

			session, err := workflow.OpenSession(cmd.Context(), path)
			if err != nil {
				return err
			}

			if designFunctionFlag != "" {
				if err := session.SetActiveFunction(designFunctionFlag); err != nil {
					return err
				}
			}

			if settings != nil && settings.Watch {
				abs, err := filepath.Abs(string(path))
				if err != nil {
					return fmt.Errorf("resolving %s: %w", path, err)
				}

				watcher, err := newWatcher(m.Path(abs), settings.Debounce, logger)
				if err != nil {
					return fmt.Errorf("watching %s: %w", path, err)
				}

				opts = append(opts, controller.WithWatcher(watcher))
			}

			logger.Debug("opening designer", zap.String("path", string(path)), zap.String("session", session.ID()))

			return ui.Design(cmd.Context(), session, opts...)
		},
	}
	cmd.Flags().StringVar(&designFunctionFlag, "function", "", "UI function to open (default: the first one)")
	cmd.Flags().StringVar(&designWrapFlag, "wrap", string(m.KindColumn), "container used by the wrap key")
	cmd.Flags().StringVar(&designInsertFlag, "insert", string(m.KindText), "element inserted by the insert key")
	cmd.Flags().BoolVar(&designWatchFlag, "watch", true, "reload the file when it changes on disk")

	return cmd
}

func designOptions() ([]controller.DesignOption, error) {
	wrap := m.Kind(designWrapFlag)
	if !wrap.IsContainer() {
		return nil, fmt.Errorf("--wrap must be a container kind, got %q", designWrapFlag)
	}

	insert := m.Kind(designInsertFlag)
	if !insert.IsKnown() {
		return nil, fmt.Errorf("--insert must be one of %s, got %q", kindList(), designInsertFlag)
	}

	return []controller.DesignOption{
		controller.WithWrapKind(wrap),
		controller.WithInsertKind(insert),
	}, nil
}

func init() {
	rootCmd.AddCommand(designCmd)
}
