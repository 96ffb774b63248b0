// Package cmd provides the root command and CLI setup for treesync.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mouse-blink/treesync/internal/adapter"
	"github.com/mouse-blink/treesync/internal/config"
	"github.com/mouse-blink/treesync/internal/controller"
	"github.com/mouse-blink/treesync/internal/domain"
	"github.com/mouse-blink/treesync/internal/logging"
	m "github.com/mouse-blink/treesync/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var journal adapter.JournalStore
var workflow domain.Workflow
var ui controller.UI
var settings *config.Config
var logger = zap.NewNop()

// newWatcher builds the watcher used by the design command.
var newWatcher = func(path m.Path, debounce time.Duration, log *zap.Logger) (adapter.FileWatcher, error) {
	return adapter.NewFileWatcher(path, debounce, log)
}

func init() {
	fsAdapter = adapter.NewLocalSourceFSAdapter()
}

var configFlag string
var markerFlag string
var extensionsFlag []string
var indentFlag int
var historyDepthFlag int
var journalFlag string
var parallelFlag int
var verboseFlag bool
var formatFlag string
var logFileFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treesync",
		Short: "Keep UI source code and its element tree in sync",
		Long: `treesync parses declarative UI source files into element trees and applies
structural edits (properties, modifiers, children, wrapping) back to the text
as minimal splices, leaving the rest of the file untouched.

Configuration is read from .treesync.yaml (searched upward from the working
directory), TREESYNC_* environment variables and flags, in that order.

Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./ui/...       recursively scan ui directory
  - ./a ./b        scan multiple directories`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return configure(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return teardown()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFlag, "config", "", "config file (default: "+config.FileName+" in the working directory or a parent)")
	flags.StringVar(&markerFlag, "marker", "", "annotation marking UI functions (default Composable)")
	flags.StringSliceVar(&extensionsFlag, "extensions", nil, "source file extensions to scan (default .kt)")
	flags.IntVar(&indentFlag, "indent", 0, "spaces per indentation level for inserted code (default 4)")
	flags.IntVar(&historyDepthFlag, "history-depth", 0, "maximum undo snapshots kept per session, 0 for unbounded")
	flags.StringVar(&journalFlag, "journal", "", "save journal database, or \"off\" (default "+config.DefaultJournal+")")
	flags.IntVarP(&parallelFlag, "parallel", "p", 0, "files parsed in parallel, 0 for one per CPU")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	flags.StringVarP(&formatFlag, "format", "f", "", "output format: table or yaml (default table)")
	flags.StringVar(&logFileFlag, "log-file", "", "write logs to this file instead of stderr")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// configure loads the configuration and wires whatever collaborators have
// not been provided already.
func configure(cmd *cobra.Command) error {
	cfg, err := config.Load(configFlag, cmd.Flags())
	if err != nil {
		return err
	}

	format, err := controller.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	settings = cfg
	logger = log

	if cfg.FileUsed != "" {
		logger.Debug("loaded config", zap.String("file", cfg.FileUsed))
	}

	if ui == nil {
		ui = controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()), format)
	}

	if workflow == nil {
		if err := wireWorkflow(cmd.Context(), cfg); err != nil {
			return err
		}
	}

	return nil
}

// newLogger skips logging for the interactive designer unless a log file is
// configured, since stderr output would tear the screen.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*zap.Logger, error) {
	if cmd.Name() == "design" && cfg.LogFile == "" {
		return zap.NewNop(), nil
	}

	return logging.New(cfg.Verbose, cfg.LogFile)
}

func wireWorkflow(ctx context.Context, cfg *config.Config) error {
	journal = adapter.NewNopJournalStore()

	if cfg.JournalEnabled() {
		if err := os.MkdirAll(filepath.Dir(cfg.Journal), 0o755); err != nil {
			return fmt.Errorf("creating journal directory: %w", err)
		}

		store, err := adapter.NewSQLiteJournalStore(ctx, cfg.Journal)
		if err != nil {
			return fmt.Errorf("opening journal %s: %w", cfg.Journal, err)
		}

		journal = store
	}

	workflow = domain.NewWorkflow(
		fsAdapter,
		adapter.NewLocalUISourceAdapter(cfg.Marker),
		journal,
		domain.WithWorkflowLogger(logger),
		domain.WithParallel(cfg.Parallel),
		domain.WithExtensions(cfg.Extensions...),
		domain.WithSessionDefaults(
			domain.WithHistoryDepth(cfg.HistoryDepth),
			domain.WithSyncOptions(domain.WithIndent(cfg.IndentUnit())),
		),
	)

	return nil
}

func teardown() error {
	if journal != nil {
		if err := journal.Close(); err != nil {
			return fmt.Errorf("closing journal: %w", err)
		}

		journal = nil
	}

	_ = logger.Sync()

	return nil
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
