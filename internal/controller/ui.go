// Package controller provides output adapters for displaying parsed UI trees,
// edit results and the interactive designer.
package controller

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/treesync/internal/adapter"
	"github.com/mouse-blink/treesync/internal/domain"
	m "github.com/mouse-blink/treesync/internal/model"
)

// ErrNoTerminal is returned when the interactive designer is requested
// without a terminal.
var ErrNoTerminal = errors.New("interactive designer needs a terminal")

// Format selects how listings are printed.
type Format string

// Available Format values.
const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name. An empty name means FormatTable.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", errors.New("unknown format " + name + " (want table or yaml)")
	}
}

// DesignOption is a functional option for the Design method.
type DesignOption func(*DesignConfig)

// DesignConfig holds configuration for the interactive designer.
type DesignConfig struct {
	watcher adapter.FileWatcher
	wrap    m.Kind
	insert  m.Kind
}

// WithWatcher reloads the document when the watcher reports a change and the
// session has no unsaved edits.
func WithWatcher(watcher adapter.FileWatcher) DesignOption {
	return func(c *DesignConfig) {
		c.watcher = watcher
	}
}

// WithWrapKind sets the container used by the wrap key.
func WithWrapKind(kind m.Kind) DesignOption {
	return func(c *DesignConfig) {
		if kind.IsContainer() {
			c.wrap = kind
		}
	}
}

// WithInsertKind sets the element inserted by the insert key.
func WithInsertKind(kind m.Kind) DesignOption {
	return func(c *DesignConfig) {
		if kind.IsKnown() {
			c.insert = kind
		}
	}
}

func newDesignConfig(opts ...DesignOption) DesignConfig {
	cfg := DesignConfig{wrap: m.KindColumn, insert: m.KindText}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for presenting documents and edits.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayDocuments(docs []*m.ParsedDocument) error
	DisplayTree(doc *m.ParsedDocument, function string) error
	DisplayResult(outcome domain.EditOutcome, err error) error
	DisplayHistory(path m.Path, entries []m.JournalEntry) error
	Design(ctx context.Context, session *domain.Session, opts ...DesignOption) error
}

// NewUI creates a UI based on whether TTY mode is enabled.
// When useTTY is true, it returns a TUI (Bubble Tea).
// When useTTY is false, it returns a SimpleUI (plain text).
func NewUI(cmd *cobra.Command, useTTY bool, format Format) UI {
	if useTTY {
		return NewTUI(cmd, format)
	}

	return NewSimpleUI(cmd, format)
}

// IsTTY checks if the given writer is a terminal (TTY).
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
