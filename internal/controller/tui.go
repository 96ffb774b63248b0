package controller

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/treesync/internal/domain"
	m "github.com/mouse-blink/treesync/internal/model"
)

// TUI implements UI using Bubble Tea for the interactive designer. Listings
// are printed like SimpleUI under a styled heading.
type TUI struct {
	cmd    *cobra.Command
	simple *SimpleUI
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command, format Format) *TUI {
	return &TUI{cmd: cmd, simple: NewSimpleUI(cmd, format)}
}

// DisplayDocuments prints one summary row per parsed document.
func (t *TUI) DisplayDocuments(docs []*m.ParsedDocument) error {
	t.heading(fmt.Sprintf("Inspected %d files", len(docs)))
	return t.simple.DisplayDocuments(docs)
}

// DisplayTree prints the element tree of a document.
func (t *TUI) DisplayTree(doc *m.ParsedDocument, function string) error {
	return t.simple.DisplayTree(doc, function)
}

// DisplayResult prints the outcome of a one-shot edit.
func (t *TUI) DisplayResult(outcome domain.EditOutcome, err error) error {
	if err != nil {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		_, _ = fmt.Fprintln(t.cmd.OutOrStdout(), style.Render("edit error: "+err.Error()))

		return err
	}

	return t.simple.DisplayResult(outcome, nil)
}

// DisplayHistory prints the journaled saves of path.
func (t *TUI) DisplayHistory(path m.Path, entries []m.JournalEntry) error {
	t.heading(fmt.Sprintf("%d saves", len(entries)))
	return t.simple.DisplayHistory(path, entries)
}

// Design runs the interactive designer until the user quits or ctx ends.
func (t *TUI) Design(ctx context.Context, session *domain.Session, opts ...DesignOption) error {
	cfg := newDesignConfig(opts...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.watcher != nil {
		if err := cfg.watcher.Start(ctx); err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer cfg.watcher.Stop()
	}

	model := newDesignModel(ctx, session, cfg)

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.cmd.InOrStdin()),
		tea.WithOutput(t.cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}

		return err
	}

	if session.Dirty() {
		_, _ = fmt.Fprintf(t.cmd.OutOrStdout(), "closed %s with unsaved changes\n", session.Document().Name())
	}

	return nil
}

func (t *TUI) heading(text string) {
	if t.simple.format == FormatYAML {
		return
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	_, _ = fmt.Fprintln(t.cmd.OutOrStdout(), style.Render(text))
}
