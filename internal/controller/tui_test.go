package controller

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/treesync/internal/domain"
	m "github.com/mouse-blink/treesync/internal/model"
)

func newTestTUI(format Format) (*TUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewTUI(cmd, format), &buf
}

func TestTUI_DisplayDocuments(t *testing.T) {
	ui, buf := newTestTUI(FormatTable)

	require.NoError(t, ui.DisplayDocuments([]*m.ParsedDocument{parseSource(t, screenSource, "Screen.kt")}))

	output := buf.String()
	if !strings.Contains(output, "Inspected 1 files") || !strings.Contains(output, "Screen.kt") {
		t.Fatalf("unexpected output:\n%s", output)
	}
}

func TestTUI_YAMLSkipsHeading(t *testing.T) {
	ui, buf := newTestTUI(FormatYAML)

	require.NoError(t, ui.DisplayHistory("a.kt", nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestTUI_DisplayResult(t *testing.T) {
	ui, buf := newTestTUI(FormatTable)

	require.NoError(t, ui.DisplayResult(domain.EditOutcome{Path: "a.kt", Before: "a", After: "ab", Written: true}, nil))
	assert.Contains(t, buf.String(), "updated a.kt (+1 bytes)")

	buf.Reset()

	boom := errors.New("boom")
	assert.ErrorIs(t, ui.DisplayResult(domain.EditOutcome{}, boom), boom)
	assert.Contains(t, buf.String(), "edit error: boom")
}

func TestTUI_DisplayTree(t *testing.T) {
	ui, buf := newTestTUI(FormatTable)

	require.NoError(t, ui.DisplayTree(parseSource(t, screenSource, "Screen.kt"), "Screen"))
	assert.Contains(t, buf.String(), "Column")
}

func TestTUI_Design_WatcherStartError(t *testing.T) {
	ui, _ := newTestTUI(FormatTable)

	watcher := newFakeWatcher()
	watcher.startErr = errors.New("no inotify")

	err := ui.Design(context.Background(), newDesignSession(t, designSource), WithWatcher(watcher))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting watcher")
	assert.True(t, watcher.started)
}

func TestDesignOptions(t *testing.T) {
	cfg := newDesignConfig()
	assert.Equal(t, m.KindColumn, cfg.wrap)
	assert.Equal(t, m.KindText, cfg.insert)
	assert.Nil(t, cfg.watcher)

	cfg = newDesignConfig(WithWrapKind(m.KindText), WithInsertKind(m.KindCustom))
	assert.Equal(t, m.KindColumn, cfg.wrap, "leaf kinds cannot wrap")
	assert.Equal(t, m.KindText, cfg.insert, "custom elements have no snippet")

	watcher := newFakeWatcher()
	cfg = newDesignConfig(WithWrapKind(m.KindCard), WithInsertKind(m.KindButton), WithWatcher(watcher))
	assert.Equal(t, m.KindCard, cfg.wrap)
	assert.Equal(t, m.KindButton, cfg.insert)
	assert.Same(t, watcher, cfg.watcher)
}
