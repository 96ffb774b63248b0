package controller

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mouse-blink/treesync/internal/adapter"
	"github.com/mouse-blink/treesync/internal/domain"
	m "github.com/mouse-blink/treesync/internal/model"
)

const designSource = `@Composable
fun Screen() {
    Column {
        Text("Hello")
        Text("World")
    }
}

@Composable
fun Other() {
    Row {
        Icon(star)
    }
}
`

type fakeWatcher struct {
	changes  chan m.Path
	startErr error
	started  bool
	stopped  bool
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{changes: make(chan m.Path, 1)}
}

func (w *fakeWatcher) Start(context.Context) error {
	w.started = true
	return w.startErr
}

func (w *fakeWatcher) Changes() <-chan m.Path { return w.changes }

func (w *fakeWatcher) Stop() { w.stopped = true }

var _ adapter.FileWatcher = (*fakeWatcher)(nil)

func newDesignSession(t *testing.T, text string) *domain.Session {
	t.Helper()

	session := domain.NewSession(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewLocalUISourceAdapter(""),
		domain.WithLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, session.LoadFromText(context.Background(), text, "Screen.kt"))

	return session
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds msg through Update and runs the resulting command, if any,
// feeding its message back once.
func press(t *testing.T, model designModel, msg tea.Msg) designModel {
	t.Helper()

	updated, cmd := model.Update(msg)
	model = updated.(designModel)

	if cmd == nil {
		return model
	}

	next := cmd()
	if _, ok := next.(editedMsg); !ok {
		return model
	}

	updated, _ = model.Update(next)

	return updated.(designModel)
}

func rowIDs(model designModel) []m.Identity {
	ids := make([]m.Identity, 0, len(model.nodes.Items()))
	for _, item := range model.nodes.Items() {
		ids = append(ids, item.(nodeItem).row.id)
	}

	return ids
}

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("hello", 0); got != "" {
		t.Fatalf("truncateToWidth width 0 = %q, want empty", got)
	}

	if got := truncateToWidth("hello", 10); got != "hello" {
		t.Fatalf("truncateToWidth no truncation = %q", got)
	}

	if got := truncateToWidth("hello", 1); got != "…" {
		t.Fatalf("truncateToWidth width 1 = %q, want ellipsis", got)
	}

	if got := truncateToWidth("hello", 2); got != "h…" {
		t.Fatalf("truncateToWidth width 2 = %q, want h…", got)
	}
}

func TestRowText(t *testing.T) {
	row := treeRow{depth: 2, label: "Text", args: `"Hi"`, modifiers: "padding(8).size(4)"}

	assert.Equal(t, `    Text("Hi").padding(8).size(4)`, rowText(row))
	assert.Equal(t, "Column", rowText(treeRow{label: "Column"}))
}

func TestNodeItem_FilterValue(t *testing.T) {
	item := nodeItem{row: treeRow{id: "0.1", label: "Text"}}
	if got := item.FilterValue(); got != "Text" {
		t.Fatalf("FilterValue() = %q, want Text", got)
	}
}

func TestDesignModel_InitialView(t *testing.T) {
	model := newDesignModel(context.Background(), newDesignSession(t, designSource), newDesignConfig())

	assert.Nil(t, model.Init())
	assert.Equal(t, []m.Identity{"0", "0.0", "0.1"}, rowIDs(model))

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model = updated.(designModel)

	view := model.View()

	for _, want := range []string{"treesync designer · Screen.kt", "Function:", "Screen", "Column", `Text("Hello")`, "q quit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q\n%s", want, view)
		}
	}
}

func TestDesignModel_SelectRemoveUndoRedo(t *testing.T) {
	session := newDesignSession(t, designSource)
	model := newDesignModel(context.Background(), session, newDesignConfig())

	model = press(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = press(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, session.Selection())
	assert.Equal(t, m.Identity("0.0"), *session.Selection())
	assert.True(t, model.nodes.Items()[1].(nodeItem).selected)

	model = press(t, model, keyRunes("x"))
	require.NoError(t, model.err)
	assert.Equal(t, "removed 0.0", model.status)
	assert.NotContains(t, session.Text(), "Hello")
	assert.Equal(t, []m.Identity{"0", "0.0"}, rowIDs(model))
	assert.True(t, session.Dirty())
	assert.Contains(t, model.View(), "Screen.kt *")

	model = press(t, model, keyRunes("u"))
	assert.Equal(t, "undo", model.status)
	assert.Equal(t, designSource, session.Text())
	assert.Len(t, model.nodes.Items(), 3)

	model = press(t, model, keyRunes("r"))
	assert.Equal(t, "redo", model.status)
	assert.NotContains(t, session.Text(), "Hello")

	model = press(t, model, keyRunes("r"))
	assert.Equal(t, "nothing to redo", model.status)
}

func TestDesignModel_WrapAndInsertTargetCursor(t *testing.T) {
	session := newDesignSession(t, designSource)
	model := newDesignModel(context.Background(), session, newDesignConfig(WithWrapKind(m.KindBox), WithInsertKind(m.KindDivider)))

	model = press(t, model, keyRunes("a"))
	require.NoError(t, model.err)
	assert.Equal(t, "inserted Divider into 0", model.status)
	assert.Equal(t, []m.Identity{"0", "0.0", "0.1", "0.2"}, rowIDs(model))

	model = press(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = press(t, model, keyRunes("w"))
	require.NoError(t, model.err)
	assert.Contains(t, session.Text(), "Box {")

	node, ok := m.FindByID(session.Tree(), "0.0")
	require.True(t, ok)
	assert.Equal(t, m.KindBox, node.Kind)
}

func TestDesignModel_RejectedEditShowsError(t *testing.T) {
	session := newDesignSession(t, designSource)
	model := newDesignModel(context.Background(), session, newDesignConfig())

	model = press(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = press(t, model, editedMsg{err: m.NewSyncError(m.ErrKindInvalidKind, "Slider is not a container")})

	assert.Error(t, model.err)
	assert.Contains(t, model.View(), "error: ")
	assert.Equal(t, designSource, session.Text())

	model = press(t, model, keyRunes("u"))
	assert.NoError(t, model.err)
	assert.Equal(t, "nothing to undo", model.status)
}

func TestDesignModel_QuitConfirmsUnsavedChanges(t *testing.T) {
	session := newDesignSession(t, designSource)
	model := newDesignModel(context.Background(), session, newDesignConfig())

	updated, cmd := model.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	model = updated.(designModel)
	model = press(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = press(t, model, keyRunes("x"))
	require.True(t, session.Dirty())

	updated, cmd = model.Update(keyRunes("q"))
	assert.Nil(t, cmd)

	model = updated.(designModel)
	assert.True(t, model.confirmQuit)

	_, cmd = model.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestDesignModel_TabCyclesFunctions(t *testing.T) {
	session := newDesignSession(t, designSource)
	model := newDesignModel(context.Background(), session, newDesignConfig())

	model = press(t, model, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Other", session.ActiveFunction())
	assert.Equal(t, "function Other", model.status)
	assert.Equal(t, []m.Identity{"0", "0.0"}, rowIDs(model))

	model = press(t, model, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Screen", session.ActiveFunction())
	assert.Len(t, model.nodes.Items(), 3)
}

func TestDesignModel_EscClearsSelection(t *testing.T) {
	session := newDesignSession(t, designSource)
	model := newDesignModel(context.Background(), session, newDesignConfig())

	model = press(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, session.Selection())

	model = press(t, model, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, session.Selection())
	assert.Equal(t, "selection cleared", model.status)
}

func TestDesignModel_ReloadsOnExternalChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Screen.kt")
	require.NoError(t, os.WriteFile(path, []byte(designSource), 0o600))

	session := domain.NewSession(adapter.NewLocalSourceFSAdapter(), adapter.NewLocalUISourceAdapter(""),
		domain.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, session.Load(context.Background(), m.Path(path)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := newFakeWatcher()
	model := newDesignModel(ctx, session, newDesignConfig(WithWatcher(watcher)))

	changed := strings.Replace(designSource, `Text("World")`, `Text("Disk")`, 1)
	require.NoError(t, os.WriteFile(path, []byte(changed), 0o600))

	watcher.changes <- m.Path(path)

	msg := model.Init()()
	require.Equal(t, fileChangedMsg{path: m.Path(path)}, msg)

	updated, cmd := model.Update(msg)
	model = updated.(designModel)
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)

	reloaded := batch[0]()
	require.Equal(t, reloadedMsg{path: m.Path(path), reloaded: true}, reloaded)

	updated, _ = model.Update(reloaded)
	model = updated.(designModel)

	assert.Equal(t, "reloaded "+path, model.status)
	assert.Equal(t, changed, session.Text())
	assert.False(t, session.Dirty())

	cancel()
	assert.Equal(t, watchClosedMsg{}, batch[1]())
}

func TestDesignModel_ReloadKeepsUnsavedEdits(t *testing.T) {
	session := newDesignSession(t, designSource)
	model := newDesignModel(context.Background(), session, newDesignConfig())

	model = press(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = press(t, model, keyRunes("x"))
	require.True(t, session.Dirty())

	updated, _ := model.Update(reloadedMsg{path: "Screen.kt"})
	model = updated.(designModel)

	assert.Equal(t, "changed on disk, keeping unsaved edits", model.status)
}

func TestDesignModel_SaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Screen.kt")
	require.NoError(t, os.WriteFile(path, []byte(designSource), 0o600))

	session := domain.NewSession(adapter.NewLocalSourceFSAdapter(), adapter.NewLocalUISourceAdapter(""),
		domain.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, session.Load(context.Background(), m.Path(path)))

	model := newDesignModel(context.Background(), session, newDesignConfig())

	model = press(t, model, tea.KeyMsg{Type: tea.KeyDown})
	model = press(t, model, keyRunes("x"))
	model = press(t, model, keyRunes("s"))

	require.NoError(t, model.err)
	assert.True(t, strings.HasPrefix(model.status, "saved "))
	assert.False(t, session.Dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, session.Text(), string(data))
	assert.NotContains(t, string(data), "Hello")
}

func TestDesignModel_WatchClosed(t *testing.T) {
	watcher := newFakeWatcher()
	close(watcher.changes)

	model := newDesignModel(context.Background(), newDesignSession(t, designSource), newDesignConfig(WithWatcher(watcher)))

	msg := model.Init()()
	require.Equal(t, watchClosedMsg{}, msg)

	updated, cmd := model.Update(msg)
	assert.Nil(t, cmd)
	assert.Nil(t, updated.(designModel).changes)
}
