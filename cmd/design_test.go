package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mouse-blink/treesync/internal/adapter"
	"github.com/mouse-blink/treesync/internal/controller"
	"github.com/mouse-blink/treesync/internal/domain"
	m "github.com/mouse-blink/treesync/internal/model"
)

type stubWatcher struct {
	changes chan m.Path
}

func (w *stubWatcher) Start(context.Context) error { return nil }
func (w *stubWatcher) Changes() <-chan m.Path      { return w.changes }
func (w *stubWatcher) Stop()                       {}

func loadedSession(t *testing.T) *domain.Session {
	t.Helper()

	s := domain.NewSession(adapter.NewLocalSourceFSAdapter(), adapter.NewLocalUISourceAdapter(""))
	require.NoError(t, s.LoadFromText(context.Background(), greeting+"\n@Composable\nfun Other() {\n    Divider()\n}\n", "Greeting.kt"))

	return s
}

// stubWatchers records the paths watchers are requested for.
func stubWatchers(t *testing.T) *[]m.Path {
	t.Helper()

	var watched []m.Path
	newWatcher = func(path m.Path, debounce time.Duration, _ *zap.Logger) (adapter.FileWatcher, error) {
		assert.Equal(t, 200*time.Millisecond, debounce)
		watched = append(watched, path)

		return &stubWatcher{changes: make(chan m.Path)}, nil
	}

	return &watched
}

func TestDesignCmd_OpensSession(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)
	watched := stubWatchers(t)

	session := loadedSession(t)
	mockWorkflow.EXPECT().OpenSession(mock.Anything, m.Path("Greeting.kt")).Return(session, nil)
	mockUI.EXPECT().Design(mock.Anything, session, mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, s *domain.Session, opts ...controller.DesignOption) error {
			assert.Len(t, opts, 3)
			assert.Equal(t, "Other", s.ActiveFunction())

			return nil
		})

	_, err := execute(newDesignCmd(), "design", "Greeting.kt", "--function", "Other", "--wrap", "Row", "--insert", "Divider")
	require.NoError(t, err)

	require.Len(t, *watched, 1)
	assert.True(t, len((*watched)[0]) > len("Greeting.kt"), "watcher gets an absolute path")
}

func TestDesignCmd_NoWatch(t *testing.T) {
	mockWorkflow, mockUI := withMocks(t)
	watched := stubWatchers(t)

	session := loadedSession(t)
	mockWorkflow.EXPECT().OpenSession(mock.Anything, m.Path("Greeting.kt")).Return(session, nil)
	mockUI.EXPECT().Design(mock.Anything, session, mock.Anything, mock.Anything).Return(nil)

	_, err := execute(newDesignCmd(), "design", "Greeting.kt", "--watch=false")
	require.NoError(t, err)
	assert.Empty(t, *watched)
}

func TestDesignCmd_Errors(t *testing.T) {
	t.Run("wrap must be a container", func(t *testing.T) {
		withMocks(t)

		_, err := execute(newDesignCmd(), "design", "Greeting.kt", "--wrap", "Text")
		assert.ErrorContains(t, err, "--wrap must be a container kind")
	})

	t.Run("insert must be known", func(t *testing.T) {
		withMocks(t)

		_, err := execute(newDesignCmd(), "design", "Greeting.kt", "--insert", "Grid")
		assert.ErrorContains(t, err, "--insert must be one of")
	})

	t.Run("open fails", func(t *testing.T) {
		mockWorkflow, _ := withMocks(t)

		mockWorkflow.EXPECT().OpenSession(mock.Anything, m.Path("Greeting.kt")).Return(nil, m.ErrIO)

		_, err := execute(newDesignCmd(), "design", "Greeting.kt")
		assert.ErrorIs(t, err, m.ErrIO)
	})

	t.Run("unknown function", func(t *testing.T) {
		mockWorkflow, _ := withMocks(t)

		mockWorkflow.EXPECT().OpenSession(mock.Anything, m.Path("Greeting.kt")).Return(loadedSession(t), nil)

		_, err := execute(newDesignCmd(), "design", "Greeting.kt", "--function", "Nope")
		assert.ErrorIs(t, err, m.ErrNodeNotFound)
	})

	t.Run("watcher fails", func(t *testing.T) {
		mockWorkflow, _ := withMocks(t)

		newWatcher = func(m.Path, time.Duration, *zap.Logger) (adapter.FileWatcher, error) {
			return nil, errors.New("too many open files")
		}
		mockWorkflow.EXPECT().OpenSession(mock.Anything, m.Path("Greeting.kt")).Return(loadedSession(t), nil)

		_, err := execute(newDesignCmd(), "design", "Greeting.kt")
		assert.ErrorContains(t, err, "watching Greeting.kt: too many open files")
	})

	t.Run("no terminal", func(t *testing.T) {
		withWiring(t)
		stubWatchers(t)

		writeFile(t, ".", "Greeting.kt", greeting)

		workflow, ui = nil, nil

		_, err := execute(newDesignCmd(), "design", "Greeting.kt", "--journal", "off")
		assert.ErrorIs(t, err, controller.ErrNoTerminal)
	})
}
