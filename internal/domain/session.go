package domain

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/mouse-blink/treesync/internal/adapter"
	m "github.com/mouse-blink/treesync/internal/model"
)

// ErrNoDocument is returned by operations that need a loaded document.
var ErrNoDocument = errors.New("no document loaded")

// State is the lifecycle state of a Session.
type State int

// Session states.
const (
	StateUnloaded State = iota
	StateLoading
	StateReady
	StateMutating
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateMutating:
		return "mutating"
	default:
		return "unknown"
	}
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHistoryDepth bounds the undo history; zero keeps everything.
func WithHistoryDepth(depth int) SessionOption {
	return func(s *Session) {
		s.history = NewHistory(depth)
	}
}

// WithJournal records every save in journal.
func WithJournal(journal adapter.JournalStore) SessionOption {
	return func(s *Session) {
		if journal != nil {
			s.journal = journal
		}
	}
}

// WithSyncOptions configures the session's synchronizer.
func WithSyncOptions(opts ...SyncOption) SessionOption {
	return func(s *Session) {
		s.syncOpts = append(s.syncOpts, opts...)
	}
}

// Session owns one document being edited in the designer: its text, the
// parse of that text, the undo history and the selection. Operations are
// serialised; a mutation queued behind a pending load or save waits for it.
type Session struct {
	sem *semaphore.Weighted

	fs       adapter.SourceFSAdapter
	source   adapter.UISourceAdapter
	sync     Synchronizer
	syncOpts []SyncOption
	journal  adapter.JournalStore
	logger   *zap.Logger
	id       string

	mu        sync.RWMutex
	history   *History
	doc       m.SourceDocument
	saved     string
	parsed    *m.ParsedDocument
	function  string
	selection *m.Identity
	selected  *m.Node
	state     State
}

// NewSession creates an unloaded Session.
func NewSession(fs adapter.SourceFSAdapter, source adapter.UISourceAdapter, opts ...SessionOption) *Session {
	s := &Session{
		sem:     semaphore.NewWeighted(1),
		fs:      fs,
		source:  source,
		journal: adapter.NewNopJournalStore(),
		logger:  zap.NewNop(),
		id:      uuid.NewString(),
		history: NewHistory(0),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.sync = NewSynchronizer(source, s.syncOpts...)
	s.logger = s.logger.With(zap.String("session", s.id))

	return s
}

// ID identifies the session in logs and in the save journal.
func (s *Session) ID() string {
	return s.id
}

// Load reads path and replaces the document. A cancelled context leaves the
// session untouched.
func (s *Session) Load(ctx context.Context, path m.Path) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	prev := s.enter(StateLoading)

	text, err := s.read(ctx, path)
	if err != nil {
		s.setState(prev)
		return err
	}

	s.install(m.SourceDocument{Text: text, Path: path, DisplayName: filepath.Base(string(path))}, true)
	s.logger.Info("document loaded", zap.String("path", string(path)), zap.Int("bytes", len(text)))

	return nil
}

// LoadFromText replaces the document with text held in memory.
func (s *Session) LoadFromText(ctx context.Context, text, displayName string) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	s.install(m.SourceDocument{Text: text, DisplayName: displayName}, true)
	s.logger.Info("document loaded from memory", zap.String("name", displayName), zap.Int("bytes", len(text)))

	return nil
}

// Reload re-reads the document from disk. The previous text stays in the
// undo history.
func (s *Session) Reload(ctx context.Context) error {
	_, err := s.reload(ctx, false)
	return err
}

// ReloadIfClean reloads only when there are no unsaved edits. It reports
// whether the document was reloaded.
func (s *Session) ReloadIfClean(ctx context.Context) (bool, error) {
	return s.reload(ctx, true)
}

func (s *Session) reload(ctx context.Context, onlyClean bool) (bool, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer s.sem.Release(1)

	s.mu.RLock()
	doc := s.doc
	dirty := s.dirtyLocked()
	loaded := s.state != StateUnloaded
	s.mu.RUnlock()

	if !loaded {
		return false, ErrNoDocument
	}

	if doc.Path == "" {
		return false, m.NewSyncError(m.ErrKindIO, "document %q has no file", doc.Name())
	}

	if onlyClean && dirty {
		s.logger.Debug("reload skipped, document has unsaved edits")
		return false, nil
	}

	prev := s.enter(StateLoading)

	text, err := s.read(ctx, doc.Path)
	if err != nil {
		s.setState(prev)
		return false, err
	}

	if text == doc.Text {
		s.setState(prev)
		return false, nil
	}

	s.mu.Lock()
	s.history.RecordBeforeMutation(doc.Text)
	s.saved = text
	s.mu.Unlock()

	doc.Text = text
	s.install(doc, false)
	s.logger.Info("document reloaded", zap.String("path", string(doc.Path)))

	return true, nil
}

func (s *Session) read(ctx context.Context, path m.Path) (string, error) {
	type readResult struct {
		text string
		err  error
	}

	done := make(chan readResult, 1)

	go func() {
		text, err := s.fs.ReadText(path)
		done <- readResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		s.logger.Debug("read abandoned", zap.String("path", string(path)), zap.Error(ctx.Err()))
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			s.logger.Warn("read failed", zap.String("path", string(path)), zap.Error(res.err))
			return "", &m.SyncError{Kind: m.ErrKindIO, Msg: string(path), Err: res.err}
		}

		return res.text, nil
	}
}

// Save writes the document back to its file and records the save.
func (s *Session) Save(ctx context.Context) error {
	return s.save(ctx, "")
}

// SaveAs writes the document to path, which becomes its file.
func (s *Session) SaveAs(ctx context.Context, path m.Path) error {
	if path == "" {
		return m.NewSyncError(m.ErrKindIO, "empty path")
	}

	return s.save(ctx, path)
}

func (s *Session) save(ctx context.Context, target m.Path) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	s.mu.RLock()
	doc := s.doc
	loaded := s.state != StateUnloaded
	s.mu.RUnlock()

	if !loaded {
		return ErrNoDocument
	}

	if target == "" {
		target = doc.Path
	}

	if target == "" {
		return m.NewSyncError(m.ErrKindIO, "document %q has no file, save it under a path", doc.Name())
	}

	done := make(chan error, 1)

	go func() {
		done <- s.fs.WriteText(target, doc.Text)
	}()

	select {
	case <-ctx.Done():
		s.logger.Debug("save abandoned", zap.String("path", string(target)), zap.Error(ctx.Err()))
		return ctx.Err()
	case err := <-done:
		if err != nil {
			s.logger.Warn("save failed", zap.String("path", string(target)), zap.Error(err))
			return &m.SyncError{Kind: m.ErrKindIO, Msg: string(target), Err: err}
		}
	}

	s.mu.Lock()
	if s.doc.Path != target {
		s.doc.Path = target
		s.doc.DisplayName = filepath.Base(string(target))
	}

	s.saved = doc.Text
	s.doc.Dirty = false
	s.mu.Unlock()

	entry := m.JournalEntry{
		Path:      target,
		Hash:      adapter.HashText(doc.Text),
		Size:      len(doc.Text),
		SavedAt:   time.Now().UTC(),
		SessionID: s.id,
	}

	if err := s.journal.Record(ctx, entry); err != nil {
		s.logger.Warn("journal record failed", zap.String("path", string(target)), zap.Error(err))
	}

	s.logger.Info("document saved", zap.String("path", string(target)), zap.Int("bytes", len(doc.Text)))

	return nil
}

// Undo restores the text before the last change. It reports false when
// there is nothing to undo.
func (s *Session) Undo(ctx context.Context) (bool, error) {
	return s.step(ctx, "undo", (*History).Undo)
}

// Redo re-applies the last undone change.
func (s *Session) Redo(ctx context.Context) (bool, error) {
	return s.step(ctx, "redo", (*History).Redo)
}

func (s *Session) step(ctx context.Context, op string, move func(*History, string) (string, bool)) (bool, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer s.sem.Release(1)

	s.mu.Lock()
	if s.state == StateUnloaded {
		s.mu.Unlock()
		return false, ErrNoDocument
	}

	text, ok := move(s.history, s.doc.Text)
	s.mu.Unlock()

	if !ok {
		return false, nil
	}

	doc := s.Document()
	doc.Text = text
	s.install(doc, false)
	s.logger.Debug(op, zap.Int("bytes", len(text)))

	return true, nil
}

// ReplaceText swaps the whole text, as after a keystroke in the code pane.
func (s *Session) ReplaceText(ctx context.Context, text string) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	s.mu.Lock()
	if s.state == StateUnloaded {
		s.mu.Unlock()
		return ErrNoDocument
	}

	doc := s.doc
	if doc.Text == text {
		s.mu.Unlock()
		return nil
	}

	s.history.RecordBeforeMutation(doc.Text)
	s.mu.Unlock()

	doc.Text = text
	s.install(doc, false)

	return nil
}

// UpdateProperty sets a keyword argument of the node.
func (s *Session) UpdateProperty(ctx context.Context, id m.Identity, name string, value any) error {
	return s.mutate(ctx, "update_property", id, func(text string, ref m.NodeRef) m.SyncResult {
		return s.sync.UpdateNodeProperty(text, ref, name, value)
	})
}

// AddModifier appends a modifier call to the node.
func (s *Session) AddModifier(ctx context.Context, id m.Identity, name string, args ...Arg) error {
	return s.mutate(ctx, "add_modifier", id, func(text string, ref m.NodeRef) m.SyncResult {
		return s.sync.AddModifierCall(text, ref, name, args...)
	})
}

// RemoveModifier removes the last modifier call named name.
func (s *Session) RemoveModifier(ctx context.Context, id m.Identity, name string) error {
	return s.mutate(ctx, "remove_modifier", id, func(text string, ref m.NodeRef) m.SyncResult {
		return s.sync.RemoveModifierCall(text, ref, name)
	})
}

// AddChild appends snippet as the last child of parent.
func (s *Session) AddChild(ctx context.Context, parent m.Identity, snippet string) error {
	return s.mutate(ctx, "add_child", parent, func(text string, ref m.NodeRef) m.SyncResult {
		return s.sync.AddChildNode(text, ref, snippet)
	})
}

// InsertElement appends a default element of kind to parent.
func (s *Session) InsertElement(ctx context.Context, parent m.Identity, kind m.Kind) error {
	return s.mutate(ctx, "insert_element", parent, func(text string, ref m.NodeRef) m.SyncResult {
		return s.sync.InsertElement(text, ref, kind)
	})
}

// RemoveNode deletes the node and its subtree.
func (s *Session) RemoveNode(ctx context.Context, id m.Identity) error {
	return s.mutate(ctx, "remove_node", id, func(text string, ref m.NodeRef) m.SyncResult {
		return s.sync.RemoveNode(text, ref)
	})
}

// WrapNode encloses the node in a new container.
func (s *Session) WrapNode(ctx context.Context, id m.Identity, container m.Kind) error {
	return s.mutate(ctx, "wrap_node", id, func(text string, ref m.NodeRef) m.SyncResult {
		return s.sync.WrapNodeWithContainer(text, ref, container)
	})
}

func (s *Session) mutate(ctx context.Context, op string, id m.Identity, edit func(string, m.NodeRef) m.SyncResult) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	s.mu.RLock()
	loaded := s.state != StateUnloaded
	doc := s.doc
	ref := m.NodeRef{Function: s.function, ID: id}
	s.mu.RUnlock()

	if !loaded {
		return ErrNoDocument
	}

	prev := s.enter(StateMutating)

	result := edit(doc.Text, ref)
	if !result.Success {
		s.setState(prev)
		s.logger.Info("edit rejected",
			zap.String("op", op),
			zap.Stringer("node", ref),
			zap.String("kind", string(result.Err.Kind)),
			zap.Error(result.Err))

		return result.Err
	}

	s.mu.Lock()
	s.history.RecordBeforeMutation(doc.Text)
	s.mu.Unlock()

	doc.Text = result.Text
	s.install(doc, false)

	s.logger.Debug("edit applied",
		zap.String("op", op),
		zap.Stringer("node", ref),
		zap.Int("start", result.Splice.Start),
		zap.Int("end", result.Splice.End),
		zap.Int("inserted", len(result.Splice.Text)))

	return nil
}

// install replaces the document, reparses it and re-resolves the selection.
// A fresh document also resets history, saved text and selection.
func (s *Session) install(doc m.SourceDocument, fresh bool) {
	parsed := s.source.Parse(doc.Text, doc.Path)

	s.mu.Lock()
	defer s.mu.Unlock()

	if fresh {
		s.history.Clear()
		s.saved = doc.Text
		s.selection = nil
		s.selected = nil
		s.function = ""
	}

	s.doc = doc
	s.doc.Dirty = s.doc.Text != s.saved
	s.parsed = parsed
	s.state = StateReady

	if s.function != "" {
		if _, ok := parsed.Function(s.function); !ok {
			s.function = ""
			s.selection = nil
		}
	}

	s.resolveSelectionLocked()

	if parsed.Degraded() {
		s.logger.Warn("document does not parse", zap.Error(parsed.Err))
	}
}

// resolveSelectionLocked keeps the selection only when the same kind of
// element still sits at the selected path.
func (s *Session) resolveSelectionLocked() {
	if s.selection == nil {
		s.selected = nil
		return
	}

	node, ok := s.nodeLocked(*s.selection)
	if !ok || s.selected == nil || node.Kind != s.selected.Kind || node.Name != s.selected.Name {
		s.selection = nil
		s.selected = nil

		return
	}

	s.selected = node
}

func (s *Session) nodeLocked(id m.Identity) (*m.Node, bool) {
	fn, ok := s.parsed.Function(s.function)
	if !ok {
		return nil, false
	}

	return m.FindByID(fn.Root, id)
}

func (s *Session) enter(state State) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	s.state = state

	return prev
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Session) dirtyLocked() bool {
	return s.state != StateUnloaded && s.doc.Text != s.saved
}

// Select sets the selection; nil clears it.
func (s *Session) Select(id *m.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == nil {
		s.selection = nil
		s.selected = nil

		return nil
	}

	node, ok := s.nodeLocked(*id)
	if !ok {
		return m.NewSyncError(m.ErrKindNodeNotFound, "%s", *id)
	}

	sel := *id
	s.selection = &sel
	s.selected = node

	return nil
}

// SetActiveFunction switches the tree shown and edited; an empty name
// selects the first function.
func (s *Session) SetActiveFunction(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateUnloaded {
		return ErrNoDocument
	}

	if _, ok := s.parsed.Function(name); !ok {
		return m.NewSyncError(m.ErrKindNodeNotFound, "function %q", name)
	}

	s.function = name
	s.selection = nil
	s.selected = nil

	return nil
}

// ActiveFunction returns the name of the function being edited, or "" for
// the first one.
func (s *Session) ActiveFunction() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.function
}

// Document returns a copy of the current document.
func (s *Session) Document() m.SourceDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.doc
}

// Text returns the current source text.
func (s *Session) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.doc.Text
}

// Parsed returns the parse of the current text.
func (s *Session) Parsed() *m.ParsedDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.parsed
}

// Tree returns the root of the active function, or nil.
func (s *Session) Tree() *m.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fn, ok := s.parsed.Function(s.function)
	if !ok {
		return nil
	}

	return fn.Root
}

// Selection returns the selected identity, or nil.
func (s *Session) Selection() *m.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selection == nil {
		return nil
	}

	sel := *s.selection

	return &sel
}

// SelectedNode returns the selected node of the current tree.
func (s *Session) SelectedNode() (*m.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selected, s.selected != nil
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Dirty reports unsaved edits.
func (s *Session) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dirtyLocked()
}

// CanUndo reports whether Undo has a snapshot to restore.
func (s *Session) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.history.CanUndo()
}

// CanRedo reports whether Redo has a snapshot to restore.
func (s *Session) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.history.CanRedo()
}
