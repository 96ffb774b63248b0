package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/treesync/internal/adapter"
	m "github.com/mouse-blink/treesync/internal/model"
)

// DefaultExtensions are the source file extensions scanned by Inspect.
var DefaultExtensions = []string{".kt"}

// EditOp names a one-shot structural edit.
type EditOp string

// Edit operations.
const (
	OpSet            EditOp = "set"
	OpAddModifier    EditOp = "add-modifier"
	OpRemoveModifier EditOp = "remove-modifier"
	OpAddChild       EditOp = "add-child"
	OpInsert         EditOp = "insert"
	OpRemove         EditOp = "remove"
	OpWrap           EditOp = "wrap"
)

// EditOps lists the supported operations.
func EditOps() []EditOp {
	return []EditOp{OpSet, OpAddModifier, OpRemoveModifier, OpAddChild, OpInsert, OpRemove, OpWrap}
}

// EditRequest describes one edit against a file. Only the fields the
// operation needs are read.
type EditRequest struct {
	Op       EditOp
	Function string
	ID       m.Identity
	Name     string // property or modifier name
	Value    any    // property value
	Args     []Arg  // modifier arguments
	Snippet  string // child source for add-child
	Kind     m.Kind // element kind for insert and wrap
	DryRun   bool
}

// EditOutcome is the text before and after an edit.
type EditOutcome struct {
	Path    m.Path
	Before  string
	After   string
	Written bool
}

// Workflow defines the operations behind the command line.
type Workflow interface {
	Inspect(ctx context.Context, roots ...m.Path) ([]*m.ParsedDocument, error)
	Edit(ctx context.Context, path m.Path, req EditRequest) (EditOutcome, error)
	OpenSession(ctx context.Context, path m.Path) (*Session, error)
	History(ctx context.Context, path m.Path) ([]m.JournalEntry, error)
}

// WorkflowOption configures a Workflow.
type WorkflowOption func(*workflow)

// WithWorkflowLogger sets the logger used by the workflow and its sessions.
func WithWorkflowLogger(logger *zap.Logger) WorkflowOption {
	return func(w *workflow) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithParallel bounds the number of files parsed at once.
func WithParallel(n int) WorkflowOption {
	return func(w *workflow) {
		if n > 0 {
			w.parallel = n
		}
	}
}

// WithExtensions sets the source file extensions Inspect looks for.
func WithExtensions(exts ...string) WorkflowOption {
	return func(w *workflow) {
		if len(exts) > 0 {
			w.extensions = exts
		}
	}
}

// WithSessionDefaults applies opts to every session the workflow opens.
func WithSessionDefaults(opts ...SessionOption) WorkflowOption {
	return func(w *workflow) {
		w.sessionOpts = append(w.sessionOpts, opts...)
	}
}

type workflow struct {
	fs          adapter.SourceFSAdapter
	source      adapter.UISourceAdapter
	journal     adapter.JournalStore
	logger      *zap.Logger
	parallel    int
	extensions  []string
	sessionOpts []SessionOption
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(fs adapter.SourceFSAdapter, source adapter.UISourceAdapter, journal adapter.JournalStore, opts ...WorkflowOption) Workflow {
	if journal == nil {
		journal = adapter.NewNopJournalStore()
	}

	w := &workflow{
		fs:         fs,
		source:     source,
		journal:    journal,
		logger:     zap.NewNop(),
		parallel:   runtime.NumCPU(),
		extensions: DefaultExtensions,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Inspect finds the source files under roots (a trailing /... recurses) and
// parses them in parallel. Documents come back in discovery order; parse
// failures are reported through each document's Err.
func (w *workflow) Inspect(ctx context.Context, roots ...m.Path) ([]*m.ParsedDocument, error) {
	if len(roots) == 0 {
		return []*m.ParsedDocument{}, nil
	}

	paths, err := w.fs.ListSources(roots, w.extensions)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	docs := make([]*m.ParsedDocument, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.parallel)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			text, err := w.fs.ReadText(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			docs[i] = w.source.Parse(text, path)
			if docs[i].Degraded() {
				w.logger.Warn("parse degraded", zap.String("path", string(path)), zap.Error(docs[i].Err))
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	w.logger.Debug("inspected sources", zap.Int("files", len(docs)))

	return docs, nil
}

// OpenSession loads path into a new Session.
func (w *workflow) OpenSession(ctx context.Context, path m.Path) (*Session, error) {
	opts := append([]SessionOption{WithLogger(w.logger), WithJournal(w.journal)}, w.sessionOpts...)
	session := NewSession(w.fs, w.source, opts...)

	if err := session.Load(ctx, absolute(path)); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return session, nil
}

// Edit applies one edit to the file at path and writes it back unless
// req.DryRun is set.
func (w *workflow) Edit(ctx context.Context, path m.Path, req EditRequest) (EditOutcome, error) {
	session, err := w.OpenSession(ctx, path)
	if err != nil {
		return EditOutcome{}, err
	}

	outcome := EditOutcome{Path: path, Before: session.Text()}

	if req.Function != "" {
		if err := session.SetActiveFunction(req.Function); err != nil {
			return outcome, err
		}
	}

	if err := applyEdit(ctx, session, req); err != nil {
		return outcome, fmt.Errorf("%s %s: %w", req.Op, req.ID, err)
	}

	outcome.After = session.Text()

	if req.DryRun || outcome.After == outcome.Before {
		return outcome, nil
	}

	if err := session.Save(ctx); err != nil {
		return outcome, fmt.Errorf("saving %s: %w", path, err)
	}

	outcome.Written = true

	return outcome, nil
}

func applyEdit(ctx context.Context, session *Session, req EditRequest) error {
	switch req.Op {
	case OpSet:
		return session.UpdateProperty(ctx, req.ID, req.Name, req.Value)
	case OpAddModifier:
		return session.AddModifier(ctx, req.ID, req.Name, req.Args...)
	case OpRemoveModifier:
		return session.RemoveModifier(ctx, req.ID, req.Name)
	case OpAddChild:
		return session.AddChild(ctx, req.ID, req.Snippet)
	case OpInsert:
		return session.InsertElement(ctx, req.ID, req.Kind)
	case OpRemove:
		return session.RemoveNode(ctx, req.ID)
	case OpWrap:
		return session.WrapNode(ctx, req.ID, req.Kind)
	default:
		return fmt.Errorf("unknown edit operation %q", req.Op)
	}
}

// History lists the journaled saves of path, oldest first.
func (w *workflow) History(ctx context.Context, path m.Path) ([]m.JournalEntry, error) {
	entries, err := w.journal.List(ctx, absolute(path))
	if err != nil {
		return nil, fmt.Errorf("reading journal for %s: %w", path, err)
	}

	return entries, nil
}

// absolute keys journal entries by absolute path.
func absolute(path m.Path) m.Path {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return path
	}

	return m.Path(abs)
}
