package controller

import (
	m "github.com/mouse-blink/treesync/internal/model"
)

// Message types.

// editedMsg reports a finished session operation. status is shown in the
// status line; err is set when the operation was rejected.
type editedMsg struct {
	status string
	err    error
}

// fileChangedMsg is delivered when the watcher sees the document change.
type fileChangedMsg struct {
	path m.Path
}

// reloadedMsg reports the outcome of a reload triggered by the watcher.
type reloadedMsg struct {
	path     m.Path
	reloaded bool
	err      error
}

// watchClosedMsg is delivered when the watcher channel closes.
type watchClosedMsg struct{}

// List item types.
type nodeItem struct {
	row      treeRow
	selected bool
}

func (n nodeItem) FilterValue() string {
	return n.row.label
}
