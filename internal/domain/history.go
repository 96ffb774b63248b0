package domain

// History keeps whole-document snapshots for undo and redo. A snapshot is
// recorded before every mutation; undo swaps the current text for the most
// recent snapshot and keeps the current text for redo.
//
// History is not safe for concurrent use; the Session serialises access.
type History struct {
	undo  []string
	redo  []string
	depth int
}

// NewHistory creates a History keeping at most depth undo snapshots. A depth
// of zero or less keeps every snapshot.
func NewHistory(depth int) *History {
	if depth < 0 {
		depth = 0
	}

	return &History{depth: depth}
}

// RecordBeforeMutation pushes the text as it was before a mutation and
// discards the redo stack.
func (h *History) RecordBeforeMutation(text string) {
	h.undo = append(h.undo, text)
	h.redo = nil

	if h.depth > 0 && len(h.undo) > h.depth {
		// drop the oldest
		h.undo = append(h.undo[:0:0], h.undo[len(h.undo)-h.depth:]...)
	}
}

// Undo returns the text to restore, keeping current for redo. It reports
// false when there is nothing to undo.
func (h *History) Undo(current string) (string, bool) {
	if len(h.undo) == 0 {
		return current, false
	}

	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)

	return last, true
}

// Redo is the inverse of Undo.
func (h *History) Redo(current string) (string, bool) {
	if len(h.redo) == 0 {
		return current, false
	}

	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)

	return next, true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of undo snapshots held.
func (h *History) Len() int { return len(h.undo) }

// Clear forgets every snapshot.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
