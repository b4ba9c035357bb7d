// Package editor holds the mutable editing state of one sequence document:
// the authoritative tree, undo/redo history, selection and clipboard. All
// mutations flow through the Store; nothing else may splice the tree.
package editor

import "github.com/astrokit/seqedit/internal/models"

// DefaultHistoryLimit bounds the undo stack.
const DefaultHistoryLimit = 50

// History is a bounded linear undo/redo stack of whole-document snapshots.
// entries[cursor] is always a snapshot of the current document. Undo and
// redo at the stack boundaries are no-ops, never errors.
type History struct {
	entries []*models.Sequence
	cursor  int
	limit   int
}

// NewHistory creates a history seeded with the initial document state.
func NewHistory(initial *models.Sequence, limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{
		entries: []*models.Sequence{initial.Clone()},
		cursor:  0,
		limit:   limit,
	}
}

// Push records the document state after a mutation. Any redo entries beyond
// the cursor are discarded; pushing past the cap evicts the oldest entry.
func (h *History) Push(doc *models.Sequence) {
	h.entries = append(h.entries[:h.cursor+1], doc.Clone())
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	h.cursor = len(h.entries) - 1
}

// Undo steps back one snapshot. The second result is false at the boundary.
func (h *History) Undo() (*models.Sequence, bool) {
	if h.cursor == 0 {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor].Clone(), true
}

// Redo steps forward one snapshot. The second result is false at the head.
func (h *History) Redo() (*models.Sequence, bool) {
	if h.cursor >= len(h.entries)-1 {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor].Clone(), true
}

// CanUndo reports whether an earlier snapshot exists.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether the cursor sits behind the head.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Len returns the number of retained snapshots.
func (h *History) Len() int { return len(h.entries) }
