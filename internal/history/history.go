// Package history keeps bounded undo and redo stacks of grid snapshots.
package history

import "github.com/example/gridpaint/internal/grid"

// DefaultDepth is the number of undo steps kept when none is configured.
const DefaultDepth = 64

// History stores snapshots taken before each change to a painting.
type History struct {
	undo  []grid.Snapshot
	redo  []grid.Snapshot
	depth int
}

// New creates a History holding at most depth undo entries. A non-positive
// depth selects DefaultDepth.
func New(depth int) *History {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &History{depth: depth}
}

// Depth returns the undo limit.
func (h *History) Depth() int { return h.depth }

// RecordIfChanged pushes prior onto the undo stack when current differs
// from it. Recording evicts the oldest entries past the depth limit and
// discards the redo branch. It reports whether an entry was added.
func (h *History) RecordIfChanged(prior grid.Snapshot, current *grid.Grid) bool {
	if prior.IsZero() || prior.Equal(current) {
		return false
	}
	h.undo = append(h.undo, prior)
	if extra := len(h.undo) - h.depth; extra > 0 {
		h.undo = append(h.undo[:0:0], h.undo[extra:]...)
	}
	h.redo = h.redo[:0]
	return true
}

// Undo returns the previous painting, saving current for Redo. The boolean
// is false when there is nothing to undo.
func (h *History) Undo(current *grid.Grid) (*grid.Grid, bool) {
	return step(&h.undo, &h.redo, current)
}

// Redo returns the painting most recently undone, saving current for Undo.
func (h *History) Redo(current *grid.Grid) (*grid.Grid, bool) {
	return step(&h.redo, &h.undo, current)
}

func step(from, to *[]grid.Snapshot, current *grid.Grid) (*grid.Grid, bool) {
	if len(*from) == 0 {
		return nil, false
	}
	top := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	*to = append(*to, current.Snapshot())
	return top.Grid(), true
}

// Reset drops both stacks.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

// UndoLen returns the number of undo entries.
func (h *History) UndoLen() int { return len(h.undo) }

// RedoLen returns the number of redo entries.
func (h *History) RedoLen() int { return len(h.redo) }

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
