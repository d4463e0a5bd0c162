// Package history implements a bounded undo/redo stack over full document
// snapshots.
package history

import "errors"

// ErrNoHistory is returned by Undo and Redo at the respective stack
// boundary. It is an expected negative result, not a failure.
var ErrNoHistory = errors.New("no history available")

// DefaultCapacity bounds the undo stack; the oldest snapshot is dropped
// silently once the bound is reached.
const DefaultCapacity = 50

// History holds the current document plus past and future snapshot stacks.
// The current document is never present in either stack. History is not
// safe for concurrent use; the owning session serializes access.
type History struct {
	past     []string
	current  string
	future   []string
	capacity int
}

// New creates a History with the given initial document and DefaultCapacity.
func New(initial string) *History {
	return NewWithCapacity(initial, DefaultCapacity)
}

// NewWithCapacity creates a History with an explicit undo-stack bound.
// Capacity values below 1 fall back to DefaultCapacity.
func NewWithCapacity(initial string, capacity int) *History {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &History{current: initial, capacity: capacity}
}

// Current returns the current document snapshot.
func (h *History) Current() string {
	return h.current
}

// Record pushes the current document onto the undo stack and makes doc the
// new current snapshot. Any redo entries are discarded. Recording happens
// even when doc equals the current document; callers wanting equality
// short-circuits must check first.
func (h *History) Record(doc string) {
	h.past = append(h.past, h.current)
	if len(h.past) > h.capacity {
		h.past = h.past[len(h.past)-h.capacity:]
	}
	h.current = doc
	h.future = nil
}

// Undo restores the most recent past snapshot and returns it. The replaced
// current snapshot becomes redoable.
func (h *History) Undo() (string, error) {
	if len(h.past) == 0 {
		return "", ErrNoHistory
	}
	h.future = append(h.future, h.current)
	h.current = h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	return h.current, nil
}

// Redo restores the most recently undone snapshot and returns it.
func (h *History) Redo() (string, error) {
	if len(h.future) == 0 {
		return "", ErrNoHistory
	}
	h.past = append(h.past, h.current)
	h.current = h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	return h.current, nil
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool {
	return len(h.future) > 0
}

// Depth returns the number of undoable snapshots.
func (h *History) Depth() int {
	return len(h.past)
}
