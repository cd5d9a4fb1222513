// Package history keeps a bounded stack of scene snapshots for undo.
package history

import "github.com/example/snapedit/internal/scene"

// DefaultLimit is the number of snapshots kept when no limit is given.
const DefaultLimit = 20

// Stack is a bounded LIFO of snapshots. Pushing onto a full stack drops the
// oldest entry.
type Stack struct {
	limit int
	items []scene.Snapshot
}

// New returns a stack holding at most limit snapshots. A limit below one
// selects DefaultLimit.
func New(limit int) *Stack {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Stack{limit: limit}
}

// Push stores a deep copy of s.
func (h *Stack) Push(s scene.Snapshot) {
	s.Items = s.Items.Clone()
	if len(h.items) >= h.limit {
		n := copy(h.items, h.items[len(h.items)-h.limit+1:])
		h.items = h.items[:n]
	}
	h.items = append(h.items, s)
}

// Pop removes and returns the newest snapshot. ok is false when empty.
func (h *Stack) Pop() (s scene.Snapshot, ok bool) {
	if len(h.items) == 0 {
		return scene.Snapshot{}, false
	}
	s = h.items[len(h.items)-1]
	h.items[len(h.items)-1] = scene.Snapshot{}
	h.items = h.items[:len(h.items)-1]
	return s, true
}

// Len returns the number of stored snapshots.
func (h *Stack) Len() int { return len(h.items) }

// Limit returns the capacity.
func (h *Stack) Limit() int { return h.limit }

// Reset drops every snapshot.
func (h *Stack) Reset() { h.items = nil }
