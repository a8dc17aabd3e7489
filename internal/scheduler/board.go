package scheduler

import (
	"sync"
	"sync/atomic"
)

// Board holds the current batch's task list.
//
// Writers build a new slice under mu and publish it with one atomic store;
// a published slice is never modified again, so readers always see a
// complete list without locking.
type Board struct {
	mu    sync.Mutex
	tasks atomic.Pointer[[]Task]
	gen   uint64 // bumped by Set and Clear; guarded by mu
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	b := &Board{}
	empty := []Task{}
	b.tasks.Store(&empty)
	return b
}

// Snapshot returns a copy of the current list.
func (b *Board) Snapshot() []Task {
	p := b.tasks.Load()
	if p == nil {
		return nil
	}
	out := make([]Task, len(*p))
	copy(out, *p)
	return out
}

// Set publishes a new batch and returns its generation.
func (b *Board) Set(tasks []Task) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	next := make([]Task, len(tasks))
	copy(next, tasks)
	b.tasks.Store(&next)
	b.gen++
	return b.gen
}

// Update sets the status of task id in the current list.
func (b *Board) Update(id int, status Status) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var cur []Task
	if p := b.tasks.Load(); p != nil {
		cur = *p
	}
	next := make([]Task, len(cur))
	copy(next, cur)
	for i := range next {
		if next[i].ID == id {
			next[i].Status = status
		}
	}
	b.tasks.Store(&next)
}

// Clear empties the board.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearLocked()
}

// ClearIf empties the board only if gen is still the current generation.
func (b *Board) ClearIf(gen uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gen != gen {
		return false
	}
	b.clearLocked()
	return true
}

func (b *Board) clearLocked() {
	empty := []Task{}
	b.tasks.Store(&empty)
	b.gen++
}
