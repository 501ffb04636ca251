package scheduler

import (
	"sync"

	"github.com/google/uuid"
	"github.com/ngicks/type-param-common/slice"
)

// FireRecord is one line of the dispatch history.
// Err is empty for a successful run.
type FireRecord struct {
	TaskId uuid.UUID
	Name   string
	Owner  string
	Tick   int64
	Err    string
}

// fireHistory is a bounded record of recent runs, oldest first.
// A max of 0 or less disables recording.
type fireHistory struct {
	mu   sync.Mutex
	max  int
	size int
	q    slice.Deque[FireRecord]
}

func newFireHistory(max int) *fireHistory {
	return &fireHistory{max: max}
}

func (h *fireHistory) push(rec FireRecord) {
	if h.max <= 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.q.PushBack(rec)
	h.size++
	for h.size > h.max {
		h.q.PopFront()
		h.size--
	}
}

func (h *fireHistory) snapshot() []FireRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	cloned := make([]FireRecord, 0, h.size)
	for {
		rec, popped := h.q.PopFront()
		if !popped {
			break
		}
		cloned = append(cloned, rec)
	}
	for _, rec := range cloned {
		h.q.PushBack(rec)
	}
	return cloned
}
