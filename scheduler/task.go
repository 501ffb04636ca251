package scheduler

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// TaskFunc is the body of a Task.
// It is invoked on the goroutine that calls Tick.
// A non-nil return marks the run as failed; the task keeps its state
// and is retried when its threshold elapses again.
type TaskFunc = func() error

// Owner identifies the entity a task is registered for.
// Implementations must be safe for concurrent use.
type Owner interface {
	Id() string
}

// State is the lifecycle state of a Task.
//
// A task starts Waiting, becomes Running after its first successful run,
// and is Cancelled by Cancel. Cancelled is terminal.
type State uint32

const (
	Waiting State = iota
	Running
	Cancelled
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Running:
		return "running"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Task is a unit of scheduled work measured in ticks, not wall clock time.
//
// offset is the wait before the first run, counted from the tick the task
// was registered at. period is the wait between later runs; 0 means the
// task runs once and is then removed.
type Task struct {
	id     uuid.UUID
	name   string
	owner  Owner
	body   TaskFunc
	offset int64
	period int64

	timestamp int64
	state     uint32
}

func newTask(owner Owner, body TaskFunc, offset, period int64, name string, now int64) *Task {
	return &Task{
		id:        uuid.New(),
		name:      name,
		owner:     owner,
		body:      body,
		offset:    offset,
		period:    period,
		timestamp: now,
	}
}

func (t *Task) Id() uuid.UUID {
	return t.id
}

func (t *Task) Name() string {
	return t.name
}

func (t *Task) Owner() Owner {
	return t.owner
}

func (t *Task) Offset() int64 {
	return t.offset
}

func (t *Task) Period() int64 {
	return t.period
}

// Timestamp is the tick count at which t was registered or last dispatched.
func (t *Task) Timestamp() int64 {
	return atomic.LoadInt64(&t.timestamp)
}

func (t *Task) setTimestamp(now int64) {
	atomic.StoreInt64(&t.timestamp, now)
}

func (t *Task) State() State {
	return State(atomic.LoadUint32(&t.state))
}

// Cancel marks t cancelled. The dispatch loop unregisters cancelled tasks
// at its next scan; until then queries still observe t.
// It reports false when t was already cancelled.
func (t *Task) Cancel() (cancelled bool) {
	for {
		old := atomic.LoadUint32(&t.state)
		if State(old) == Cancelled {
			return false
		}
		if atomic.CompareAndSwapUint32(&t.state, old, uint32(Cancelled)) {
			return true
		}
	}
}

func (t *Task) IsCancelled() bool {
	return t.State() == Cancelled
}

// setRunning moves t to Running after a successful run.
// It never overwrites Cancelled; a concurrent Cancel wins.
func (t *Task) setRunning() (swapped bool) {
	for {
		old := atomic.LoadUint32(&t.state)
		switch State(old) {
		case Cancelled:
			return false
		case Running:
			return true
		}
		if atomic.CompareAndSwapUint32(&t.state, old, uint32(Running)) {
			return true
		}
	}
}
