package scheduler

import (
	"sync"

	"github.com/ngicks/type-param-common/set"
)

// LoopHooks are points the dispatch loop reports through.
//
// OnFire is called after a successful run of a task body.
// OnFireError is called after a failed run.
// OnRemove is called right after a task leaves the registry,
// be it a finished one-shot task or a cancelled one.
//
// Hooks run on the goroutine that calls Tick and delay the scan while they run.
type LoopHooks interface {
	OnFire(task *Task)
	OnFireError(task *Task, err error)
	OnRemove(task *Task)
}

// PassThroughHook is the simplest implementation of LoopHooks.
// It does nothing.
type PassThroughHook struct{}

func (h PassThroughHook) OnFire(_ *Task)               {}
func (h PassThroughHook) OnFireError(_ *Task, _ error) {}
func (h PassThroughHook) OnRemove(_ *Task)             {}

type OnTaskFired = func(task *Task, err error)

type hookWrapper struct {
	LoopHooks
	sync.RWMutex
	onTaskFired *set.OrderedSet[*OnTaskFired]
}

func newHookWrapper(hooks LoopHooks) *hookWrapper {
	return &hookWrapper{
		LoopHooks:   hooks,
		onTaskFired: set.NewOrdered[*OnTaskFired](),
	}
}

func (h *hookWrapper) addOnTaskFired(fn *OnTaskFired) {
	if fn == nil || *fn == nil {
		return
	}

	h.Lock()
	h.onTaskFired.Add(fn)
	h.Unlock()
}

func (h *hookWrapper) removeOnTaskFired(fn *OnTaskFired) {
	if fn == nil || *fn == nil {
		return
	}

	h.Lock()
	h.onTaskFired.Delete(fn)
	h.Unlock()
}

func (h *hookWrapper) OnFire(task *Task) {
	h.LoopHooks.OnFire(task)
	h.notifyTaskFired(task, nil)
}

func (h *hookWrapper) OnFireError(task *Task, err error) {
	h.LoopHooks.OnFireError(task, err)
	h.notifyTaskFired(task, err)
}

func (h *hookWrapper) notifyTaskFired(task *Task, err error) {
	h.RLock()
	defer h.RUnlock()

	h.onTaskFired.ForEach(func(fn *OnTaskFired, _ int) {
		(*fn)(task, err)
	})
}
