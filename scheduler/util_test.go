package scheduler_test

import (
	"encoding/hex"
	"sync"

	"github.com/ngicks/gommon/pkg/randstr"

	"ticksched/scheduler"
)

var randGen *randstr.Generator = randstr.New(randstr.EncoderFactory(hex.NewEncoder))

func randStrLen(length int) string {
	str, err := randGen.StringLen(int64(length))
	if err != nil {
		panic(err)
	}
	return str
}

var _ scheduler.Owner = ownerDummyImpl{}

type ownerDummyImpl struct {
	id string
}

func (o ownerDummyImpl) Id() string {
	return o.id
}

func tickN(s *scheduler.Scheduler, n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

func taskNames(tasks []*scheduler.Task) []string {
	names := make([]string, len(tasks))
	for i, task := range tasks {
		names[i] = task.Name()
	}
	return names
}

var _ scheduler.LoopHooks = (*recordingHook)(nil)

// recordingHook records every hook invocation by task name.
type recordingHook struct {
	mu      sync.Mutex
	fired   []string
	failed  []string
	removed []string
	errs    []error
}

func (h *recordingHook) OnFire(task *scheduler.Task) {
	h.mu.Lock()
	h.fired = append(h.fired, task.Name())
	h.mu.Unlock()
}

func (h *recordingHook) OnFireError(task *scheduler.Task, err error) {
	h.mu.Lock()
	h.failed = append(h.failed, task.Name())
	h.errs = append(h.errs, err)
	h.mu.Unlock()
}

func (h *recordingHook) OnRemove(task *scheduler.Task) {
	h.mu.Lock()
	h.removed = append(h.removed, task.Name())
	h.mu.Unlock()
}

func (h *recordingHook) Fired() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string{}, h.fired...)
}

func (h *recordingHook) Failed() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string{}, h.failed...)
}

func (h *recordingHook) Removed() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string{}, h.removed...)
}

func (h *recordingHook) Errs() []error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]error{}, h.errs...)
}
