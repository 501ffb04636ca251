package scheduler

import (
	"fmt"
	"math"
	"regexp"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultHistorySize = 32

// Scheduler is a tick driven task scheduler.
//
// It does not watch wall clock time. Its whole notion of time is a counter
// that only moves when Tick is called, and task offsets and periods are
// measured in ticks. Registration and queries are safe for concurrent use
// from any goroutine.
type Scheduler struct {
	counter int64

	reg       registry
	admission admission
	hooks     *hookWrapper
	history   *fireHistory
	logger    zerolog.Logger
}

func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		hooks:   newHookWrapper(PassThroughHook{}),
		history: newFireHistory(defaultHistorySize),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		s = opt(s)
	}
	return s
}

// Now is the current tick count. It is 0 until the first Tick.
func (s *Scheduler) Now() int64 {
	return atomic.LoadInt64(&s.counter)
}

// Tick advances time by one step and runs every due task synchronously,
// on the calling goroutine, in registration order. A slow task body delays
// all tasks after it in the same scan, and Tick does not return until the
// scan is over.
//
// Call Tick from a single goroutine, once per external time step.
func (s *Scheduler) Tick() {
	now := atomic.AddInt64(&s.counter, 1)
	s.scan(now)
}

// scan walks a snapshot of the registry. Tasks registered while the scan
// runs, from other goroutines or from task bodies, are picked up at the
// next Tick.
func (s *Scheduler) scan(now int64) {
	for _, t := range s.reg.snapshot() {
		st := t.State()
		if st == Cancelled {
			s.unregister(t, "cancelled")
			continue
		}

		// An unknown state never comes due.
		threshold := int64(math.MaxInt64)
		switch st {
		case Waiting:
			threshold = t.offset
		case Running:
			threshold = t.period
		}
		if threshold > now-t.Timestamp() {
			continue
		}

		t.setTimestamp(now)
		if err := s.invoke(t); err != nil {
			s.logger.Error().
				Err(err).
				Str("task_id", t.id.String()).
				Str("task_name", t.name).
				Int64("tick", now).
				Msg("the scheduler tried to run the task, but the task body failed")
			s.hooks.OnFireError(t, err)
			s.pushHistory(t, now, err)
			continue
		}

		t.setRunning()
		s.hooks.OnFire(t)
		s.pushHistory(t, now, nil)

		if t.period == 0 {
			s.unregister(t, "done")
		}
	}
}

func (s *Scheduler) invoke(t *Task) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = &RecoveredError{OriginalErr: recovered}
		}
	}()
	return t.body()
}

func (s *Scheduler) unregister(t *Task, reason string) {
	if !s.reg.remove(t) {
		return
	}
	s.logger.Debug().
		Str("task_id", t.id.String()).
		Str("task_name", t.name).
		Str("reason", reason).
		Msg("task unregistered")
	s.hooks.OnRemove(t)
}

func (s *Scheduler) pushHistory(t *Task, now int64, err error) {
	rec := FireRecord{
		TaskId: t.id,
		Name:   t.name,
		Owner:  t.owner.Id(),
		Tick:   now,
	}
	if err != nil {
		rec.Err = err.Error()
	}
	s.history.push(rec)
}

// Schedule registers a task for owner. offset is the wait in ticks before
// the first run, period the wait between later runs, 0 meaning run once.
// An empty name lets the scheduler pick one.
//
// The returned Task is live: it fires once its offset elapses, counted from
// the tick count at registration.
func (s *Scheduler) Schedule(owner Owner, body TaskFunc, offset, period int64, name string) (*Task, error) {
	t, err := s.admission.accept(owner, body, offset, period, name, s.Now())
	if err != nil {
		s.logRejection(err)
		return nil, err
	}
	s.reg.insert(t)
	return t, nil
}

// ScheduleOnce registers a task that runs at the next tick and is then removed.
func (s *Scheduler) ScheduleOnce(owner Owner, body TaskFunc) (*Task, error) {
	return s.Schedule(owner, body, 0, 0, "")
}

// ScheduleAfter registers a task that runs once, offset ticks from now.
func (s *Scheduler) ScheduleAfter(owner Owner, body TaskFunc, offset int64) (*Task, error) {
	return s.Schedule(owner, body, offset, 0, "")
}

// ScheduleRepeating registers a task that runs at the next tick and then
// every period ticks.
func (s *Scheduler) ScheduleRepeating(owner Owner, body TaskFunc, period int64) (*Task, error) {
	return s.Schedule(owner, body, 0, period, "")
}

// ScheduleRepeatingAfter registers a task that first runs offset ticks from
// now and then every period ticks.
func (s *Scheduler) ScheduleRepeatingAfter(owner Owner, body TaskFunc, offset, period int64) (*Task, error) {
	return s.Schedule(owner, body, offset, period, "")
}

// Cancel marks the task with the given id cancelled. The task leaves the
// registry at the next Tick; until then queries still observe it.
// It reports false when no task has the id or it was already cancelled.
func (s *Scheduler) Cancel(id uuid.UUID) bool {
	t, ok := s.reg.byId(id)
	if !ok {
		return false
	}
	return t.Cancel()
}

func (s *Scheduler) GetById(id uuid.UUID) (*Task, bool) {
	return s.reg.byId(id)
}

// GetAll returns every live task in registration order.
// The slice is a snapshot; later registrations and removals do not show in it.
func (s *Scheduler) GetAll() []*Task {
	return s.reg.snapshot()
}

// GetByOwner returns every live task registered for owner.
// A nil owner is refused the same way registration refuses it.
func (s *Scheduler) GetByOwner(owner Owner) ([]*Task, error) {
	if owner == nil {
		err := &RejectionError{Kind: InvalidOwner}
		s.logRejection(err)
		return nil, err
	}
	return s.reg.byOwnerId(owner.Id()), nil
}

// FindIdByName returns the id of the first task whose name is exactly name.
func (s *Scheduler) FindIdByName(name string) (uuid.UUID, bool) {
	return s.reg.idByName(name)
}

// FindByNamePattern returns every task whose whole name matches pattern.
// A pattern matching only part of a name does not select the task.
func (s *Scheduler) FindByNamePattern(pattern string) ([]*Task, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return s.reg.byNamePattern(re), nil
}

// History returns the recent runs, oldest first.
func (s *Scheduler) History() []FireRecord {
	return s.history.snapshot()
}

// AddOnTaskFired registers fn to be called after every run, with a nil err
// for successful ones. fn runs on the goroutine that calls Tick and delays
// the scan while it runs. The pointer is the identity for RemoveOnTaskFired.
func (s *Scheduler) AddOnTaskFired(fn *OnTaskFired) {
	s.hooks.addOnTaskFired(fn)
}

func (s *Scheduler) RemoveOnTaskFired(fn *OnTaskFired) {
	s.hooks.removeOnTaskFired(fn)
}

func (s *Scheduler) logRejection(err error) {
	rejection, ok := err.(*RejectionError)
	if !ok {
		return
	}
	ev := s.logger.Warn()
	switch rejection.Kind {
	case NegativeOffset, NegativePeriod:
		ev = s.logger.Error()
	}
	ev.
		Str("owner", rejection.Owner).
		Str("kind", string(rejection.Kind)).
		Msg(rejection.Kind.Message())
}
