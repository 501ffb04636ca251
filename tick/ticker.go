package tick

import (
	"context"
	"fmt"
	"time"

	"github.com/ngicks/gommon/pkg/common"
)

// Advancer consumes one discrete time step per Tick call.
type Advancer interface {
	Tick()
}

// Ticker feeds wall clock time to an Advancer: every interval it calls
// Tick once. When a Tick call or the process itself stalls past one or
// more intervals, Ticker catches up by calling Tick once per missed
// interval, so the step count of the target keeps pace with elapsed time.
type Ticker struct {
	runningState
	endState

	interval time.Duration
	target   Advancer

	getNow common.NowGetter
	timer  common.Timer
}

type TickerOption = func(t *Ticker) *Ticker

// WithNowGetter replaces the wall clock source.
func WithNowGetter(getNow common.NowGetter) TickerOption {
	return func(t *Ticker) *Ticker {
		if getNow != nil {
			t.getNow = getNow
		}
		return t
	}
}

// WithTimer replaces the interval timer.
func WithTimer(timer common.Timer) TickerOption {
	return func(t *Ticker) *Ticker {
		if timer != nil {
			t.timer = timer
		}
		return t
	}
}

// NewTicker creates a Ticker that calls target.Tick every interval once Run is called.
//
// panic: when interval is not positive or target is nil.
func NewTicker(interval time.Duration, target Advancer, opts ...TickerOption) *Ticker {
	if interval <= 0 || target == nil {
		panic(fmt.Errorf(
			"%w: interval must be positive and target must be non-nil. interval=[%s], target is nil=[%t]",
			ErrInvalidArg,
			interval,
			target == nil,
		))
	}

	t := &Ticker{
		interval: interval,
		target:   target,
		getNow:   common.NowGetterReal{},
		timer:    common.NewTimerReal(),
	}
	for _, opt := range opts {
		t = opt(t)
	}
	return t
}

// Run loops until ctx is cancelled, delivering one Tick per elapsed interval.
// Cancelling ctx ends the loop, with returning nil.
//
// Run returns ErrAlreadyStarted while another Run is in flight,
// and ErrAlreadyEnded after End was called.
func (t *Ticker) Run(ctx context.Context) error {
	if t.IsEnded() {
		return ErrAlreadyEnded
	}
	if !t.setRunning() {
		return ErrAlreadyStarted
	}
	defer t.setRunning(false)

	next := t.getNow.GetNow().Add(t.interval)
	t.timer.Reset(t.interval)
	defer func() {
		if !t.timer.Stop() {
			select {
			case <-t.timer.C():
			default:
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.timer.C():
			t.target.Tick()
			next = next.Add(t.interval)
			// Catch-up: deliver the steps this process slept through.
			now := t.getNow.GetNow()
			for !next.After(now) {
				t.target.Tick()
				next = next.Add(t.interval)
			}
			t.timer.Reset(next.Sub(now))
		}
	}
}

// End ends the Ticker. Later Run calls return ErrAlreadyEnded.
// It does not interrupt a Run in flight; cancel its ctx for that.
func (t *Ticker) End() {
	t.setEnded()
}
