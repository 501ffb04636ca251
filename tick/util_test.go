package tick_test

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ngicks/gommon/pkg/common"

	"ticksched/tick"
)

var _ common.NowGetter = new(getNowDummyImpl)
var _ common.Timer = new(timerDummyImpl)
var _ tick.Advancer = new(countAdvancer)

type getNowDummyImpl struct {
	mu    sync.Mutex
	dummy time.Time
}

func (g *getNowDummyImpl) GetNow() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dummy
}

func (g *getNowDummyImpl) set(now time.Time) {
	g.mu.Lock()
	g.dummy = now
	g.mu.Unlock()
}

// timerDummyImpl records Reset args and lets tests fire the channel by hand.
type timerDummyImpl struct {
	mu       sync.Mutex
	ch       chan time.Time
	resetArg []time.Duration
	resetCh  chan time.Duration
}

func newTimerDummy() *timerDummyImpl {
	return &timerDummyImpl{
		ch:      make(chan time.Time),
		resetCh: make(chan time.Duration, 16),
	}
}

func (t *timerDummyImpl) C() <-chan time.Time {
	return t.ch
}

func (t *timerDummyImpl) Reset(d time.Duration) {
	t.mu.Lock()
	t.resetArg = append(t.resetArg, d)
	t.mu.Unlock()
	t.resetCh <- d
}

func (t *timerDummyImpl) Stop() bool {
	return false
}

func (t *timerDummyImpl) fire(now time.Time) {
	t.ch <- now
}

type countAdvancer struct {
	count int32
}

func (a *countAdvancer) Tick() {
	atomic.AddInt32(&a.count, 1)
}

func (a *countAdvancer) Count() int32 {
	return atomic.LoadInt32(&a.count)
}
