package tick

import "sync/atomic"

// runningState is a togglable running state.
type runningState struct {
	running uint32
}

func (s *runningState) setRunning(to ...bool) (swapped bool) {
	setTo := true
	for _, setState := range to {
		if !setState {
			setTo = false
		}
	}
	if setTo {
		return atomic.CompareAndSwapUint32(&s.running, 0, 1)
	} else {
		return atomic.CompareAndSwapUint32(&s.running, 1, 0)
	}
}

func (s *runningState) IsRunning() bool {
	return atomic.LoadUint32(&s.running) == 1
}

// endState is a one-way only transition to the ended state.
type endState struct {
	ended uint32
}

func (s *endState) setEnded() (swapped bool) {
	return atomic.CompareAndSwapUint32(&s.ended, 0, 1)
}

func (s *endState) IsEnded() bool {
	return atomic.LoadUint32(&s.ended) == 1
}
