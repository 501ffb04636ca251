package scheduler

import "github.com/rs/zerolog"

type Option = func(s *Scheduler) *Scheduler

// WithLogger sets the logger rejections and failed runs are reported to.
// The default is a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Scheduler) *Scheduler {
		s.logger = logger
		return s
	}
}

// WithHooks replaces the LoopHooks implementation.
// Listeners added by AddOnTaskFired before this option applies are dropped,
// so pass WithHooks ahead of any listener registration.
func WithHooks(hooks LoopHooks) Option {
	return func(s *Scheduler) *Scheduler {
		if hooks != nil {
			s.hooks = newHookWrapper(hooks)
		}
		return s
	}
}

// WithHistorySize bounds the dispatch history to n records.
// 0 disables recording.
func WithHistorySize(n int) Option {
	return func(s *Scheduler) *Scheduler {
		s.history = newFireHistory(n)
		return s
	}
}
