package scheduler

import (
	"fmt"
	"sync/atomic"
)

// admission validates registration requests and names the accepted ones.
//
// seq only advances on acceptance, so rejected requests leave no trace.
type admission struct {
	seq int64
}

func (a *admission) accept(owner Owner, body TaskFunc, offset, period int64, name string, now int64) (*Task, error) {
	if owner == nil {
		return nil, &RejectionError{Kind: InvalidOwner}
	}
	if body == nil {
		return nil, &RejectionError{Owner: owner.Id(), Kind: InvalidBody}
	}
	if offset < 0 {
		return nil, &RejectionError{Owner: owner.Id(), Kind: NegativeOffset}
	}
	if period < 0 {
		return nil, &RejectionError{Owner: owner.Id(), Kind: NegativePeriod}
	}

	seq := atomic.AddInt64(&a.seq, 1)
	if name == "" {
		name = defaultTaskName(owner, seq)
	}
	return newTask(owner, body, offset, period, name, now), nil
}

// defaultTaskName is "<owner id>-S<seq>", or "Unknown-<seq>" when the
// owner reports an empty id.
func defaultTaskName(owner Owner, seq int64) string {
	if id := owner.Id(); id != "" {
		return fmt.Sprintf("%s-S%d", id, seq)
	}
	return fmt.Sprintf("Unknown-%d", seq)
}
