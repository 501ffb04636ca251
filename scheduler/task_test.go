package scheduler_test

import (
	"testing"

	"github.com/google/uuid"

	"ticksched/scheduler"
)

func TestTask(t *testing.T) {
	owner := ownerDummyImpl{id: "svc"}
	noop := func() error { return nil }

	newLiveTask := func(t *testing.T) (*scheduler.Scheduler, *scheduler.Task) {
		t.Helper()
		s := scheduler.New()
		task, err := s.Schedule(owner, noop, 3, 5, "live")
		if err != nil {
			t.Fatalf("must not err: %v", err)
		}
		return s, task
	}

	t.Run("cancel", func(t *testing.T) {
		_, task := newLiveTask(t)

		if task.IsCancelled() {
			t.Fatalf("IsCancelled must be false")
		}
		if !task.Cancel() {
			t.Fatalf("cancelled must be true")
		}
		for i := 0; i < 10; i++ {
			if !task.IsCancelled() {
				t.Fatalf("IsCancelled must be true")
			}
			if task.Cancel() {
				t.Fatalf("cancelled must be false")
			}
			if task.State() != scheduler.Cancelled {
				t.Fatalf("state must be %s, but is %s", scheduler.Cancelled, task.State())
			}
		}
	})

	t.Run("accessors", func(t *testing.T) {
		s, task := newLiveTask(t)

		if task.Id() == uuid.Nil {
			t.Fatalf("id must be filled")
		}
		if task.Name() != "live" {
			t.Fatalf("name mismatched! passed=%s, received=%s", "live", task.Name())
		}
		if task.Owner().Id() != owner.Id() {
			t.Fatalf("owner mismatched! passed=%s, received=%s", owner.Id(), task.Owner().Id())
		}
		if task.Offset() != 3 {
			t.Fatalf("offset mismatched! passed=%d, received=%d", 3, task.Offset())
		}
		if task.Period() != 5 {
			t.Fatalf("period mismatched! passed=%d, received=%d", 5, task.Period())
		}
		if task.Timestamp() != s.Now() {
			t.Fatalf("timestamp must be the tick count at registration")
		}
		if task.State() != scheduler.Waiting {
			t.Fatalf("state must be %s, but is %s", scheduler.Waiting, task.State())
		}
	})

	t.Run("registration during a later tick stamps the current count", func(t *testing.T) {
		s := scheduler.New()
		tickN(s, 7)

		task, err := s.Schedule(owner, noop, 3, 5, "")
		if err != nil {
			t.Fatalf("must not err: %v", err)
		}
		if task.Timestamp() != 7 {
			t.Fatalf("timestamp mismatched! must be %d, but is %d", 7, task.Timestamp())
		}
	})
}

func TestStateString(t *testing.T) {
	for _, testCase := range []struct {
		state scheduler.State
		want  string
	}{
		{scheduler.Waiting, "waiting"},
		{scheduler.Running, "running"},
		{scheduler.Cancelled, "cancelled"},
		{scheduler.State(12), "unknown"},
	} {
		if got := testCase.state.String(); got != testCase.want {
			t.Errorf("mismatched! must be %s, but is %s", testCase.want, got)
		}
	}
}
