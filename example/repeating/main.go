package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"ticksched/scheduler"
	"ticksched/tick"
)

type service string

func (s service) Id() string {
	return string(s)
}

func main() {
	if err := _main(); err != nil {
		panic(err)
	}
}

func _main() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	sched := scheduler.New(
		scheduler.WithLogger(logger),
		scheduler.WithHistorySize(16),
	)

	listener := scheduler.OnTaskFired(func(task *scheduler.Task, err error) {
		if err != nil {
			fmt.Printf("tick %d: %s failed: %v\n", sched.Now(), task.Name(), err)
			return
		}
		fmt.Printf("tick %d: %s ran\n", sched.Now(), task.Name())
	})
	sched.AddOnTaskFired(&listener)

	owner := service("example-repeating")

	count := 0
	beat, err := sched.Schedule(owner, func() error {
		count++
		return nil
	}, 0, 2, "heartbeat")
	if err != nil {
		return err
	}

	// Fails twice; a failed run keeps the task registered, so it is
	// retried after its offset elapses again.
	attempt := 0
	if _, err := sched.Schedule(owner, func() error {
		attempt++
		if attempt < 3 {
			return errors.New("not ready yet")
		}
		return nil
	}, 3, 0, "flaky-once"); err != nil {
		return err
	}

	go func() {
		time.Sleep(700 * time.Millisecond)
		sched.Cancel(beat.Id())
	}()

	ticker := tick.NewTicker(50*time.Millisecond, sched)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := ticker.Run(ctx); err != nil {
		return err
	}

	fmt.Printf("heartbeat ran %d times, flaky-once took %d attempts\n", count, attempt)
	return nil
}
