package main

import (
	"context"
	"fmt"
	"time"

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
	sched := scheduler.New()
	owner := service("example-simple")

	start := time.Now()
	elapsed := func() string {
		return time.Since(start).Round(10 * time.Millisecond).String()
	}

	if _, err := sched.ScheduleOnce(owner, func() error {
		fmt.Printf("tick %d (%s): one-shot, runs at the next tick\n", sched.Now(), elapsed())
		return nil
	}); err != nil {
		return err
	}

	if _, err := sched.ScheduleAfter(owner, func() error {
		fmt.Printf("tick %d (%s): delayed by 5 ticks\n", sched.Now(), elapsed())
		return nil
	}, 5); err != nil {
		return err
	}

	task, err := sched.ScheduleAfter(owner, func() error {
		fmt.Println("never printed; cancelled before its offset elapses")
		return nil
	}, 15)
	if err != nil {
		return err
	}
	go func() {
		time.Sleep(300 * time.Millisecond)
		sched.Cancel(task.Id())
	}()

	// 1 tick per 50ms; the scheduler itself never watches the clock.
	ticker := tick.NewTicker(50*time.Millisecond, sched)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := ticker.Run(ctx); err != nil {
		return err
	}

	for _, rec := range sched.History() {
		fmt.Printf("history: tick=%d name=%s err=%q\n", rec.Tick, rec.Name, rec.Err)
	}
	return nil
}
