package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestCronSchedulerRunsImmediately(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs int32
	c := NewCronScheduler("@every 1h", time.UTC)
	if err := c.Start(ctx, func(time.Time) { atomic.AddInt32(&runs, 1) }); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer c.Stop(context.Background())

	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Fatalf("expected one immediate run, got %d", got)
	}
}

func TestCronSchedulerRejectsInvalidSpec(t *testing.T) {
	t.Parallel()

	c := NewCronScheduler("not a cron spec", time.UTC)
	if err := c.Start(context.Background(), func(time.Time) {}); err == nil {
		t.Fatalf("expected error for invalid cron expression")
	}
}

// A slow job must never run twice at once, however short the period.
func TestCronSchedulerSkipsOverlappingRuns(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var active, peak, runs int32
	job := func(time.Time) {
		atomic.AddInt32(&runs, 1)
		cur := atomic.AddInt32(&active, 1)
		for {
			seen := atomic.LoadInt32(&peak)
			if cur <= seen || atomic.CompareAndSwapInt32(&peak, seen, cur) {
				break
			}
		}
		time.Sleep(150 * time.Millisecond)
		atomic.AddInt32(&active, -1)
	}

	c := NewCronScheduler("@every 10ms", time.UTC)
	if err := c.Start(ctx, job); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	time.Sleep(400 * time.Millisecond)
	if err := c.Stop(context.Background()); err != nil {
		t.Fatalf("Stop error: %v", err)
	}

	if got := atomic.LoadInt32(&peak); got != 1 {
		t.Fatalf("job overlapped itself, peak concurrency %d", got)
	}
	if got := atomic.LoadInt32(&runs); got < 2 {
		t.Fatalf("expected the job to keep firing after a slow run, got %d runs", got)
	}
}
