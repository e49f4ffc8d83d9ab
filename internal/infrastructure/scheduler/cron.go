package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/renan-b-eth/Automacao-Diario/internal/ports"
)

// CronScheduler drives recurring pipeline runs from a cron expression.
type CronScheduler struct {
	spec     string
	location *time.Location
	cron     *cron.Cron
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler for the given cron expression and
// timezone.
func NewCronScheduler(spec string, location *time.Location) *CronScheduler {
	if location == nil {
		location = time.UTC
	}
	return &CronScheduler{spec: spec, location: location}
}

// Start registers the job and begins the cron loop. The job also fires once
// immediately so a restart never waits a full period for its first run.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if c.cron != nil {
		return nil
	}

	// A run that outlasts the period must not overlap the next trigger:
	// the pipeline shares one history store across runs.
	runner := cron.New(
		cron.WithLocation(c.location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	if _, err := runner.AddFunc(c.spec, func() { job(time.Now().In(c.location)) }); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", c.spec, err)
	}

	c.cron = runner
	job(time.Now().In(c.location))
	runner.Start()

	go func() {
		<-ctx.Done()
		runner.Stop()
	}()

	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (c *CronScheduler) Stop(ctx context.Context) error {
	if c.cron == nil {
		return nil
	}

	stopped := c.cron.Stop()
	c.cron = nil

	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
