package jobs

import (
	"context"
	"log"
	"sync"
	"time"
)

// Sweeper is satisfied by services.StatusSweeper.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// StatusSweepJob periodically moves due planifications to loading.
type StatusSweepJob struct {
	sweeper  Sweeper
	interval time.Duration
	now      func() time.Time

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// DefaultSweepInterval replaces a non-positive interval.
const DefaultSweepInterval = time.Minute

func NewStatusSweepJob(s Sweeper, interval time.Duration) *StatusSweepJob {
	if interval <= 0 {
		log.Printf("status sweep job: invalid interval=%s, using %s", interval, DefaultSweepInterval)
		interval = DefaultSweepInterval
	}
	return &StatusSweepJob{
		sweeper:  s,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs one sweep immediately, then one per interval until Stop is
// called or ctx is done.
func (j *StatusSweepJob) Start(ctx context.Context) {
	log.Printf("status sweep job started: interval=%s", j.interval)

	go func() {
		defer close(j.done)

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		j.run(ctx)
		for {
			select {
			case <-ticker.C:
				j.run(ctx)
			case <-j.stop:
				log.Printf("status sweep job stopped")
				return
			case <-ctx.Done():
				log.Printf("status sweep job stopped: err=%v", ctx.Err())
				return
			}
		}
	}()
}

// Stop ends the loop and waits for an in-flight sweep to finish. Safe to
// call more than once.
func (j *StatusSweepJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
	<-j.done
}

func (j *StatusSweepJob) run(ctx context.Context) {
	n, err := j.sweeper.Sweep(ctx, j.now())
	if err != nil {
		log.Printf("status sweep failed: changed=%d err=%v", n, err)
		return
	}
	if n > 0 {
		log.Printf("status sweep completed: changed=%d", n)
	}
}
