package cron

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// sweeper is the slice of the lifecycle service the scheduler drives.
type sweeper interface {
	SweepScheduledDissolutions(ctx context.Context) (int, error)
}

// Scheduler runs the dissolution sweep on a fixed interval. Ticks that
// overlap a still-running sweep are skipped rather than queued.
type Scheduler struct {
	cron      *cron.Cron
	lifecycle sweeper
	interval  time.Duration

	mu      sync.Mutex
	running bool
	entryID cron.EntryID
}

func NewScheduler(lifecycle sweeper, interval time.Duration) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
		lifecycle: lifecycle,
		interval:  interval,
	}
}

// Start registers the sweep job and kicks off an immediate first sweep in
// the background. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	spec := fmt.Sprintf("@every %s", s.interval)
	entryID, err := s.cron.AddFunc(spec, s.runSweep)
	if err != nil {
		return fmt.Errorf("failed to schedule dissolution sweep: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.running = true
	log.Printf("[Scheduler] Started, sweeping every %s", s.interval)

	go s.runSweep()
	return nil
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	log.Println("[Scheduler] Stopped")
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	dissolved, err := s.lifecycle.SweepScheduledDissolutions(ctx)
	if err != nil {
		log.Printf("[Scheduler] Dissolution sweep failed: %v", err)
		return
	}
	log.Printf("[Scheduler] Dissolution sweep complete: %d workspace(s) dissolved", dissolved)
}

// TriggerManualProcessing runs one sweep synchronously, outside the cron
// chain. Safe to call while a scheduled sweep runs: the lifecycle service
// serializes per workspace.
func (s *Scheduler) TriggerManualProcessing(ctx context.Context) (int, error) {
	return s.lifecycle.SweepScheduledDissolutions(ctx)
}

// Status reports whether the scheduler runs and when the next sweep fires.
func (s *Scheduler) Status() (bool, *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return false, nil
	}
	entry := s.cron.Entry(s.entryID)
	if entry.Next.IsZero() {
		return true, nil
	}
	next := entry.Next
	return true, &next
}
