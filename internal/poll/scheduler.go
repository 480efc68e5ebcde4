// Package poll runs a periodic task behind a refresh-allowed
// predicate.
package poll

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler fires a task on a fixed interval. Before each tick it
// evaluates the allowed predicate and skips the task when it returns
// false; the skipped tick is not made up later.
type Scheduler struct {
	cron    *cron.Cron
	allowed func() bool
	task    func()
}

// New builds a scheduler. allowed may be nil, meaning always allowed.
func New(interval time.Duration, allowed func() bool, task func()) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %s", interval)
	}
	if task == nil {
		return nil, fmt.Errorf("poll task is required")
	}

	s := &Scheduler{
		cron:    cron.New(),
		allowed: allowed,
		task:    task,
	}
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.tick); err != nil {
		return nil, fmt.Errorf("schedule poll: %w", err)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	if s.allowed != nil && !s.allowed() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("poll task panic: %v", r)
		}
	}()
	s.task()
}

// Start begins ticking in the cron goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running task to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
