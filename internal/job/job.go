// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"sync"
	"time"
)

// Job represents a task that runs at a fixed interval and never overlaps with itself.
type Job struct {
	interval time.Duration
	task     func(context.Context)
}

// New creates a new Job with the given interval and task.
func New(interval time.Duration, task func(context.Context)) *Job {
	return &Job{
		interval: interval,
		task:     task,
	}
}

// Start executes the job until the context is cancelled. A tick that fires while the previous
// run is still executing is skipped.
func (j *Job) Start(ctx context.Context) {
	if j.task == nil || j.interval <= 0 {
		return
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	// 1-slot semaphore, held while a run is in progress
	sem := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case sem <- struct{}{}:
				go func() {
					defer func() { <-sem }()
					runCtx, cancel := context.WithCancel(ctx)
					defer cancel()
					j.task(runCtx)
				}()
			default:
			}
		}
	}
}

// Singleton owns at most one running Job. Starting a job stops the one that is running.
type Singleton struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Start stops the running job, if any, and runs job in the background until ctx is cancelled
// or Stop is called.
func (s *Singleton) Start(ctx context.Context, job *Job) {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel, s.done = cancel, done
	go func() {
		defer close(done)
		job.Start(runCtx)
	}()
}

// Stop cancels the running job and waits for its ticker loop to return. Stop is a no-op if no
// job is running.
func (s *Singleton) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether a job is owned by the Singleton.
func (s *Singleton) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}
