package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var ErrStopped = errors.New("scheduler is stopped")

// Task is a unit of background work. It must return promptly once ctx is done.
type Task func(ctx context.Context) error

type job struct {
	name string
	task Task
}

// Scheduler runs tasks one at a time, in submission order, until it is shut down.
// Shutdown cancels the running task and drops pending ones without waiting for them.
type Scheduler struct {
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	queue   []job
	stopped bool

	wake chan struct{}
	done chan struct{}
}

// New - starts a scheduler bound to ctx: cancelling ctx has the same effect as Shutdown.
func New(ctx context.Context, logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)

	that := &Scheduler{
		logger: logger.With("component", "scheduler"),
		ctx:    ctx,
		cancel: cancel,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	go that.run()

	return that
}

// Go - queues a task. It never blocks and fails only when the scheduler is stopped.
func (that *Scheduler) Go(name string, task Task) error {
	that.mu.Lock()
	if that.stopped || that.ctx.Err() != nil {
		that.mu.Unlock()
		return fmt.Errorf("%w: task %s", ErrStopped, name)
	}
	that.queue = append(that.queue, job{name: name, task: task})
	that.mu.Unlock()

	select {
	case that.wake <- struct{}{}:
	default:
	}

	return nil
}

// Idle - waits until every task queued before the call has run.
func (that *Scheduler) Idle(ctx context.Context) error {
	reached := make(chan struct{})

	err := that.Go("idle", func(context.Context) error {
		close(reached)
		return nil
	})
	if err != nil {
		return err
	}

	select {
	case <-reached:
		return nil
	case <-that.done:
		return ErrStopped
	case <-ctx.Done():
		return fmt.Errorf("wait for idle scheduler: %w", ctx.Err())
	}
}

// Shutdown - cancels the running task and discards pending ones. Safe to call more than once.
func (that *Scheduler) Shutdown() {
	that.mu.Lock()
	dropped := len(that.queue)
	that.stopped = true
	that.queue = nil
	that.mu.Unlock()

	that.cancel()

	if dropped > 0 {
		that.logger.Debug("scheduler shut down with pending tasks", "dropped", dropped)
	}
}

// Done is closed once the worker goroutine has exited.
func (that *Scheduler) Done() <-chan struct{} {
	return that.done
}

func (that *Scheduler) run() {
	defer close(that.done)

	for {
		select {
		case <-that.ctx.Done():
			return
		case <-that.wake:
		}

		for {
			next, ok := that.pop()
			if !ok {
				break
			}

			if that.ctx.Err() != nil {
				return
			}

			if err := next.task(that.ctx); err != nil {
				that.logger.Error("task failed", "task", next.name, "error", err)
			}
		}
	}
}

func (that *Scheduler) pop() (job, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.queue) == 0 {
		return job{}, false
	}

	next := that.queue[0]
	that.queue[0] = job{}
	that.queue = that.queue[1:]

	return next, true
}
