package notify

import (
	"context"
	"fmt"
	"sync"
)

type Kind string

const (
	KindInfo  Kind = "info"
	KindError Kind = "error"
)

// Notification is a user-visible message such as a validation error or a "saved" confirmation.
type Notification struct {
	Kind Kind   `json:"kind"`
	Code string `json:"code"`
	Text string `json:"text"`
}

func Info(code, text string) Notification {
	return Notification{Kind: KindInfo, Code: code, Text: text}
}

func Error(code string, err error) Notification {
	return Notification{Kind: KindError, Code: code, Text: err.Error()}
}

// Queue hands out notifications in the order they were pushed, each one exactly once.
type Queue struct {
	mu      sync.Mutex
	pending []Notification
	ready   chan struct{}
}

func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{})}
}

func (that *Queue) Push(notification Notification) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.pending = append(that.pending, notification)
	if len(that.pending) == 1 {
		close(that.ready)
	}
}

// Next - blocks until a notification is available or ctx is done.
func (that *Queue) Next(ctx context.Context) (Notification, error) {
	for {
		that.mu.Lock()
		if len(that.pending) > 0 {
			next := that.take(1)[0]
			that.mu.Unlock()
			return next, nil
		}
		ready := that.ready
		that.mu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			return Notification{}, fmt.Errorf("wait for notification: %w", ctx.Err())
		}
	}
}

// Drain - takes every pending notification without blocking.
func (that *Queue) Drain() []Notification {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.take(len(that.pending))
}

// take must be called with mu held.
func (that *Queue) take(n int) []Notification {
	if n == 0 {
		return nil
	}

	taken := append([]Notification(nil), that.pending[:n]...)
	that.pending = that.pending[n:]

	if len(that.pending) == 0 {
		that.pending = nil
		that.ready = make(chan struct{})
	}

	return taken
}
