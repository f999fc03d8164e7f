package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_Drain(t *testing.T) {
	// Given: a queue with three notifications
	queue := NewQueue()
	assert.Empty(t, queue.Drain())

	queue.Push(Info("a", "first"))
	queue.Push(Error("b", errors.New("second")))
	queue.Push(Info("c", "third"))

	// When: draining it
	drained := queue.Drain()

	// Then: all come out in push order, exactly once
	require.Len(t, drained, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{drained[0].Code, drained[1].Code, drained[2].Code})
	assert.Equal(t, KindError, drained[1].Kind)
	assert.Equal(t, "second", drained[1].Text)
	assert.Empty(t, queue.Drain())
}

func TestQueue_Next(t *testing.T) {
	t.Run("Returns pending notifications in order", func(t *testing.T) {
		queue := NewQueue()
		queue.Push(Info("a", "first"))
		queue.Push(Info("b", "second"))

		first, err := queue.Next(context.Background())
		require.NoError(t, err)
		second, err := queue.Next(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "a", first.Code)
		assert.Equal(t, "b", second.Code)
	})

	t.Run("Waits for a later push", func(t *testing.T) {
		// Given: an empty queue drained once
		queue := NewQueue()
		queue.Drain()

		got := make(chan Notification, 1)
		go func() {
			next, err := queue.Next(context.Background())
			if err == nil {
				got <- next
			}
		}()

		// When: a notification is pushed later
		time.Sleep(10 * time.Millisecond)
		queue.Push(Info("late", "hello"))

		// Then: the waiter receives it
		select {
		case next := <-got:
			assert.Equal(t, "late", next.Code)
		case <-time.After(5 * time.Second):
			t.Fatal("notification was not delivered")
		}
	})

	t.Run("Stops waiting when the context is done", func(t *testing.T) {
		queue := NewQueue()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := queue.Next(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})
}
