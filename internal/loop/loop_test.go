package loop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func start(t *testing.T, l *Loop) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = l.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestPostRunsInOrder(t *testing.T) {
	l := New(nil)
	var got []int
	finished := make(chan struct{})
	for i := 0; i < 5; i++ {
		l.Post(func() { got = append(got, i) })
	}
	l.Post(func() { close(finished) })

	start(t, l)
	<-finished
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestWhenIdleRunsAfterQueuedTasks(t *testing.T) {
	l := New(nil)
	var got []string
	finished := make(chan struct{})

	l.Post(func() {
		got = append(got, "a")
		l.Post(func() { got = append(got, "nested") })
	})
	l.WhenIdle(func() {
		got = append(got, "idle")
		close(finished)
	})
	l.Post(func() { got = append(got, "b") })
	require.Equal(t, 3, l.Pending())

	start(t, l)
	<-finished
	assert.Equal(t, []string{"a", "b", "nested", "idle"}, got)
}

func TestPostFromOtherGoroutines(t *testing.T) {
	l := New(nil)
	start(t, l)

	var wg sync.WaitGroup
	var mu sync.Mutex
	count := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			l.Post(func() {
				mu.Lock()
				count++
				mu.Unlock()
				wg.Done()
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, count)
}

func TestPanicDoesNotStopLoop(t *testing.T) {
	l := New(nil)
	finished := make(chan struct{})
	l.Post(func() { panic("boom") })
	l.Post(func() { close(finished) })

	start(t, l)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("loop stopped after panic")
	}
}

func TestRunReturnsOnCancel(t *testing.T) {
	l := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
}
