// Package loop provides the single cooperative event loop the engine runs on.
//
// Tasks posted with Post run one at a time in FIFO order. Tasks registered
// with WhenIdle run only once the task queue has drained, which lets callers
// coalesce every mutation queued in one burst into a single follow-up pass.
package loop

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Loop is a single-goroutine task scheduler.
type Loop struct {
	mu     sync.Mutex
	tasks  []func()
	idle   []func()
	wake   chan struct{}
	logger *logrus.Entry
}

// New creates a loop. Tasks are accepted immediately but only run once Run is called.
func New(logger *logrus.Entry) *Loop {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Loop{
		wake:   make(chan struct{}, 1),
		logger: logger,
	}
}

// Post queues fn to run on the loop. Safe to call from any goroutine.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	l.signal()
}

// WhenIdle queues fn to run after every currently queued task, and any task
// those tasks post, has run.
func (l *Loop) WhenIdle(fn func()) {
	l.mu.Lock()
	l.idle = append(l.idle, fn)
	l.mu.Unlock()
	l.signal()
}

// Pending reports the number of queued tasks, idle tasks included.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks) + len(l.idle)
}

// Run drives the loop until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if fn := l.next(); fn != nil {
			l.run(fn)
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.tasks) > 0 {
		fn := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		return fn
	}
	if len(l.idle) > 0 {
		fn := l.idle[0]
		l.idle[0] = nil
		l.idle = l.idle[1:]
		return fn
	}
	return nil
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.WithField("panic", fmt.Sprint(r)).Error("Loop task panicked")
		}
	}()
	fn()
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
