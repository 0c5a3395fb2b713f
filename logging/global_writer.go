package logging

import (
	"io"
	"os"
	"sync"
)

// stderrSink is where every logger's terminal output goes. The TUI swaps it
// out while it owns the screen.
type stderrSink struct {
	mu sync.RWMutex
	w  io.Writer
}

func (s *stderrSink) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w.Write(p)
}

var sink = &stderrSink{w: os.Stderr}

// SetGlobalOutput redirects terminal log output for all loggers and returns
// a function that restores the previous writer.
func SetGlobalOutput(w io.Writer) (restore func()) {
	sink.mu.Lock()
	prev := sink.w
	sink.w = w
	sink.mu.Unlock()
	return func() {
		sink.mu.Lock()
		sink.w = prev
		sink.mu.Unlock()
	}
}

// GetGlobalOutput returns the shared terminal log writer.
func GetGlobalOutput() io.Writer {
	return sink
}
