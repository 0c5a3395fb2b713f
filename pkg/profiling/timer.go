// Package profiling records CPU and heap profiles and per-operation timings
// for a CLI run.
package profiling

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/grovetools/spoolview/tui/components/table"
)

// Stat aggregates the timings of one named operation.
type Stat struct {
	Name  string
	Count int
	Total time.Duration
	Max   time.Duration
}

// Recorder collects timings. The zero value is disabled.
type Recorder struct {
	mu      sync.Mutex
	enabled bool
	stats   map[string]*Stat
}

var std = &Recorder{}

// Enable turns on the global recorder.
func Enable() { std.Enable() }

// Start times an operation on the global recorder. Call the returned func
// when it ends.
func Start(name string) (stop func()) { return std.Start(name) }

// Summarize writes the global recorder's table to w.
func Summarize(w io.Writer) { std.Summarize(w) }

// Enable turns on recording.
func (r *Recorder) Enable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		r.enabled = true
		r.stats = make(map[string]*Stat)
	}
}

// Start begins timing name. It is safe for concurrent use and does nothing
// while the recorder is disabled.
func (r *Recorder) Start(name string) (stop func()) {
	r.mu.Lock()
	enabled := r.enabled
	r.mu.Unlock()
	if !enabled {
		return func() {}
	}

	begin := time.Now()
	return func() { r.observe(name, time.Since(begin)) }
}

func (r *Recorder) observe(name string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stats[name]
	if !ok {
		s = &Stat{Name: name}
		r.stats[name] = s
	}
	s.Count++
	s.Total += d
	s.Max = max(s.Max, d)
}

// Stats returns the recorded operations, slowest total first.
func (r *Recorder) Stats() []Stat {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Stat, 0, len(r.stats))
	for _, s := range r.stats {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b Stat) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Summarize writes a timing table to w. Nothing is written when no
// operation was recorded.
func (r *Recorder) Summarize(w io.Writer) {
	stats := r.Stats()
	if len(stats) == 0 {
		return
	}
	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{
			s.Name,
			fmt.Sprint(s.Count),
			s.Total.Round(time.Microsecond).String(),
			s.Max.Round(time.Microsecond).String(),
		}
	}
	fmt.Fprintln(w, table.SimpleTable([]string{"Operation", "Calls", "Total", "Max"}, rows))
}
