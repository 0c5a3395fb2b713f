// Package watch keeps the checked spools in step with a spool list file.
package watch

import (
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/spoolview/errors"
	"github.com/grovetools/spoolview/logging"
	"github.com/grovetools/spoolview/pkg/models"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce coalesces the burst of events a single save produces.
const DefaultDebounce = 100 * time.Millisecond

// Target receives the row changes derived from the file.
type Target interface {
	Selection() []models.GroupID
	SelectRows(groups ...models.GroupID) <-chan error
	DeselectRows(groups ...models.GroupID) <-chan error
}

// Watcher watches one spool list file.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	target   Target
	debounce time.Duration
	logger   *logrus.Entry

	mu    sync.Mutex
	timer *time.Timer
}

// New watches path's directory so that editors which replace the file on
// save are still seen.
func New(path string, target Target, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid spools file path")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "cannot watch spools file directory").
			WithDetail("path", abs)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:  watcher,
		path:     abs,
		target:   target,
		debounce: debounce,
		logger:   logging.NewLogger("spool-watcher").WithField("file", filepath.Base(abs)),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start processes file events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			w.logger.Debugf("fsnotify event: op=%v", event.Op)
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.schedule(ctx)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.stopTimer()
			w.watcher.Close()
			return
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if err := w.Sync(ctx); err != nil {
			w.logger.WithError(err).Warn("Failed to apply spools file")
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Sync reads the file and checks or unchecks rows until the selection
// matches it. A missing file is left alone.
func (w *Watcher) Sync(ctx context.Context) error {
	want, err := ReadSpools(w.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			w.logger.Debug("Spools file removed, keeping selection")
			return nil
		}
		return err
	}

	have := w.target.Selection()
	var add, remove []models.GroupID
	for _, g := range want {
		if !slices.Contains(have, g) {
			add = append(add, g)
		}
	}
	for _, g := range have {
		if !slices.Contains(want, g) {
			remove = append(remove, g)
		}
	}
	if len(add) == 0 && len(remove) == 0 {
		return nil
	}

	w.logger.WithFields(logrus.Fields{
		"checked":   add,
		"unchecked": remove,
	}).Info("Spools file changed")

	var pending []<-chan error
	if len(remove) > 0 {
		pending = append(pending, w.target.DeselectRows(remove...))
	}
	if len(add) > 0 {
		pending = append(pending, w.target.SelectRows(add...))
	}

	var firstErr error
	for _, ch := range pending {
		select {
		case err := <-ch:
			if err != nil && firstErr == nil {
				firstErr = err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return firstErr
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	w.stopTimer()
	return w.watcher.Close()
}

// ReadSpools reads a spool list file.
func ReadSpools(path string) ([]models.GroupID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "cannot read spools file").
			WithDetail("path", path)
	}
	defer f.Close()
	return ParseSpools(f)
}

// ParseSpools reads spool ids separated by whitespace or newlines. Text after
// '#' on a line is ignored and duplicates are dropped.
func ParseSpools(r io.Reader) ([]models.GroupID, error) {
	var out []models.GroupID
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, field := range strings.Fields(line) {
			g := models.GroupID(field)
			if !slices.Contains(out, g) {
				out = append(out, g)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "cannot parse spools file")
	}
	return out, nil
}
