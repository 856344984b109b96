// Package watcher re-runs a bounds computation whenever one of its input
// files changes on disk.
package watcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change event before
// the change handler runs
const DefaultDebounce = 200 * time.Millisecond

// ChangeFunc is invoked with the absolute path of a changed input file
type ChangeFunc func(path string)

// InputWatcher watches a set of input files and reports debounced changes
type InputWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration
	onChange ChangeFunc

	mu      sync.Mutex
	watched map[string]bool
	timer   *time.Timer
	pending string
}

// New creates an InputWatcher. A nil logger discards watcher errors.
func New(debounce time.Duration, logger *slog.Logger, onChange ChangeFunc) (*InputWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &InputWatcher{
		watcher:  w,
		logger:   logger,
		debounce: debounce,
		onChange: onChange,
		watched:  make(map[string]bool),
	}, nil
}

// SetFiles replaces the watched set with files. Files no longer listed are
// removed; new ones are added.
func (iw *InputWatcher) SetFiles(files []string) error {
	iw.mu.Lock()
	defer iw.mu.Unlock()

	next := make(map[string]bool, len(files))
	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		next[absPath] = true
	}

	for path := range iw.watched {
		if next[path] {
			continue
		}
		if err := iw.watcher.Remove(path); err != nil {
			iw.logger.Debug("failed to stop watching", "path", path, "err", err)
		}
		delete(iw.watched, path)
	}

	for path := range next {
		if iw.watched[path] {
			continue
		}
		if err := iw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		iw.watched[path] = true
	}

	return nil
}

// Files returns the watched absolute paths
func (iw *InputWatcher) Files() []string {
	iw.mu.Lock()
	defer iw.mu.Unlock()

	files := make([]string, 0, len(iw.watched))
	for path := range iw.watched {
		files = append(files, path)
	}
	return files
}

// Run dispatches change events until ctx is done or the watcher is closed
func (iw *InputWatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-iw.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				iw.handleChange(event)
			}

		case err, ok := <-iw.watcher.Errors:
			if !ok {
				return nil
			}
			iw.logger.Warn("watcher error", "err", err)
		}
	}
}

// handleChange coalesces bursts of events on any watched file into a single
// onChange call
func (iw *InputWatcher) handleChange(event fsnotify.Event) {
	iw.mu.Lock()
	defer iw.mu.Unlock()

	path := event.Name
	if !iw.watched[path] {
		return
	}
	// a renamed file is no longer watched; the next SetFiles adds it again
	if event.Has(fsnotify.Rename) {
		delete(iw.watched, path)
	}

	if iw.timer != nil {
		iw.timer.Stop()
	}
	iw.pending = path
	iw.timer = time.AfterFunc(iw.debounce, func() {
		iw.mu.Lock()
		changed := iw.pending
		iw.mu.Unlock()

		iw.onChange(changed)
	})
}

// Close stops the watcher
func (iw *InputWatcher) Close() error {
	iw.mu.Lock()
	if iw.timer != nil {
		iw.timer.Stop()
	}
	iw.mu.Unlock()

	return iw.watcher.Close()
}
