// Package fsnotify watches a documentation directory for regenerated pages.
package fsnotify

import (
	"context"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/fwojciec/doxfix"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Ensure Watcher implements doxfix.Watcher at compile time.
var _ doxfix.Watcher = (*Watcher)(nil)

// Watcher reports pages created or written under a root directory.
// Subdirectories are watched too, including ones created after Watch starts.
// Events are debounced so that a Doxygen run yields few, large batches.
type Watcher struct {
	root     string
	isPage   func(path string) bool
	skipDirs map[string]bool
	debounce time.Duration
	logger   *slog.Logger

	ready     chan struct{}
	readyOnce sync.Once
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a batch is delivered.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithFilter sets the predicate deciding which files are pages.
func WithFilter(isPage func(path string) bool) Option {
	return func(w *Watcher) {
		w.isPage = isPage
	}
}

// WithSkipDirs sets directory names that are not watched.
func WithSkipDirs(dirs ...string) Option {
	return func(w *Watcher) {
		w.skipDirs = make(map[string]bool, len(dirs))
		for _, dir := range dirs {
			w.skipDirs[dir] = true
		}
	}
}

// WithLogger sets the logger for watch errors.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// NewWatcher creates a Watcher for root. By default every file with the
// .html extension is a page.
func NewWatcher(root string, opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		isPage:   func(path string) bool { return filepath.Ext(path) == ".html" },
		skipDirs: map[string]bool{},
		debounce: DefaultDebounce,
		logger:   slog.New(slog.DiscardHandler),
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Ready is closed once the initial directory tree is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Watch blocks until ctx is done, calling fn with sorted batches of changed
// page paths relative to the root. fn is never called concurrently.
func (w *Watcher) Watch(ctx context.Context, fn func(paths []string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := w.addTree(fw, w.root, nil); err != nil {
		return err
	}
	w.readyOnce.Do(func() { close(w.ready) })

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(fw, event, pending) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch", "root", w.root, "err", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for path := range pending {
				batch = append(batch, path)
			}
			clear(pending)
			slices.Sort(batch)
			fn(batch)
		}
	}
}

// handleEvent adds the page touched by a create or write event to pending.
// New directories are added to the watch list and pages already inside them
// are queued, since they may have been written before the watch began.
func (w *Watcher) handleEvent(fw *fsnotify.Watcher, event fsnotify.Event, pending map[string]struct{}) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}

	if event.Has(fsnotify.Create) && isDir(event.Name) {
		before := len(pending)
		if err := w.addTree(fw, event.Name, pending); err != nil {
			w.logger.Warn("watch", "dir", event.Name, "err", err)
		}
		return len(pending) > before
	}

	if !w.isPage(event.Name) {
		return false
	}
	rel, ok := w.relPath(event.Name)
	if !ok {
		return false
	}
	pending[rel] = struct{}{}
	return true
}

// addTree watches dir and all its subdirectories except skipped ones.
// Pages found along the way are added to pending when it is non-nil.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string, pending map[string]struct{}) error {
	return filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if pending != nil && d.Type().IsRegular() && w.isPage(path) {
				if rel, ok := w.relPath(path); ok {
					pending[rel] = struct{}{}
				}
			}
			return nil
		}
		if path != w.root && w.skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

func (w *Watcher) relPath(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
