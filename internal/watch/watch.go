// Package watch re-runs the tour update whenever project sources change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Iron-Ham/tourline/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 250 * time.Millisecond

// RunFunc performs one update. Errors are logged and do not stop the watch.
type RunFunc func(ctx context.Context) error

// Options configures a Watcher.
type Options struct {
	ProjectRoot      string
	ToursDir         string
	SearchStringsDir string
	Debounce         time.Duration
	// RunOnStart performs an update before the first event.
	RunOnStart bool
}

// Watcher watches the project tree and the search-strings directory.
type Watcher struct {
	watcher *fsnotify.Watcher
	opts    Options
	run     RunFunc
	logger  *logging.Logger

	// Directory names skipped anywhere in the tree
	ignorePaths []string
}

// New creates a Watcher and registers every directory under the project
// root, except ignored ones and the tours directory.
func New(opts Options, run RunFunc, logger *logging.Logger) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.NopLogger()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:     fw,
		opts:        opts,
		run:         run,
		logger:      logger,
		ignorePaths: []string{".git", "node_modules", ".DS_Store"},
	}

	if err := w.addRecursive(opts.ProjectRoot); err != nil {
		_ = fw.Close()
		return nil, err
	}
	// The search-strings directory often lives inside the tours directory
	if err := w.addRecursive(opts.SearchStringsDir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// addRecursive adds root and its subdirectories to the watcher.
func (w *Watcher) addRecursive(root string) error {
	if _, err := os.Stat(root); err != nil {
		return err
	}
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && w.ignoredDir(path) {
			return filepath.SkipDir
		}
		_ = w.watcher.Add(path)
		return nil
	})
}

func (w *Watcher) ignoredDir(path string) bool {
	base := filepath.Base(path)
	for _, ignore := range w.ignorePaths {
		if base == ignore {
			return true
		}
	}
	return within(path, w.opts.ToursDir) && !within(path, w.opts.SearchStringsDir)
}

// Relevant reports whether a change to path should trigger an update.
// Changes inside the tours directory are ignored so that the update's own
// writes never retrigger it, unless they fall inside the search-strings
// directory.
func (w *Watcher) Relevant(path string) bool {
	if within(path, w.opts.SearchStringsDir) {
		return !strings.HasPrefix(filepath.Base(path), ".")
	}
	if within(path, w.opts.ToursDir) {
		return false
	}

	for _, ignore := range w.ignorePaths {
		sep := string(filepath.Separator)
		if strings.Contains(path, sep+ignore+sep) ||
			strings.HasSuffix(path, sep+ignore) ||
			filepath.Base(path) == ignore {
			return false
		}
	}
	return true
}

// within reports whether path is dir or inside it.
func within(path, dir string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Run processes events until ctx is done. Updates never overlap: they run
// on the event goroutine, and events arriving meanwhile are coalesced into
// the next update.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	if w.opts.RunOnStart {
		w.update(ctx, "start")
	}

	// Debounce events - editors often emit several events for one save
	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C // drain initial timer

	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			debounceTimer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.ignoredDir(event.Name) {
					_ = w.addRecursive(event.Name)
				}
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.Relevant(event.Name) {
				continue
			}

			pending[event.Name] = struct{}{}
			debounceTimer.Reset(w.opts.Debounce)

		case <-debounceTimer.C:
			if len(pending) == 0 {
				continue
			}
			changed := len(pending)
			pending = make(map[string]struct{})
			w.update(ctx, "change", "files", changed)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err.Error())
		}
	}
}

func (w *Watcher) update(ctx context.Context, reason string, args ...any) {
	w.logger.Debug("running update", append([]any{"reason", reason}, args...)...)
	if err := w.run(ctx); err != nil {
		w.logger.Error("update failed", "error", err.Error())
	}
}
