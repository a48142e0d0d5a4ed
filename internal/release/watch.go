package release

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for ref updates to settle.
const DefaultDebounce = 300 * time.Millisecond

// Watcher calls a handler whenever the repository's refs change: a new
// commit on a branch, a created or deleted tag, a checkout.
type Watcher struct {
	gitDir   string
	debounce time.Duration
	onChange func(ctx context.Context) error
	onError  func(error)
}

// NewWatcher creates a watcher over gitDir (the .git directory).
// onChange runs once at start and after every settled burst of ref changes.
func NewWatcher(gitDir string, onChange func(ctx context.Context) error) *Watcher {
	return &Watcher{
		gitDir:   gitDir,
		debounce: DefaultDebounce,
		onChange: onChange,
		onError:  func(error) {},
	}
}

// WithDebounce sets the settle delay.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// OnError sets the handler for errors returned by onChange and for
// watcher errors. Such errors never stop the loop.
func (w *Watcher) OnError(fn func(error)) *Watcher {
	w.onError = fn
	return w
}

// Run watches until ctx is cancelled. Handler calls never overlap: they run
// on the event loop itself.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addDirs(fsw); err != nil {
		return err
	}

	w.fire(ctx)

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				w.watchNewDir(fsw, event.Name)
			}
			if !w.isRefChange(event.Name) {
				continue
			}
			logDebug("[watch] %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.fire(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.onError(fmt.Errorf("watching %s: %w", w.gitDir, err))
		}
	}
}

func (w *Watcher) fire(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.onChange(ctx); err != nil {
		w.onError(err)
	}
}

// addDirs watches the git directory and every directory below refs/.
// fsnotify is not recursive.
func (w *Watcher) addDirs(fsw *fsnotify.Watcher) error {
	if err := fsw.Add(w.gitDir); err != nil {
		return fmt.Errorf("watching %s: %w", w.gitDir, err)
	}

	refs := filepath.Join(w.gitDir, "refs")
	err := filepath.WalkDir(refs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logDebug("[watch] watching %d directories under %s", len(fsw.WatchList()), w.gitDir)
	return nil
}

// watchNewDir starts watching a directory created under refs/ (for example
// refs/heads/feature/ for a "feature/x" branch).
func (w *Watcher) watchNewDir(fsw *fsnotify.Watcher, path string) {
	if !w.underRefs(path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := fsw.Add(path); err != nil {
		w.onError(fmt.Errorf("watching %s: %w", path, err))
	}
}

// isRefChange reports whether path is HEAD, packed-refs or a ref file.
// Lock files are ignored; git renames them into place when done.
func (w *Watcher) isRefChange(path string) bool {
	if strings.HasSuffix(path, ".lock") {
		return false
	}
	rel, err := filepath.Rel(w.gitDir, path)
	if err != nil {
		return false
	}
	switch rel {
	case "HEAD", "packed-refs":
		return true
	}
	return w.underRefs(path)
}

func (w *Watcher) underRefs(path string) bool {
	rel, err := filepath.Rel(w.gitDir, path)
	if err != nil {
		return false
	}
	return rel == "refs" || strings.HasPrefix(rel, "refs"+string(filepath.Separator))
}
