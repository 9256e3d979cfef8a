// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/jeranaias/textdiff/internal/diff"
)

// DefaultDebounce is the quiet period after the last event before the files
// are re-read.
const DefaultDebounce = 150 * time.Millisecond

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a Watcher.
type Options struct {
	// Diff controls how the files are compared.
	Diff diff.Options

	// Limits bounds the re-read files. Oversized inputs are reported through
	// OnError.
	Limits diff.Limits

	// Debounce is the quiet period before a reload. Zero uses DefaultDebounce.
	Debounce time.Duration

	// OnReload receives the texts of both files after every successful read.
	OnReload func(left, right string)

	// OnChange receives the result of every successful reload.
	OnChange func(diff.Result)

	// OnError receives read and limit errors. They do not stop the watcher.
	OnError func(error)

	// Logger receives debug output. Nil discards it.
	Logger *zap.Logger
}

// =============================================================================
// WATCHER
// =============================================================================

// Watcher re-compares two files whenever either changes on disk.
//
// The parent directories are watched rather than the files, so editors that
// save by writing a temporary file and renaming it over the original keep
// being seen.
type Watcher struct {
	left  string
	right string
	opts  Options

	fsw       *fsnotify.Watcher
	closeOnce sync.Once
	closeErr  error
}

// New creates a watcher for the left and right files. Both must exist.
func New(left, right string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	w := &Watcher{opts: opts}
	var err error
	if w.left, err = absFile(left); err != nil {
		return nil, err
	}
	if w.right, err = absFile(right); err != nil {
		return nil, err
	}

	w.fsw, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	dirs := []string{filepath.Dir(w.left)}
	if d := filepath.Dir(w.right); d != dirs[0] {
		dirs = append(dirs, d)
	}
	for _, dir := range dirs {
		if err := w.fsw.Add(dir); err != nil {
			w.fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return w, nil
}

// absFile returns the cleaned absolute path of an existing regular file.
func absFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}
	return abs, nil
}

// Paths returns the absolute paths being compared.
func (w *Watcher) Paths() (string, string) {
	return w.left, w.right
}

// Read reads both files and checks them against the limits.
func (w *Watcher) Read() (string, string, error) {
	left, err := os.ReadFile(w.left)
	if err != nil {
		return "", "", err
	}
	right, err := os.ReadFile(w.right)
	if err != nil {
		return "", "", err
	}
	if err := w.opts.Limits.Check(string(left), string(right), w.opts.Diff); err != nil {
		return "", "", err
	}
	return string(left), string(right), nil
}

// Compare reads both files and compares them.
func (w *Watcher) Compare() (diff.Result, error) {
	left, right, err := w.Read()
	if err != nil {
		return diff.Result{}, err
	}
	return diff.Compute(left, right, w.opts.Diff), nil
}

// Run processes file events until ctx is done or the watcher is closed.
// Cancellation is not an error.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.opts.Logger.Debug("file event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
				fire = timer.C
			} else {
				timer.Reset(w.opts.Debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.reportError(fmt.Errorf("file watcher: %w", err))

		case <-fire:
			w.reload()
		}
	}
}

// relevant reports whether event touches one of the compared files in a way
// that may change its content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Clean(event.Name)
	if name != w.left && name != w.right {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

func (w *Watcher) reload() {
	left, right, err := w.Read()
	if err != nil {
		w.reportError(err)
		return
	}
	if w.opts.OnReload != nil {
		w.opts.OnReload(left, right)
	}
	if w.opts.OnChange != nil {
		w.opts.OnChange(diff.Compute(left, right, w.opts.Diff))
	}
}

func (w *Watcher) reportError(err error) {
	w.opts.Logger.Debug("watch error", zap.Error(err))
	if w.opts.OnError != nil {
		w.opts.OnError(err)
	}
}

// Close stops watching. Run returns once the event channels close. Close is
// safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.fsw.Close()
		if errors.Is(w.closeErr, os.ErrClosed) {
			w.closeErr = nil
		}
	})
	return w.closeErr
}
