package site

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch rebuilds on source changes until ctx is cancelled. Events are
// debounced so editor save bursts trigger a single rebuild. The rebuild
// callback receives the build error, if any; returning from Watch only
// happens on ctx cancellation or watcher failure.
func Watch(ctx context.Context, root string, exclude []string, rebuild func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	excluded := func(name string) bool {
		for _, pattern := range exclude {
			if ok, err := filepath.Match(pattern, name); err == nil && ok {
				return true
			}
		}
		return false
	}

	addDir := func(dir string) error {
		return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			name := d.Name()
			if path != dir && (excluded(name) || name == ".git") {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		})
	}
	if err := addDir(root); err != nil {
		return err
	}

	const debounce = 300 * time.Millisecond
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if excluded(filepath.Base(event.Name)) {
				continue
			}
			// New directories need watches of their own.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addDir(event.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			rebuild(nil)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			rebuild(err)
		}
	}
}
