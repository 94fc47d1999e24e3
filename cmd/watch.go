package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDuration = 500 * time.Millisecond

// watcher calls reload once the watched directories have been quiet for the
// debounce period after a change.
type watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	reload   func() error
	logger   *zap.Logger
}

// newWatcher watches every directory below each of roots. Roots that do not
// exist are skipped.
func newWatcher(roots []string, reload func() error, logger *zap.Logger) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &watcher{fsw: fsw, debounce: debounceDuration, reload: reload, logger: logger}

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			logger.Warn("directory not found, not watching", zap.String("dir", root))
			continue
		}
		logger.Info("watching for changes", zap.String("dir", root))
		if err := w.addTree(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("failed to walk directory", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			if err := w.fsw.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
		}
		return nil
	})
}

// run processes events until ctx is canceled, then closes the watcher.
func (w *watcher) run(ctx context.Context) {
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))

			// New subdirectories are not watched automatically.
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := w.addTree(event.Name); err != nil {
					w.logger.Warn("failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
				}
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.logger.Info("reloading site due to changes")
			if err := w.reload(); err != nil {
				w.logger.Error("reload failed, keeping the previous version", zap.Error(err))
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
