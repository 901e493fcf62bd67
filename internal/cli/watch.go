package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// schemaWatcher reports changes of one file. The parent directory is
// watched so that editors replacing the file on save are seen.
type schemaWatcher struct {
	w    *fsnotify.Watcher
	path string
}

func newSchemaWatcher(path string) (*schemaWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &schemaWatcher{w: w, path: abs}, nil
}

// Run calls fn once per burst of changes to the file, after debounce of
// quiet. It returns when ctx is done.
func (s *schemaWatcher) Run(ctx context.Context, debounce time.Duration, fn func()) error {
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-s.w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			fire = time.After(debounce)
		case <-fire:
			fire = nil
			fn()
		case err, ok := <-s.w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", s.path, err)
		}
	}
}

func (s *schemaWatcher) Close() error {
	return s.w.Close()
}
