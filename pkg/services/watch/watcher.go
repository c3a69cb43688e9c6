// Package watch reports changes to a single file.
package watch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

type Operation int

const (
	FileCreated Operation = iota
	FileModified
	FileRemoved
)

func (o Operation) String() string {
	switch o {
	case FileCreated:
		return "created"
	case FileModified:
		return "modified"
	case FileRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

type Event struct {
	Path      string
	Operation Operation
}

// FileWatcher watches the directory containing a file so that editors
// replacing the file (remove + create) keep being followed.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
}

func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{watcher: w, path: abs}, nil
}

// Watch emits events for the watched file until ctx is done or Stop is called.
// The returned channel is closed when watching ends.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan Event, error) {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	events := make(chan Event, 16)

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}

				var op Operation
				switch {
				case event.Has(fsnotify.Create):
					op = FileCreated
				case event.Has(fsnotify.Write):
					op = FileModified
				case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
					op = FileRemoved
				default:
					continue
				}

				select {
				case events <- Event{Path: w.path, Operation: op}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Warn().Err(err).Str("path", w.path).Msg("file watcher error")
			}
		}
	}()

	return events, nil
}

func (w *FileWatcher) Stop() error {
	return w.watcher.Close()
}
