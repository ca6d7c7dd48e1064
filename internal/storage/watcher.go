package storage

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

func baseName(path string) string {
	return filepath.Base(path)
}

// Start consumes watcher events until the context is cancelled, keeping the
// upload index in sync with files added or removed out-of-band.
func (s *implStorage) Start(ctx context.Context) error {
	s.logger.Info(ctx, "Watching uploads directory: %s", s.uploadsDir)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Uploads watcher stopping")
			return ctx.Err()

		case event, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}
			s.handleEvent(ctx, event)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (s *implStorage) handleEvent(ctx context.Context, event fsnotify.Event) {
	name := event.Name

	switch {
	case event.Op.Has(fsnotify.Create):
		s.index.add(baseName(name))
		s.logger.Debug(ctx, "Upload appeared: %s", baseName(name))
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		s.index.remove(baseName(name))
		s.logger.Debug(ctx, "Upload removed: %s", baseName(name))
	}
}

func (s *implStorage) Stop() error {
	return s.watcher.Close()
}
