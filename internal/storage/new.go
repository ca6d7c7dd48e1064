package storage

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/audiobook-forge/internal/logger"
)

type implStorage struct {
	uploadsDir string
	audioDir   string
	watcher    *fsnotify.Watcher
	logger     logger.Logger

	index *uploadIndex
}

// New creates a Storage rooted at the configured directories, creating them
// if needed, and indexes any uploads already present.
func New(uploadsDir, audioDir string, log logger.Logger) (Storage, error) {
	for _, dir := range []string{uploadsDir, audioDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(uploadsDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	s := &implStorage{
		uploadsDir: uploadsDir,
		audioDir:   audioDir,
		watcher:    watcher,
		logger:     log,
		index:      newUploadIndex(),
	}

	if err := s.reindex(); err != nil {
		watcher.Close()
		return nil, err
	}

	return s, nil
}
