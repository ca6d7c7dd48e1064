package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// maxUploadBytes caps a single uploaded document at 50 MB.
const maxUploadBytes = 50 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".html": true,
	".htm":  true,
}

// ErrUnsupportedType is returned when an upload's extension is not accepted.
var ErrUnsupportedType = fmt.Errorf("only PDF, TXT and HTML files are supported")

// uploadIndex tracks the filenames currently present in the uploads directory.
type uploadIndex struct {
	mu    sync.RWMutex
	files map[string]struct{}
}

func newUploadIndex() *uploadIndex {
	return &uploadIndex{files: make(map[string]struct{})}
}

func (i *uploadIndex) add(name string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.files[name] = struct{}{}
}

func (i *uploadIndex) remove(name string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.files, name)
}

func (i *uploadIndex) has(name string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.files[name]
	return ok
}

func (i *uploadIndex) list() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]string, 0, len(i.files))
	for name := range i.files {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *implStorage) SaveUpload(ctx context.Context, originalName string, r io.Reader) (string, error) {
	// Strip any path components a client may have smuggled in.
	base := filepath.Base(originalName)
	ext := strings.ToLower(filepath.Ext(base))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	stored := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)
	path := filepath.Join(s.uploadsDir, stored)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if n > maxUploadBytes {
		os.Remove(path)
		return "", fmt.Errorf("file exceeds %d byte limit", maxUploadBytes)
	}

	s.index.add(stored)
	s.logger.Info(ctx, "Stored upload: %s (%d bytes)", stored, n)
	return stored, nil
}

func (s *implStorage) Resolve(filename string) string {
	return filepath.Join(s.uploadsDir, filepath.Base(filename))
}

func (s *implStorage) Exists(filename string) bool {
	return s.index.has(filepath.Base(filename))
}

func (s *implStorage) WriteAudio(ctx context.Context, filename string, data []byte) (string, error) {
	path := filepath.Join(s.audioDir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write audio artifact: %w", err)
	}
	s.logger.Info(ctx, "Wrote audio artifact: %s (%d bytes)", filename, len(data))
	return "/audio/" + filepath.Base(filename), nil
}

func (s *implStorage) Uploads() []string {
	return s.index.list()
}

// reindex scans the uploads directory and rebuilds the index from scratch.
func (s *implStorage) reindex() error {
	entries, err := os.ReadDir(s.uploadsDir)
	if err != nil {
		return fmt.Errorf("read uploads directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		s.index.add(entry.Name())
	}
	return nil
}
