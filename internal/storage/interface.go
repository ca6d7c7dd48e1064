package storage

import (
	"context"
	"io"
)

// Storage maps uploaded filenames to retrievable files and persists finished
// audio artifacts. It also watches the uploads directory so files dropped in
// out-of-band become visible.
type Storage interface {
	// SaveUpload stores the stream under a collision-free name and returns
	// that name.
	SaveUpload(ctx context.Context, originalName string, r io.Reader) (string, error)
	// Resolve returns the on-disk path for an uploaded filename.
	Resolve(filename string) string
	// Exists reports whether the uploads index currently knows the filename.
	Exists(filename string) bool
	// WriteAudio persists a finished artifact and returns its public URL path.
	WriteAudio(ctx context.Context, filename string, data []byte) (string, error)
	// Uploads lists the filenames currently known to the index.
	Uploads() []string

	Start(ctx context.Context) error
	Stop() error
}
