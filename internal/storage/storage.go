package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store is the backend holding lesson media: videos, thumbnails and textbooks.
type Store interface {
	Save(ctx context.Context, path string, reader io.Reader) (int64, error)
	Open(ctx context.Context, path string) (afero.File, error)
	MkdirAll(ctx context.Context, path string) error
}

// AferoStore implements Store on any afero filesystem.
type AferoStore struct {
	fs afero.Fs
}

// NewAferoStore creates a new AferoStore.
func NewAferoStore(fs afero.Fs) *AferoStore {
	return &AferoStore{fs: fs}
}

// NewDiskStore creates a store rooted at dir on the local disk. Paths
// cannot escape dir.
func NewDiskStore(dir string) *AferoStore {
	return NewAferoStore(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// Save writes the content of the reader to path, creating parent directories.
func (s *AferoStore) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, err
	}
	f, err := s.fs.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(f, reader)
}

// Open opens path for reading. The file supports seeking, so it can be
// served with range requests.
func (s *AferoStore) Open(ctx context.Context, path string) (afero.File, error) {
	return s.fs.OpenFile(path, os.O_RDONLY, 0)
}

// MkdirAll creates a media directory so staff know where to drop files.
func (s *AferoStore) MkdirAll(ctx context.Context, path string) error {
	return s.fs.MkdirAll(path, 0755)
}
