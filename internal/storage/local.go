package storage

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LocalStore persists uploaded binaries to a directory on disk. Stored
// names are server-generated and unique, so concurrent writers never
// collide.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed and returns a store
// rooted at it.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// UniqueName builds a stored filename from the current time plus
// randomness, preserving the original file's extension.
func UniqueName(originalName string) string {
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New(), filepath.Ext(originalName))
}

// Save writes the file contents under the given stored name.
func (s *LocalStore) Save(name string, r io.Reader) error {
	f, err := os.Create(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return err
	}

	return nil
}

// Remove deletes a stored file. Returns os.ErrNotExist (wrapped) when the
// binary is already gone; callers treat that as non-fatal.
func (s *LocalStore) Remove(name string) error {
	return os.Remove(filepath.Join(s.dir, filepath.Base(name)))
}

// Exists reports whether a stored file is present.
func (s *LocalStore) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, filepath.Base(name)))
	return err == nil
}

// ServeFile writes a stored file to the response, or a 404 if it is
// absent. The name is reduced to its base, so path traversal cannot escape
// the upload directory.
func (s *LocalStore) ServeFile(w http.ResponseWriter, r *http.Request, name string) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(s.dir, base)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, path)
}
