// Package storage provides the local-disk media store for recipe images.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage stores uploaded files under a root directory on disk and
// serves them under a URL prefix (the /media/ static route).
type LocalStorage struct {
	root      string
	urlPrefix string
}

// NewLocalStorage creates a LocalStorage rooted at root. Files are
// addressed publicly as urlPrefix + name.
func NewLocalStorage(root, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &LocalStorage{root: root, urlPrefix: urlPrefix}, nil
}

// Root returns the directory files are stored under.
func (s *LocalStorage) Root() string {
	return s.root
}

// Save writes the file under the given name.
// Names are generated server-side (random UUIDs), so path traversal via
// the name is rejected rather than sanitized.
func (s *LocalStorage) Save(name string, r io.Reader) error {
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid file name %q", name)
	}
	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// URL returns the public URL for a stored file name.
func (s *LocalStorage) URL(name string) string {
	return s.urlPrefix + name
}
