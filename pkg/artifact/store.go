// Package artifact models the files a gallery run reads and writes: the
// storage they live in and the explicit inventory of discovered pages.
package artifact

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Store is the storage abstraction every stage writes through. Names are
// slash-separated and relative to the store root.
type Store interface {
	// Exists reports whether a regular file called name exists. Directories
	// and other non-regular entries report false.
	Exists(name string) (bool, error)
	// IsDir reports whether a directory called name exists.
	IsDir(name string) (bool, error)
	// Open opens name for reading.
	Open(name string) (io.ReadCloser, error)
	// Create truncates or creates name, creating parent directories.
	Create(name string) (io.WriteCloser, error)
	// Remove deletes name. A missing file returns an error wrapping
	// fs.ErrNotExist.
	Remove(name string) error
	// MkdirAll creates the directory name and any parents.
	MkdirAll(name string) error
	// Path maps name to the path handed to external processes.
	Path(name string) string
}

// DirStore is a Store rooted at a directory on disk.
type DirStore struct {
	root string
}

var _ Store = (*DirStore)(nil)

// NewDirStore returns a store rooted at root. The directory does not need to
// exist yet.
func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

// Root returns the store's root directory.
func (s *DirStore) Root() string {
	return s.root
}

// Path joins name onto the root using the platform separator.
func (s *DirStore) Path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

func (s *DirStore) Exists(name string) (bool, error) {
	info, err := s.stat(name)
	if err != nil || info == nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (s *DirStore) IsDir(name string) (bool, error) {
	info, err := s.stat(name)
	if err != nil || info == nil {
		return false, err
	}
	return info.IsDir(), nil
}

// stat returns a nil FileInfo and no error when name is missing.
func (s *DirStore) stat(name string) (fs.FileInfo, error) {
	p, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("artifact: stat %s: %w", name, err)
	}
	return info, nil
}

func (s *DirStore) Open(name string) (io.ReadCloser, error) {
	p, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

func (s *DirStore) Create(name string) (io.WriteCloser, error) {
	p, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, fmt.Errorf("artifact: create parent of %s: %w", name, err)
	}
	return os.Create(p)
}

func (s *DirStore) Remove(name string) error {
	p, err := s.resolve(name)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

func (s *DirStore) MkdirAll(name string) error {
	p, err := s.resolve(name)
	if err != nil {
		return err
	}
	return os.MkdirAll(p, 0o755)
}

func (s *DirStore) resolve(name string) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}
	return s.Path(name), nil
}

// CheckName rejects names that are absolute or escape the store root.
func CheckName(name string) error {
	if name == "" || path.IsAbs(name) || strings.Contains(name, "\\") {
		return fmt.Errorf("artifact: invalid name %q", name)
	}
	clean := path.Clean(name)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("artifact: name %q escapes the store root", name)
	}
	return nil
}

// WriteFile writes data to name through the store.
func WriteFile(s Store, name string, data []byte) error {
	w, err := s.Create(name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// ReadFile reads the whole of name from the store.
func ReadFile(s Store, name string) ([]byte, error) {
	r, err := s.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
