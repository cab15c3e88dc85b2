// Package testsupport provides fixtures shared by the package tests: an
// in-memory artifact store, PNG builders and golden file helpers.
package testsupport

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-packgallery/pkg/artifact"
)

// MemStore is an in-memory artifact.Store. It is safe for concurrent use.
type MemStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	dirs    map[string]struct{}
	removed []string
}

var _ artifact.Store = (*MemStore)(nil)

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
	}
}

// Put stores data under name, creating implied directories.
func (s *MemStore) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), data...)
	s.addParents(name)
}

// Get returns a copy of name's contents.
func (s *MemStore) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	return append([]byte(nil), data...), ok
}

// Names lists stored files in lexical order.
func (s *MemStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.files))
	for name := range s.files {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Removed lists successfully removed files in removal order.
func (s *MemStore) Removed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.removed...)
}

func (s *MemStore) Exists(name string) (bool, error) {
	if err := artifact.CheckName(name); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[name]
	return ok, nil
}

func (s *MemStore) IsDir(name string) (bool, error) {
	if err := artifact.CheckName(name); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.dirs[path.Clean(name)]
	return ok, nil
}

func (s *MemStore) Open(name string) (io.ReadCloser, error) {
	data, ok := s.Get(name)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *MemStore) Create(name string) (io.WriteCloser, error) {
	if err := artifact.CheckName(name); err != nil {
		return nil, err
	}
	return &memFile{store: s, name: name}, nil
}

func (s *MemStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[name]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(s.files, name)
	s.removed = append(s.removed, name)
	return nil
}

func (s *MemStore) MkdirAll(name string) error {
	if err := artifact.CheckName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirs[path.Clean(name)] = struct{}{}
	s.addParents(name)
	return nil
}

// Path returns a pseudo path under "mem:".
func (s *MemStore) Path(name string) string {
	return fmt.Sprintf("mem:/%s", strings.TrimPrefix(name, "/"))
}

func (s *MemStore) addParents(name string) {
	for dir := path.Dir(name); dir != "." && dir != "/"; dir = path.Dir(dir) {
		s.dirs[dir] = struct{}{}
	}
}

type memFile struct {
	store *MemStore
	name  string
	buf   bytes.Buffer
}

func (f *memFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *memFile) Close() error {
	f.store.Put(f.name, f.buf.Bytes())
	return nil
}
