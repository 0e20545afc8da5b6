// Package posts reads, enumerates and rewrites the markdown posts that live in
// a single collection directory.
package posts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrCollectionNotFound indicates the posts directory does not exist.
	ErrCollectionNotFound = errors.New("posts: collection not found")
	// ErrNotFound indicates a single post does not exist.
	ErrNotFound = errors.New("posts: not found")
)

// Store manages post IO rooted at the collection directory.
type Store struct {
	dir       string
	extension string
	index     string
	exclude   []string
}

// StoreOption customizes a Store during construction.
type StoreOption func(*Store)

// WithExtension overrides the file extension that marks a post.
func WithExtension(ext string) StoreOption {
	return func(s *Store) {
		if ext != "" {
			s.extension = ext
		}
	}
}

// WithIndex names the index document that is never listed.
func WithIndex(name string) StoreOption {
	return func(s *Store) {
		s.index = name
	}
}

// WithExclude adds doublestar patterns matched against file names.
func WithExclude(patterns ...string) StoreOption {
	return func(s *Store) {
		s.exclude = append(s.exclude, patterns...)
	}
}

// Open builds a store for dir. It fails with ErrCollectionNotFound when dir
// is missing or is not a directory.
func Open(dir string, opts ...StoreOption) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrCollectionNotFound, err)
		}
		return nil, fmt.Errorf("posts: stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrCollectionNotFound, dir)
	}
	store := &Store{
		dir:       dir,
		extension: ".md",
		index:     "README.md",
	}
	for _, opt := range opts {
		opt(store)
	}
	for _, pattern := range store.exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("posts: invalid exclude pattern %q", pattern)
		}
	}
	return store, nil
}

// Dir returns the collection directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the on-disk location of a post.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// List returns the eligible post names in lexical order. Subdirectories are
// not descended into.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrCollectionNotFound, err)
		}
		return nil, fmt.Errorf("posts: list %s: %w", s.dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !s.regular(entry) {
			continue
		}
		if s.eligible(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// regular reports whether entry is a plain file, following symlinks.
func (s *Store) regular(entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(s.Path(entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

func (s *Store) eligible(name string) bool {
	if !strings.HasSuffix(name, s.extension) {
		return false
	}
	if name == s.index {
		return false
	}
	for _, pattern := range s.exclude {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return false
		}
	}
	return true
}

// Read returns the text of a post.
func (s *Store) Read(name string) (string, error) {
	path := s.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("posts: read %s: %w", path, err)
	}
	return string(data), nil
}

// Write replaces a post atomically: the text goes to a temp file next to the
// post which is then renamed over it. Symlinked posts are written through to
// their target, and the original file mode is kept.
func (s *Store) Write(name, text string) error {
	path, err := resolveTarget(s.Path(name))
	if err != nil {
		return err
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("posts: stat %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("posts: create temp for %s: %w", name, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}
	if _, err := tmp.WriteString(text); err != nil {
		cleanup()
		return fmt.Errorf("posts: write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("posts: sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("posts: close %s: %w", name, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("posts: chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("posts: replace %s: %w", name, err)
	}
	return nil
}

func resolveTarget(path string) (string, error) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		return "", fmt.Errorf("posts: resolve %s: %w", path, err)
	}
	return target, nil
}
