package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Local implements Store on the local file system.
//
// Create writes to a temp file and renames it into place on Close, so a
// reader can never observe a half-written blob.
type Local struct {
	root string
}

// NewLocal creates a new Local store rooted at the given directory.
func NewLocal(root string) *Local {
	return &Local{root: root}
}

func (s *Local) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Open opens a blob for reading.
func (s *Local) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Create creates a new blob. The file is committed by rename on Close.
func (s *Local) Create(_ context.Context, name string) (io.WriteCloser, error) {
	path := s.path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, err
	}

	return &localWriter{f: tmp, path: path}, nil
}

// Delete removes a blob.
func (s *Local) Delete(_ context.Context, name string) error {
	err := os.Remove(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// List returns all blob names with the prefix, sorted, using / as the
// separator regardless of platform.
func (s *Local) List(_ context.Context, prefix string) ([]string, error) {
	var names []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}

		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

type localWriter struct {
	f    *os.File
	path string
}

func (w *localWriter) Write(p []byte) (int, error) {
	return w.f.Write(p)
}

func (w *localWriter) Close() error {
	if err := w.f.Sync(); err != nil {
		_ = w.f.Close()
		_ = os.Remove(w.f.Name())
		return err
	}
	if err := w.f.Close(); err != nil {
		_ = os.Remove(w.f.Name())
		return err
	}
	if err := os.Rename(w.f.Name(), w.path); err != nil {
		_ = os.Remove(w.f.Name())
		return err
	}
	return syncDir(filepath.Dir(w.path))
}

// LocalCatalog implements Catalog with a CURRENT file next to the blobs.
// Updates go through the same temp-and-rename dance as blob writes.
type LocalCatalog struct {
	dir string
}

// CurrentFileName is the name of the catalog pointer file.
const CurrentFileName = "CURRENT"

// NewLocalCatalog creates a catalog storing its pointer in dir.
func NewLocalCatalog(dir string) *LocalCatalog {
	return &LocalCatalog{dir: dir}
}

// Publish atomically points CURRENT at name.
func (c *LocalCatalog) Publish(_ context.Context, name string) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	tmp := filepath.Join(c.dir, CurrentFileName+".tmp")
	if err := os.WriteFile(tmp, []byte(name), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, filepath.Join(c.dir, CurrentFileName)); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return syncDir(c.dir)
}

// Current returns the published name.
func (c *LocalCatalog) Current(_ context.Context) (string, error) {
	data, err := os.ReadFile(filepath.Join(c.dir, CurrentFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}

	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", fmt.Errorf("%w: empty %s file", ErrNotFound, CurrentFileName)
	}
	return name, nil
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
