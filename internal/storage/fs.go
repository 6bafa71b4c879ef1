package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/maqam/internal/apperr"
)

// FS implements Provider backed by the local file system.
type FS struct {
	root string // absolute path to the media directory
}

// NewFS creates a provider rooted at dir, creating the directory if needed.
func NewFS(dir string) (*FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute media directory.
func (f *FS) Root() string { return f.root }

// safePath resolves name against the root and rejects anything that is not
// a plain file directly under it.
func (f *FS) safePath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("storage: empty name: %w", apperr.ErrValidation)
	}
	cleaned := filepath.Clean(name)
	if filepath.IsAbs(cleaned) || cleaned != filepath.Base(cleaned) || cleaned == ".." || cleaned == "." {
		return "", fmt.Errorf("storage: invalid name %q: %w", name, apperr.ErrValidation)
	}
	abs := filepath.Join(f.root, cleaned)
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: path escapes media root: %s: %w", name, apperr.ErrValidation)
	}
	return abs, nil
}

// Create writes to a temp file, fsyncs it, then links it into place so an
// existing file is never replaced.
func (f *FS) Create(name string, r io.Reader) (int64, error) {
	abs, err := f.safePath(name)
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(f.root, ".maqam-tmp-*")
	if err != nil {
		return 0, fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	n, err := io.Copy(tmp, r)
	if err != nil {
		return 0, fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Link(tmpName, abs); err != nil {
		if errors.Is(err, os.ErrExist) {
			return 0, fmt.Errorf("storage: %s: %w", name, apperr.ErrConflict)
		}
		return 0, fmt.Errorf("storage: link: %w", err)
	}
	return n, nil
}

// Path returns the absolute path of name, or apperr.ErrNotFound.
func (f *FS) Path(name string) (string, error) {
	abs, err := f.safePath(name)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", fmt.Errorf("storage: %s: %w", name, apperr.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("storage: stat %s: %w", name, err)
	}
	return abs, nil
}

// Delete removes name from the media root.
func (f *FS) Delete(name string) error {
	abs, err := f.safePath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("storage: %s: %w", name, apperr.ErrNotFound)
		}
		return fmt.Errorf("storage: delete %s: %w", name, err)
	}
	return nil
}
