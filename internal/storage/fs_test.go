package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/maqam/internal/apperr"
)

func tempMedia(t *testing.T) *FS {
	t.Helper()
	fs, err := NewFS(filepath.Join(t.TempDir(), "photos"))
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestCreateAndPath(t *testing.T) {
	s := tempMedia(t)
	n, err := s.Create("kempten.jpg", strings.NewReader("jpeg bytes"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if n != 10 {
		t.Errorf("size = %d", n)
	}
	p, err := s.Path("kempten.jpg")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	got, _ := os.ReadFile(p)
	if string(got) != "jpeg bytes" {
		t.Errorf("content = %q", got)
	}
}

func TestCreateNeverOverwrites(t *testing.T) {
	s := tempMedia(t)
	if _, err := s.Create("a.png", strings.NewReader("first")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create("a.png", strings.NewReader("second")); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("second create = %v, want conflict", err)
	}
	p, _ := s.Path("a.png")
	if got, _ := os.ReadFile(p); string(got) != "first" {
		t.Errorf("content = %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.Root(), ".maqam-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestDelete(t *testing.T) {
	s := tempMedia(t)
	_, _ = s.Create("del.webp", strings.NewReader("bye"))
	if err := s.Delete("del.webp"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Path("del.webp"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Path after delete = %v", err)
	}
	if err := s.Delete("del.webp"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete = %v", err)
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempMedia(t)
	for _, p := range []string{"", "..", "../outside.jpg", "/etc/shadow", "sub/a.jpg"} {
		if _, err := s.Path(p); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Path(%q) = %v", p, err)
		}
		if _, err := s.Create(p, strings.NewReader("x")); err == nil {
			t.Errorf("expected error for create %q", p)
		}
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp(t.TempDir(), "maqam-test-*")
	_ = f.Close()
	if _, err := NewFS(f.Name()); err == nil {
		t.Error("expected error when root is a file")
	}
}
