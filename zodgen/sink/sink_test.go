package sink

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFilesystem_WriteFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFilesystem(dir)

	if err := s.WriteFile(context.Background(), "a/b/c.ts", []byte("content")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "a", "b", "c.ts"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "content" {
		t.Errorf("got %q", got)
	}
}

func TestFilesystem_Overwrites(t *testing.T) {
	dir := t.TempDir()
	s := NewFilesystem(dir)
	ctx := context.Background()

	if err := s.WriteFile(ctx, "f.ts", []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteFile(ctx, "f.ts", []byte("two")); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(filepath.Join(dir, "f.ts"))
	if string(got) != "two" {
		t.Errorf("got %q", got)
	}
}

func TestFilesystem_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s := NewFilesystem(dir)

	if err := s.WriteFile(context.Background(), "f.ts", []byte("x")); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "f.ts" {
			t.Errorf("unexpected file left behind: %s", e.Name())
		}
	}
}

func TestFilesystem_RejectsEscapingPaths(t *testing.T) {
	s := NewFilesystem(t.TempDir())
	ctx := context.Background()

	for _, path := range []string{"../escape.ts", "/abs.ts", "a/../../b.ts", ""} {
		if err := s.WriteFile(ctx, path, []byte("x")); err == nil {
			t.Errorf("path %q must be rejected", path)
		}
	}
}

func TestFilesystem_CancelledContext(t *testing.T) {
	s := NewFilesystem(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.WriteFile(ctx, "f.ts", []byte("x")); err == nil {
		t.Error("cancelled context must abort the write")
	}
}

func TestMemory_RoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if err := s.WriteFile(ctx, "a.ts", []byte("alpha")); err != nil {
		t.Fatal(err)
	}
	if got := string(s.Get("a.ts")); got != "alpha" {
		t.Errorf("got %q", got)
	}
	if s.Get("missing.ts") != nil {
		t.Error("missing file must return nil")
	}

	files := s.Files()
	if len(files) != 1 {
		t.Errorf("got %d files", len(files))
	}
	// Mutating the returned copy must not affect the stored content.
	files["a.ts"][0] = 'X'
	if got := string(s.Get("a.ts")); got != "alpha" {
		t.Errorf("stored content mutated: %q", got)
	}

	s.Reset()
	if len(s.Files()) != 0 {
		t.Error("Reset must clear all files")
	}
}

func TestValidatePath(t *testing.T) {
	valid := []string{"a.ts", "a/b.ts", "deep/nested/file.json"}
	for _, p := range valid {
		if err := ValidatePath(p); err != nil {
			t.Errorf("ValidatePath(%q) = %v, want nil", p, err)
		}
	}
	invalid := []string{"", "/abs", "../up", "a/../b", "./a.ts", "a//b.ts"}
	for _, p := range invalid {
		if err := ValidatePath(p); err == nil {
			t.Errorf("ValidatePath(%q) must fail", p)
		}
	}
}
