package discover

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	os.MkdirAll(filepath.Join(dir, "nested"), 0o755)
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "nested", "b.txt"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "c.txt.zst"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "ignore.md"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, "ignore.jsonl"), []byte("x"), 0o644)

	results, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 exports, got %d", len(results))
	}

	var compressed int
	for _, r := range results {
		if r.Compressed {
			compressed++
		}
	}
	if compressed != 1 {
		t.Errorf("compressed = %d, want 1", compressed)
	}
}

func TestDiscoverSortsByModTime(t *testing.T) {
	dir := t.TempDir()

	older := filepath.Join(dir, "older.txt")
	newer := filepath.Join(dir, "newer.txt")
	os.WriteFile(older, []byte("x"), 0o644)
	os.WriteFile(newer, []byte("x"), 0o644)

	past := time.Now().Add(-time.Hour)
	os.Chtimes(older, past, past)

	results, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 exports, got %d", len(results))
	}
	if filepath.Base(results[0].Path) != "older.txt" {
		t.Errorf("first result = %s, want older.txt", results[0].Path)
	}
}

func TestDiscoverEmptyDir(t *testing.T) {
	results, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no exports, got %d", len(results))
	}
}
