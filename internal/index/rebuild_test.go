package index

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const rebuildNote = `---
date: 2024-01-15
type: chat-report
chat_id: "abc123def456"
senders: [Ann, Bob]
messages: 42
days: 7
longest_streak: 3
---

# Ann × Bob
`

func TestRebuild(t *testing.T) {
	vaultPath := t.TempDir()
	reportsDir := filepath.Join(vaultPath, "Reports")
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(reportsDir, "2024-01-15-abc123def456.md"), []byte(rebuildNote), 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-report markdown is ignored
	if err := os.WriteFile(filepath.Join(reportsDir, "notes.md"), []byte("# Random note\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	idx, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	// Pre-seed a stale entry that should be dropped by the rebuild
	if err := idx.Add(Entry{ChatID: "stale0000000", ReportPath: "gone.md", Title: "Gone", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	n, err := idx.Rebuild(vaultPath, reportsDir)
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if n != 1 {
		t.Errorf("Rebuild = %d, want 1", n)
	}

	entries, err := idx.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}

	e := entries[0]
	if e.ChatID != "abc123def456" {
		t.Errorf("ChatID = %q", e.ChatID)
	}
	if e.Title != "Ann × Bob" {
		t.Errorf("Title = %q", e.Title)
	}
	if e.Messages != 42 || e.Days != 7 || e.LongestStreak != 3 || e.Senders != 2 {
		t.Errorf("entry = %+v", e)
	}
	if e.ReportPath != filepath.Join("Reports", "2024-01-15-abc123def456.md") {
		t.Errorf("ReportPath = %q", e.ReportPath)
	}
}

func TestRebuildEmptyVault(t *testing.T) {
	vaultPath := t.TempDir()

	idx, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	n, err := idx.Rebuild(vaultPath, filepath.Join(vaultPath, "Reports"))
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if n != 0 {
		t.Errorf("Rebuild = %d, want 0", n)
	}
}
