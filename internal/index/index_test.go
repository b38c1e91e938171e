package index

import (
	"testing"
	"time"
)

func testEntry(id string) Entry {
	return Entry{
		ChatID:        id,
		ReportPath:    "Reports/2024-01-15-" + id + ".md",
		Title:         "Ann × Bob",
		FirstDate:     "2024-01-15",
		Messages:      42,
		Days:          3,
		Senders:       2,
		LongestStreak: 3,
		CreatedAt:     time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAddHasList(t *testing.T) {
	idx, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer idx.Close()

	ok, err := idx.Has("abc123")
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if ok {
		t.Error("empty index should not have abc123")
	}

	if err := idx.Add(testEntry("abc123")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ok, err = idx.Has("abc123")
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if !ok {
		t.Error("index should have abc123 after Add")
	}

	entries, err := idx.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.ChatID != "abc123" || e.Messages != 42 || e.Days != 3 || e.LongestStreak != 3 {
		t.Errorf("entry = %+v", e)
	}
	if !e.CreatedAt.Equal(time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", e.CreatedAt)
	}
}

func TestAddReplaces(t *testing.T) {
	idx, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer idx.Close()

	e := testEntry("abc123")
	if err := idx.Add(e); err != nil {
		t.Fatalf("Add: %v", err)
	}

	e.Messages = 100
	if err := idx.Add(e); err != nil {
		t.Fatalf("Add (replace): %v", err)
	}

	entries, err := idx.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after replace, got %d", len(entries))
	}
	if entries[0].Messages != 100 {
		t.Errorf("Messages = %d, want 100", entries[0].Messages)
	}
}

func TestListOrder(t *testing.T) {
	idx, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer idx.Close()

	older := testEntry("older1")
	older.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := testEntry("newer1")
	newer.CreatedAt = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	idx.Add(older)
	idx.Add(newer)

	entries, err := idx.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ChatID != "newer1" {
		t.Errorf("entries[0] = %s, want newer1 (most recent first)", entries[0].ChatID)
	}
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()

	idx, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	idx.Add(testEntry("abc123"))
	idx.Close()

	idx2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer idx2.Close()

	ok, err := idx2.Has("abc123")
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if !ok {
		t.Error("entry lost across reopen")
	}
}
