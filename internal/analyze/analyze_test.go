package analyze

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/johns/chatscope/internal/archive"
	"github.com/johns/chatscope/internal/config"
)

const testExport = `2024-01-15 08:30:15 Ann
hello
2024-01-15 08:31:00 Bob: hi there
2024-01-16 09:00:00 Ann: good morning
`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		VaultPath: t.TempDir(),
		InboxPath: t.TempDir(),
		Archive:   config.ArchiveConfig{Compress: true},
		Report:    config.ReportConfig{TopWords: 10},
	}
}

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	path := writeExport(t, testExport)

	result, err := Run(path, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Skipped {
		t.Fatalf("skipped: %s", result.Reason)
	}
	if result.Messages != 3 {
		t.Errorf("Messages = %d, want 3", result.Messages)
	}
	if result.Title != "Ann × Bob" {
		t.Errorf("Title = %q", result.Title)
	}

	// Report written into the vault
	reportPath := filepath.Join(cfg.VaultPath, result.ReportPath)
	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "# Ann × Bob") {
		t.Error("report missing title")
	}

	// Source archived under the state dir
	if !archive.IsArchived(result.ChatID, cfg.ArchiveDir()) {
		t.Error("export was not archived")
	}
}

func TestRunSkipsAlreadyProcessed(t *testing.T) {
	cfg := testConfig(t)
	path := writeExport(t, testExport)

	if _, err := Run(path, cfg); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	result, err := Run(path, cfg)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if !result.Skipped || result.Reason != "already processed" {
		t.Errorf("second run = %+v, want already-processed skip", result)
	}
}

func TestRunSkipsTrivial(t *testing.T) {
	cfg := testConfig(t)
	path := writeExport(t, "2024-01-15 08:30 Ann: hi\n")

	result, err := Run(path, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Skipped {
		t.Error("single-message chat should be skipped as trivial")
	}
}

func TestRunCompressedInput(t *testing.T) {
	cfg := testConfig(t)
	path := writeExport(t, testExport)

	// Pre-compress the export, then run against the archive
	archDir := t.TempDir()
	archPath, err := archive.Archive(path, archDir, "precompressed")
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}

	result, err := Run(archPath, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Skipped {
		t.Fatalf("skipped: %s", result.Reason)
	}
	if result.Messages != 3 {
		t.Errorf("Messages = %d, want 3", result.Messages)
	}
}

func TestChatIDStable(t *testing.T) {
	a := ChatID([]byte("same content"))
	b := ChatID([]byte("same content"))
	c := ChatID([]byte("different content"))

	if a != b {
		t.Error("same content should produce the same chat ID")
	}
	if a == c {
		t.Error("different content should produce different chat IDs")
	}
	if len(a) != 12 {
		t.Errorf("len(ChatID) = %d, want 12", len(a))
	}
}
