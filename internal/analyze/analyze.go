// Package analyze orchestrates the parse → aggregate → report pipeline
// for a single chat export.
package analyze

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/johns/chatscope/internal/archive"
	"github.com/johns/chatscope/internal/chat"
	"github.com/johns/chatscope/internal/config"
	"github.com/johns/chatscope/internal/index"
	"github.com/johns/chatscope/internal/report"
)

// Result holds the output of a pipeline run.
type Result struct {
	ChatID     string
	ReportPath string
	Title      string
	Messages   int
	Skipped    bool
	Reason     string
}

// Run processes one chat export end to end: parse, aggregate, render a
// report into the vault, record the chat in the index, and archive the
// source. Already-indexed chats are skipped.
func Run(path string, cfg config.Config) (*Result, error) {
	srcPath := path
	if strings.HasSuffix(path, ".zst") {
		tmpPath, cleanup, err := archive.Decompress(path)
		if err != nil {
			return nil, fmt.Errorf("decompress export: %w", err)
		}
		defer cleanup()
		srcPath = tmpPath
	}

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	messages := chat.Parse(string(data))

	// Skip trivial exports (< 2 messages)
	if len(messages) < 2 {
		return &Result{Skipped: true, Reason: "trivial chat (< 2 messages)"}, nil
	}

	chatID := ChatID(data)

	idx, err := index.Open(cfg.StateDir())
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer idx.Close()

	if has, err := idx.Has(chatID); err != nil {
		return nil, fmt.Errorf("check index: %w", err)
	} else if has {
		return &Result{ChatID: chatID, Skipped: true, Reason: "already processed"}, nil
	}

	stats := chat.Aggregate(messages)

	d := report.FromStats(chatID, messages, stats, cfg.Report.TopWords)
	markdown := report.Render(d)

	relPath := report.ReportRelPath(d.Date, chatID)
	absPath := filepath.Join(cfg.VaultPath, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("create reports dir: %w", err)
	}
	if err := os.WriteFile(absPath, []byte(markdown), 0o644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	firstDate := ""
	if stats.FirstMessage != nil {
		firstDate = chat.DateOf(*stats.FirstMessage)
	}

	if err := idx.Add(index.Entry{
		ChatID:        chatID,
		ReportPath:    relPath,
		Title:         d.Title,
		FirstDate:     firstDate,
		Messages:      stats.TotalMessages,
		Days:          stats.TotalDays,
		Senders:       len(d.Senders),
		LongestStreak: stats.LongestStreak,
		CreatedAt:     time.Now(),
	}); err != nil {
		log.Printf("warning: could not update index: %v", err)
	}

	// Archive the raw export next to the index. Failures here don't
	// fail the run; the report is already written.
	if cfg.Archive.Compress && !strings.HasSuffix(path, ".zst") {
		if _, err := archive.Archive(path, cfg.ArchiveDir(), chatID); err != nil {
			log.Printf("warning: could not archive %s: %v", path, err)
		}
	}

	return &Result{
		ChatID:     chatID,
		ReportPath: relPath,
		Title:      d.Title,
		Messages:   stats.TotalMessages,
	}, nil
}

// ChatID derives a stable identifier from the raw export bytes, so the
// same transcript is never analyzed twice regardless of filename.
func ChatID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:12]
}
