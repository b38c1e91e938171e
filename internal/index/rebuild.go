package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/johns/chatscope/internal/noteparse"
)

// Rebuild repopulates the index from the report notes on disk. The
// existing rows are dropped first, so reports deleted from the vault
// also disappear from the index. Returns the number of chats indexed.
func (idx *Index) Rebuild(vaultPath, reportsDir string) (int, error) {
	var notes []Entry

	err := filepath.Walk(reportsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".md") {
			return nil
		}

		note, err := noteparse.ParseFile(path)
		if err != nil || note.ChatID == "" {
			return nil // not a chat report
		}

		rel, err := filepath.Rel(vaultPath, path)
		if err != nil {
			rel = path
		}

		notes = append(notes, Entry{
			ChatID:        note.ChatID,
			ReportPath:    rel,
			Title:         note.Title,
			FirstDate:     note.Date,
			Messages:      note.Messages,
			Days:          note.Days,
			Senders:       len(note.Senders),
			LongestStreak: note.LongestStreak,
			CreatedAt:     info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk reports: %w", err)
	}

	if _, err := idx.db.Exec(`DELETE FROM chats`); err != nil {
		return 0, fmt.Errorf("clear index: %w", err)
	}
	for _, e := range notes {
		if err := idx.Add(e); err != nil {
			return 0, err
		}
	}

	return len(notes), nil
}
