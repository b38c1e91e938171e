// Package index keeps a local sqlite database of analyzed chats so
// repeat runs over the same export are skipped and the stats command
// can roll up across everything processed so far.
package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry represents one analyzed chat in the index.
type Entry struct {
	ChatID        string    // content hash of the raw export
	ReportPath    string    // relative to vault root
	Title         string
	FirstDate     string // YYYY-MM-DD, empty when no message carried a date
	Messages      int
	Days          int
	Senders       int
	LongestStreak int
	CreatedAt     time.Time
}

// Index manages the chatscope.db sqlite database.
type Index struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS chats (
	chat_id        TEXT PRIMARY KEY,
	report_path    TEXT NOT NULL,
	title          TEXT NOT NULL,
	first_date     TEXT NOT NULL DEFAULT '',
	messages       INTEGER NOT NULL DEFAULT 0,
	days           INTEGER NOT NULL DEFAULT 0,
	senders        INTEGER NOT NULL DEFAULT 0,
	longest_streak INTEGER NOT NULL DEFAULT 0,
	created_at     TEXT NOT NULL
);
`

// Open opens (creating if needed) the index database under stateDir.
func Open(stateDir string) (*Index, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(stateDir, "chatscope.db"))
	if err != nil {
		return nil, fmt.Errorf("open index db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close releases the database handle.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Add inserts or updates a chat entry.
func (idx *Index) Add(e Entry) error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO chats
			(chat_id, report_path, title, first_date, messages, days, senders, longest_streak, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ChatID, e.ReportPath, e.Title, e.FirstDate,
		e.Messages, e.Days, e.Senders, e.LongestStreak,
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert chat %s: %w", e.ChatID, err)
	}
	return nil
}

// Has checks whether a chat is already indexed.
func (idx *Index) Has(chatID string) (bool, error) {
	var one int
	err := idx.db.QueryRow(`SELECT 1 FROM chats WHERE chat_id = ?`, chatID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query chat %s: %w", chatID, err)
	}
	return true, nil
}

// List returns all entries, most recently analyzed first.
func (idx *Index) List() ([]Entry, error) {
	rows, err := idx.db.Query(`
		SELECT chat_id, report_path, title, first_date, messages, days, senders, longest_streak, created_at
		FROM chats
		ORDER BY created_at DESC, chat_id`)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ChatID, &e.ReportPath, &e.Title, &e.FirstDate,
			&e.Messages, &e.Days, &e.Senders, &e.LongestStreak, &createdAt); err != nil {
			return nil, fmt.Errorf("scan chat row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chats: %w", err)
	}

	return entries, nil
}
