// Package noteparse reads chat report notes back from the vault, so
// the index can be rebuilt from the markdown on disk.
package noteparse

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// Note represents a parsed chat report with frontmatter and title.
type Note struct {
	// Frontmatter key-value pairs
	Frontmatter map[string]string

	// Parsed frontmatter fields
	ChatID        string
	Date          string
	Senders       []string // parsed from bracket list
	Messages      int
	Days          int
	LongestStreak int

	// Title from the first # heading in the body
	Title string
}

// ParseFile reads and parses a chat report from disk.
func ParseFile(path string) (*Note, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads and parses a chat report from a reader.
func Parse(r io.Reader) (*Note, error) {
	scanner := bufio.NewScanner(r)
	note := &Note{
		Frontmatter: make(map[string]string),
	}

	// State machine for frontmatter
	inFrontmatter := false
	frontmatterDone := false

	for scanner.Scan() {
		line := scanner.Text()

		if !inFrontmatter && !frontmatterDone {
			if strings.TrimSpace(line) == "---" {
				inFrontmatter = true
				continue
			}
			// No frontmatter delimiter found yet — treat as body
			frontmatterDone = true
		}

		if inFrontmatter {
			if strings.TrimSpace(line) == "---" {
				inFrontmatter = false
				frontmatterDone = true
				continue
			}
			// Parse key: value
			if idx := strings.IndexByte(line, ':'); idx > 0 {
				key := strings.TrimSpace(line[:idx])
				val := strings.TrimSpace(line[idx+1:])
				note.Frontmatter[key] = stripQuotes(val)
			}
			continue
		}

		// First heading in the body is the title
		if note.Title == "" && strings.HasPrefix(line, "# ") {
			note.Title = strings.TrimSpace(line[2:])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Map frontmatter to typed fields
	note.ChatID = note.Frontmatter["chat_id"]
	note.Date = note.Frontmatter["date"]
	note.Messages = atoi(note.Frontmatter["messages"])
	note.Days = atoi(note.Frontmatter["days"])
	note.LongestStreak = atoi(note.Frontmatter["longest_streak"])

	if senders, ok := note.Frontmatter["senders"]; ok {
		note.Senders = parseBracketList(senders)
	}

	return note, nil
}

// parseBracketList parses "[a, b, c]" into []string{"a", "b", "c"}.
func parseBracketList(s string) []string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil
	}
	s = s[1 : len(s)-1]
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
