package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/johns/chatscope/internal/chat"
)

// ReportData holds everything needed to render a chat report.
type ReportData struct {
	ChatID   string
	Date     string // YYYY-MM-DD of the first message
	Title    string
	Senders  []string // first-appearance order
	Stats    chat.Stats
	TopWords int // word-frequency rows shown per sender
}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FromStats builds ReportData from a stats snapshot.
func FromStats(chatID string, messages []chat.Message, s chat.Stats, topWords int) ReportData {
	senders := chat.Senders(messages)

	date := ""
	if s.FirstMessage != nil {
		date = chat.DateOf(*s.FirstMessage)
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	title := strings.Join(senders, " × ")
	if title == "" {
		title = "Chat"
	}

	if topWords <= 0 {
		topWords = 10
	}

	return ReportData{
		ChatID:   chatID,
		Date:     date,
		Title:    title,
		Senders:  senders,
		Stats:    s,
		TopWords: topWords,
	}
}

// Render produces a full markdown report from ReportData.
func Render(d ReportData) string {
	s := d.Stats
	var b strings.Builder

	// Frontmatter
	b.WriteString("---\n")
	fmt.Fprintf(&b, "date: %s\n", d.Date)
	b.WriteString("type: chat-report\n")
	fmt.Fprintf(&b, "chat_id: \"%s\"\n", d.ChatID)
	fmt.Fprintf(&b, "senders: [%s]\n", strings.Join(d.Senders, ", "))
	fmt.Fprintf(&b, "messages: %d\n", s.TotalMessages)
	fmt.Fprintf(&b, "days: %d\n", s.TotalDays)
	fmt.Fprintf(&b, "longest_streak: %d\n", s.LongestStreak)
	b.WriteString("tags: [chatscope-report]\n")
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "# %s\n\n", d.Title)

	// Overview
	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "- **Messages:** %d across %d active days\n", s.TotalMessages, s.TotalDays)
	fmt.Fprintf(&b, "- **Longest streak:** %d consecutive days\n", s.LongestStreak)
	if s.FirstMessage != nil {
		fmt.Fprintf(&b, "- **First message:** %s (%s)\n", s.FirstMessage.Timestamp, s.FirstMessage.Sender)
	}
	if s.LastMessage != nil {
		fmt.Fprintf(&b, "- **Last message:** %s (%s)\n", s.LastMessage.Timestamp, s.LastMessage.Sender)
	}
	b.WriteString("\n")

	// Per-sender table
	if len(d.Senders) > 0 {
		b.WriteString("## Senders\n\n")
		b.WriteString("| Sender | Messages | Avg length | Late-night | Days initiated | Avg reply (min) |\n")
		b.WriteString("|--------|----------|------------|------------|----------------|------------------|\n")
		for _, sender := range d.Senders {
			fmt.Fprintf(&b, "| %s | %d | %d | %.1f%% | %d | %s |\n",
				sender,
				s.CountBySender[sender],
				s.AvgLength[sender],
				s.LateNightRatio[sender]*100,
				s.InitiatorCount[sender],
				formatReply(s.ResponseTime[sender], s.ResponseTimeVariance[sender]))
		}
		b.WriteString("\n")
	}

	// Hourly activity
	if sum(s.HourHistogram[:]) > 0 {
		b.WriteString("## Hourly Activity\n\n")
		max := maxOf(s.HourHistogram[:])
		for hour, count := range s.HourHistogram {
			if count == 0 {
				continue
			}
			fmt.Fprintf(&b, "    %02d:00 %-30s %d\n", hour, bar(count, max), count)
		}
		b.WriteString("\n")
	}

	// Weekday activity
	if sum(s.WeekdayHistogram[:]) > 0 {
		b.WriteString("## Weekday Activity\n\n")
		b.WriteString("| Day | Messages |\n")
		b.WriteString("|-----|----------|\n")
		for i, count := range s.WeekdayHistogram {
			fmt.Fprintf(&b, "| %s | %d |\n", weekdayNames[i], count)
		}
		b.WriteString("\n")
	}

	// Monthly breakdown
	if len(s.MonthHistogram) > 0 {
		b.WriteString("## Monthly\n\n")
		b.WriteString("| Month | Messages |\n")
		b.WriteString("|-------|----------|\n")
		for _, month := range sortedKeys(s.MonthHistogram) {
			fmt.Fprintf(&b, "| %s | %d |\n", month, s.MonthHistogram[month])
		}
		b.WriteString("\n")
	}

	// Top words per sender
	for _, sender := range d.Senders {
		words := s.TopWords[sender]
		if len(words) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## Top Words — %s\n\n", sender)
		for _, row := range topN(words, d.TopWords) {
			fmt.Fprintf(&b, "- %s (%d)\n", row.key, row.count)
		}
		b.WriteString("\n")
	}

	// Emoji per sender
	for _, sender := range d.Senders {
		emoji := s.EmojiCounts[sender]
		if len(emoji) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## Emoji — %s\n\n", sender)
		var parts []string
		for _, row := range topN(emoji, 10) {
			parts = append(parts, fmt.Sprintf("%s ×%d", row.key, row.count))
		}
		b.WriteString(strings.Join(parts, "  ") + "\n\n")
	}

	// Footer
	b.WriteString("---\n")
	b.WriteString("*chatscope v0.1.0*\n")

	return b.String()
}

// ReportFilename returns the filename for a chat report: YYYY-MM-DD-{id}.md
func ReportFilename(date, chatID string) string {
	return fmt.Sprintf("%s-%s.md", date, chatID)
}

// ReportRelPath returns the relative path within the vault for a report.
func ReportRelPath(date, chatID string) string {
	return filepath.Join("Reports", ReportFilename(date, chatID))
}

func formatReply(mean, variance float64) string {
	if mean == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f ±%.1f", mean, variance)
}

type countRow struct {
	key   string
	count int
}

// topN sorts a frequency map by count desc (key asc on ties) and keeps
// the first n rows. Display ordering only.
func topN(freq map[string]int, n int) []countRow {
	rows := make([]countRow, 0, len(freq))
	for k, v := range freq {
		rows = append(rows, countRow{k, v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].key < rows[j].key
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sum(counts []int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

func maxOf(counts []int) int {
	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	return max
}

func bar(count, max int) string {
	if max == 0 {
		return ""
	}
	width := count * 30 / max
	if width == 0 {
		width = 1
	}
	return strings.Repeat("█", width)
}
