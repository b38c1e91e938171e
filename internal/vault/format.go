package vault

import (
	"fmt"
	"strings"
)

// Format renders a Summary as aligned terminal output.
func Format(s Summary) string {
	if s.TotalChats == 0 {
		return "chatscope stats\n\n  No chats analyzed yet. Run `chatscope process <file>` or `chatscope scan` first.\n"
	}

	var b strings.Builder

	b.WriteString("chatscope stats\n")

	// Overview
	b.WriteString("\nOverview\n")
	fmt.Fprintf(&b, "  %-20s %d\n", "chats", s.TotalChats)
	fmt.Fprintf(&b, "  %-20s %s\n", "messages", formatInt(s.TotalMessages))
	fmt.Fprintf(&b, "  %-20s %s\n", "active days", formatInt(s.TotalDays))
	fmt.Fprintf(&b, "  %-20s %d days\n", "best streak", s.LongestStreak)

	// Averages
	b.WriteString("\nAverages\n")
	fmt.Fprintf(&b, "  %-20s %.1f\n", "messages/chat", s.AvgMessagesPerChat)
	fmt.Fprintf(&b, "  %-20s %.1f\n", "days/chat", s.AvgDaysPerChat)

	// Chats
	if len(s.Chats) > 0 {
		b.WriteString("\nChats\n")
		limit := 10
		if len(s.Chats) < limit {
			limit = len(s.Chats)
		}
		for _, c := range s.Chats[:limit] {
			date := c.FirstDate
			if date == "" {
				date = "-"
			}
			fmt.Fprintf(&b, "  %-32s %6s messages   %4d days   since %s\n",
				truncate(c.Title, 32), formatInt(c.Messages), c.Days, date)
		}
		if len(s.Chats) > limit {
			fmt.Fprintf(&b, "  ... and %d more\n", len(s.Chats)-limit)
		}
	}

	// Monthly Trend
	if len(s.Monthly) > 0 {
		b.WriteString("\nMonthly Trend\n")
		for _, m := range s.Monthly {
			fmt.Fprintf(&b, "  %-12s %3d chats   %6s messages\n",
				m.Month, m.Chats, formatInt(m.Messages))
		}
	}

	return b.String()
}

// formatInt formats an integer with comma separators.
func formatInt(n int) string {
	if n < 0 {
		return "0"
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
