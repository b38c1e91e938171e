// Package vault rolls up index entries into aggregate metrics across
// every analyzed chat, for the `stats` command.
package vault

import (
	"sort"

	"github.com/johns/chatscope/internal/index"
)

// Summary holds aggregate metrics computed from the chat index.
type Summary struct {
	TotalChats    int
	TotalMessages int
	TotalDays     int
	LongestStreak int // best single-chat streak

	AvgMessagesPerChat float64
	AvgDaysPerChat     float64

	Chats   []ChatRow
	Monthly []MonthStats
}

// ChatRow holds per-chat display metrics.
type ChatRow struct {
	ChatID        string
	Title         string
	FirstDate     string
	Messages      int
	Days          int
	LongestStreak int
}

// MonthStats holds per-month chat counts keyed by first-message month.
type MonthStats struct {
	Month    string // YYYY-MM
	Chats    int
	Messages int
}

// Compute builds a Summary from index entries.
func Compute(entries []index.Entry) Summary {
	var s Summary

	monthMap := make(map[string]*MonthStats)

	for _, e := range entries {
		s.TotalChats++
		s.TotalMessages += e.Messages
		s.TotalDays += e.Days
		if e.LongestStreak > s.LongestStreak {
			s.LongestStreak = e.LongestStreak
		}

		s.Chats = append(s.Chats, ChatRow{
			ChatID:        e.ChatID,
			Title:         e.Title,
			FirstDate:     e.FirstDate,
			Messages:      e.Messages,
			Days:          e.Days,
			LongestStreak: e.LongestStreak,
		})

		// Monthly breakdown
		if len(e.FirstDate) >= 7 {
			month := e.FirstDate[:7]
			mm, ok := monthMap[month]
			if !ok {
				mm = &MonthStats{Month: month}
				monthMap[month] = mm
			}
			mm.Chats++
			mm.Messages += e.Messages
		}
	}

	// Averages (guard division by zero)
	if s.TotalChats > 0 {
		s.AvgMessagesPerChat = float64(s.TotalMessages) / float64(s.TotalChats)
		s.AvgDaysPerChat = float64(s.TotalDays) / float64(s.TotalChats)
	}

	// Sort chats by messages desc
	sort.Slice(s.Chats, func(i, j int) bool {
		if s.Chats[i].Messages != s.Chats[j].Messages {
			return s.Chats[i].Messages > s.Chats[j].Messages
		}
		return s.Chats[i].ChatID < s.Chats[j].ChatID
	})

	// Sort months recent-first, cap at 6
	for _, mm := range monthMap {
		s.Monthly = append(s.Monthly, *mm)
	}
	sort.Slice(s.Monthly, func(i, j int) bool {
		return s.Monthly[i].Month > s.Monthly[j].Month
	})
	if len(s.Monthly) > 6 {
		s.Monthly = s.Monthly[:6]
	}

	return s
}
