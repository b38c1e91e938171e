package chat

import "time"

// Kind classifies a message by its content.
type Kind string

const (
	KindText   Kind = "text"
	KindImage  Kind = "image"
	KindVoice  Kind = "voice"
	KindVideo  Kind = "video"
	KindLink   Kind = "link"
	KindSystem Kind = "system"
	KindEmoji  Kind = "emoji"
)

// Message is one parsed utterance from a chat export.
//
// Timestamp keeps the raw text as captured — malformed or partial
// timestamps still participate in the lenient per-metric matching the
// stats engine does. When is the derived instant, zero unless the
// timestamp fully matched the canonical YYYY-[M]M-[D]D HH:MM[:SS] form.
type Message struct {
	Timestamp string    `json:"timestamp"`
	When      time.Time `json:"-"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Kind      Kind      `json:"kind"`
}

// Stats is a single aggregate snapshot over a message sequence.
// Callers index into the serialized form by field name, so the JSON
// names are part of the contract.
type Stats struct {
	TotalMessages        int                       `json:"totalMessages"`
	CountBySender        map[string]int            `json:"countBySender"`
	HourHistogram        [24]int                   `json:"hourHistogram"`
	WeekdayHistogram     [7]int                    `json:"weekdayHistogram"` // 0 = Sunday
	MonthHistogram       map[string]int            `json:"monthHistogram"`   // keyed "YYYY-MM"
	AvgLength            map[string]int            `json:"avgLength"`
	LongestStreak        int                       `json:"longestStreak"`
	ResponseTime         map[string]float64        `json:"responseTime"`         // minutes
	ResponseTimeVariance map[string]float64        `json:"responseTimeVariance"` // minutes^2
	TopWords             map[string]map[string]int `json:"topWords"`
	EmojiCounts          map[string]map[string]int `json:"emojiCounts"`
	LateNightRatio       map[string]float64        `json:"lateNightRatio"`
	InitiatorCount       map[string]int            `json:"initiatorCount"`
	PronounCount         map[string]map[string]int `json:"pronounCount"`
	FirstMessage         *Message                  `json:"firstMessage"`
	LastMessage          *Message                  `json:"lastMessage"`
	TotalDays            int                       `json:"totalDays"`
}

// Senders returns the distinct senders of a message sequence in
// first-appearance order.
func Senders(messages []Message) []string {
	var senders []string
	seen := make(map[string]bool)
	for _, m := range messages {
		if !seen[m.Sender] {
			seen[m.Sender] = true
			senders = append(senders, m.Sender)
		}
	}
	return senders
}
