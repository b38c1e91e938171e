package chat

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Header forms recognized in WeChat-style exports, in priority order:
//
//	2024-01-15 14:30:25 nickname: message content   (inline)
//	2024-01-15 14:30:25 nickname                    (standalone header)
//	message content                                 (continuation)
//
// The inline form is tried first; a line that looks like both is a
// header with inline content.
var (
	inlinePattern = regexp.MustCompile(`^(\d{4}[-/]\d{1,2}[-/]\d{1,2}\s+\d{1,2}:\d{2}(?::\d{2})?)\s+(.+?)[:：]\s*(.+)$`)
	headerPattern = regexp.MustCompile(`^(\d{4}[-/]\d{1,2}[-/]\d{1,2}\s+\d{1,2}:\d{2}(?::\d{2})?)\s+(.+?)(?:\s*[:：]\s*)?$`)

	instantPattern  = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})\s+(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	emojiTagPattern = regexp.MustCompile(`^\[.+\]$`)
)

// Parse converts raw exported chat text into an ordered message
// sequence. Malformed lines are absorbed as continuations or discarded;
// Parse never fails and always returns a (possibly empty) sequence.
func Parse(text string) []Message {
	var messages []Message

	var (
		curTimestamp string
		curSender    string
		pending      []string
	)

	// A message is only emitted with a non-empty sender and non-empty
	// trimmed content.
	flush := func() {
		if curSender != "" && len(pending) > 0 {
			content := strings.TrimSpace(strings.Join(pending, "\n"))
			if content != "" {
				messages = append(messages, Message{
					Timestamp: curTimestamp,
					When:      parseInstant(curTimestamp),
					Sender:    curSender,
					Content:   content,
					Kind:      Classify(content),
				})
			}
		}
		pending = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := inlinePattern.FindStringSubmatch(trimmed); m != nil {
			flush()
			curTimestamp = m[1]
			curSender = strings.TrimSpace(m[2])
			pending = []string{m[3]}
			continue
		}

		if m := headerPattern.FindStringSubmatch(trimmed); m != nil {
			flush()
			curTimestamp = m[1]
			curSender = strings.TrimSpace(m[2])
			continue
		}

		// Continuation line. Discarded when no message is open yet.
		if curSender != "" {
			pending = append(pending, trimmed)
		}
	}
	flush()

	return messages
}

// Classify derives the message kind from its content. First match wins;
// bracket tags are matched case-insensitively.
func Classify(content string) Kind {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "[图片]") || strings.Contains(lower, "[image]"):
		return KindImage
	case strings.Contains(lower, "[语音]") || strings.Contains(lower, "[voice]"):
		return KindVoice
	case strings.Contains(lower, "[视频]") || strings.Contains(lower, "[video]"):
		return KindVideo
	case strings.Contains(lower, "[链接]") || strings.Contains(lower, "[link]") || strings.HasPrefix(lower, "http"):
		return KindLink
	case strings.Contains(content, "撤回了一条消息") || strings.Contains(content, "加入了群聊") ||
		strings.Contains(lower, "message recalled") || strings.Contains(lower, "joined the group"):
		return KindSystem
	case emojiTagPattern.MatchString(content):
		return KindEmoji
	default:
		return KindText
	}
}

// parseInstant derives an absolute instant from a raw timestamp.
// Returns the zero time unless the whole string matches the canonical
// pattern.
func parseInstant(ts string) time.Time {
	m := instantPattern.FindStringSubmatch(ts)
	if m == nil {
		return time.Time{}
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	sec := 0
	if m[6] != "" {
		sec, _ = strconv.Atoi(m[6])
	}
	return time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.Local)
}
