package chat

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// pronounTokens is the closed set of tracked pronoun substrings.
// Counts are plain non-overlapping substring occurrences, so 我 also
// counts inside 我们.
var pronounTokens = []string{"我", "我们", "你", "你们", "他", "她", "咱们"}

const (
	topWordLimit = 20

	// Reply-latency samples outside this window (minutes) are treated
	// as noise or conversation breaks rather than replies.
	minReplyMinutes = 0.1
	maxReplyMinutes = 720
)

var (
	hourPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	datePattern = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	wordPattern = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{2,4}`)

	// Simple block ranges. Skin-tone modifiers and ZWJ sequences fall
	// outside these and undercount.
	emojiPattern = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{2600}-\x{26FF}]`)
)

// Aggregate computes a statistics snapshot over a message sequence in
// one pass plus bounded post-passes. Every metric degrades to its
// zero/empty default when its preconditions are not met; Aggregate
// never fails.
func Aggregate(messages []Message) Stats {
	a := newAggregator(messages)
	for i := range messages {
		a.observe(&messages[i])
	}
	return a.snapshot(messages)
}

// aggregator carries all per-sender accumulators plus the sequential
// "previous message" state threaded through the scan. A fresh one is
// built per Aggregate call, keeping the engine reentrant.
type aggregator struct {
	senders []string

	counts      map[string]int
	hours       [24]int
	weekdays    [7]int
	months      map[string]int
	totalLength map[string]int
	textCount   map[string]int
	wordFreq    map[string]map[string]int
	wordOrder   map[string]map[string]int // first-seen rank, for tie-breaking
	wordNext    map[string]int
	emoji       map[string]map[string]int
	lateNight   map[string]int
	initiators  map[string]int
	pronouns    map[string]map[string]int
	samples     map[string][]float64
	dates       map[string]struct{}

	lastDate   string
	prevSender string
	prevWhen   time.Time
}

// newAggregator pre-seeds one entry per distinct sender so the main
// pass never special-cases a first appearance.
func newAggregator(messages []Message) *aggregator {
	a := &aggregator{
		senders:     Senders(messages),
		counts:      make(map[string]int),
		months:      make(map[string]int),
		totalLength: make(map[string]int),
		textCount:   make(map[string]int),
		wordFreq:    make(map[string]map[string]int),
		wordOrder:   make(map[string]map[string]int),
		wordNext:    make(map[string]int),
		emoji:       make(map[string]map[string]int),
		lateNight:   make(map[string]int),
		initiators:  make(map[string]int),
		pronouns:    make(map[string]map[string]int),
		samples:     make(map[string][]float64),
		dates:       make(map[string]struct{}),
	}
	for _, s := range a.senders {
		a.counts[s] = 0
		a.totalLength[s] = 0
		a.textCount[s] = 0
		a.wordFreq[s] = make(map[string]int)
		a.wordOrder[s] = make(map[string]int)
		a.emoji[s] = make(map[string]int)
		a.lateNight[s] = 0
		a.initiators[s] = 0
		seeded := make(map[string]int, len(pronounTokens))
		for _, tok := range pronounTokens {
			seeded[tok] = 0
		}
		a.pronouns[s] = seeded
	}
	return a
}

func (a *aggregator) observe(m *Message) {
	a.counts[m.Sender]++

	if tm := hourPattern.FindStringSubmatch(m.Timestamp); tm != nil {
		hour, _ := strconv.Atoi(tm[1])
		if hour >= 0 && hour < 24 {
			a.hours[hour]++
			if hour >= 23 || hour < 5 {
				a.lateNight[m.Sender]++
			}
		}
	}

	if dm := datePattern.FindStringSubmatch(m.Timestamp); dm != nil {
		year, _ := strconv.Atoi(dm[1])
		month, _ := strconv.Atoi(dm[2])
		day, _ := strconv.Atoi(dm[3])
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		a.weekdays[date.Weekday()]++
		a.months[fmt.Sprintf("%s-%02d", dm[1], month)]++
		a.dates[date.Format("2006-01-02")] = struct{}{}

		// First date-bearing message of a new day marks its sender as
		// that day's initiator.
		dateStr := dm[1] + "-" + dm[2] + "-" + dm[3]
		if dateStr != a.lastDate {
			a.initiators[m.Sender]++
			a.lastDate = dateStr
		}
	}

	if m.Kind == KindText {
		a.totalLength[m.Sender] += len([]rune(m.Content))
		a.textCount[m.Sender]++

		for _, tok := range pronounTokens {
			if hits := strings.Count(m.Content, tok); hits > 0 {
				a.pronouns[m.Sender][tok] += hits
			}
		}

		for _, w := range wordPattern.FindAllString(m.Content, -1) {
			if _, seen := a.wordFreq[m.Sender][w]; !seen {
				a.wordOrder[m.Sender][w] = a.wordNext[m.Sender]
				a.wordNext[m.Sender]++
			}
			a.wordFreq[m.Sender][w]++
		}

		for _, g := range emojiPattern.FindAllString(m.Content, -1) {
			a.emoji[m.Sender][g]++
		}
	}

	// Reply-latency attribution: the current message is treated as a
	// response to the previous message from a different sender. The
	// previous instant/sender advance on every fully-parseable
	// timestamp whether or not a sample was recorded.
	if when := instant(m); !when.IsZero() {
		if !a.prevWhen.IsZero() && a.prevSender != "" && m.Sender != a.prevSender {
			delta := when.Sub(a.prevWhen).Minutes()
			if delta >= minReplyMinutes && delta <= maxReplyMinutes {
				a.samples[m.Sender] = append(a.samples[m.Sender], delta)
			}
		}
		a.prevWhen = when
		a.prevSender = m.Sender
	}
}

func (a *aggregator) snapshot(messages []Message) Stats {
	s := Stats{
		TotalMessages:        len(messages),
		CountBySender:        a.counts,
		HourHistogram:        a.hours,
		WeekdayHistogram:     a.weekdays,
		MonthHistogram:       a.months,
		AvgLength:            make(map[string]int, len(a.senders)),
		ResponseTime:         make(map[string]float64, len(a.senders)),
		ResponseTimeVariance: make(map[string]float64, len(a.senders)),
		TopWords:             make(map[string]map[string]int, len(a.senders)),
		EmojiCounts:          a.emoji,
		LateNightRatio:       make(map[string]float64, len(a.senders)),
		InitiatorCount:       a.initiators,
		PronounCount:         a.pronouns,
	}

	for _, sender := range a.senders {
		if n := a.textCount[sender]; n > 0 {
			s.AvgLength[sender] = int(math.Round(float64(a.totalLength[sender]) / float64(n)))
		} else {
			s.AvgLength[sender] = 0
		}

		s.TopWords[sender] = topWords(a.wordFreq[sender], a.wordOrder[sender], topWordLimit)

		ratio := 0.0
		if total := a.counts[sender]; total > 0 {
			ratio = math.Round(float64(a.lateNight[sender])/float64(total)*1000) / 1000
		}
		s.LateNightRatio[sender] = ratio

		mean, variance := meanVariance(a.samples[sender])
		s.ResponseTime[sender] = math.Round(mean*10) / 10
		s.ResponseTimeVariance[sender] = math.Round(variance*10) / 10
	}

	s.LongestStreak, s.TotalDays = streak(a.dates)

	if len(messages) > 0 {
		first := messages[0]
		last := messages[len(messages)-1]
		s.FirstMessage = &first
		s.LastMessage = &last
	}

	return s
}

// DateOf returns the normalized YYYY-MM-DD calendar date of a message's
// timestamp, or "" when no date is recognizable.
func DateOf(m Message) string {
	dm := datePattern.FindStringSubmatch(m.Timestamp)
	if dm == nil {
		return ""
	}
	month, _ := strconv.Atoi(dm[2])
	day, _ := strconv.Atoi(dm[3])
	return fmt.Sprintf("%s-%02d-%02d", dm[1], month, day)
}

// instant returns the absolute instant for a message, deriving it from
// the raw timestamp when the parser didn't.
func instant(m *Message) time.Time {
	if !m.When.IsZero() {
		return m.When
	}
	return parseInstant(m.Timestamp)
}

// topWords keeps the `limit` most frequent words. Ties are broken by
// first-seen order so the selection is deterministic.
func topWords(freq, order map[string]int, limit int) map[string]int {
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return order[words[i]] < order[words[j]]
	})
	if len(words) > limit {
		words = words[:limit]
	}
	top := make(map[string]int, len(words))
	for _, w := range words {
		top[w] = freq[w]
	}
	return top
}

// meanVariance returns the mean and population variance of the samples,
// both 0 for an empty slice.
func meanVariance(samples []float64) (float64, float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean := sum / float64(len(samples))
	var sumSq float64
	for _, v := range samples {
		diff := v - mean
		sumSq += diff * diff
	}
	return mean, sumSq / float64(len(samples))
}

// streak walks the distinct calendar dates ascending, counting maximal
// runs with exactly 1-day gaps. Both results are 0 for an empty set.
func streak(dates map[string]struct{}) (longest, days int) {
	if len(dates) == 0 {
		return 0, 0
	}

	sorted := make([]string, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	longest, current := 1, 1
	prev, _ := time.ParseInLocation("2006-01-02", sorted[0], time.UTC)
	for _, ds := range sorted[1:] {
		cur, _ := time.ParseInLocation("2006-01-02", ds, time.UTC)
		if cur.Sub(prev) == 24*time.Hour {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
		prev = cur
	}

	return longest, len(sorted)
}
