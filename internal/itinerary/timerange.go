package itinerary

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeRange is a parsed (start, end) pair in 24h HH:MM form.
// No start < end ordering is enforced here; that is the caller's call.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// clockToken matches explicit clock times: "9", "9:30", "2pm", "14:00".
var clockToken = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)

// namedPeriod is one entry of the fallback lexicon.
type namedPeriod struct {
	keyword string
	start   string
	end     string
}

// Lexicon order matters: the first substring match wins.
var namedPeriods = []namedPeriod{
	{"morning", "08:00", "12:00"},
	{"afternoon", "12:00", "17:00"},
	{"evening", "17:00", "21:00"},
	{"night", "19:00", "23:00"},
	{"lunch", "11:30", "14:00"},
	{"dinner", "18:00", "21:00"},
}

// ParseTimeRange extracts a time range from natural language.
// It first looks for at least two explicit clock times and pairs the first
// two found as (start, end); otherwise it falls back to a lexicon of named
// periods. Returns nil if neither path yields a result.
func ParseTimeRange(text string) *TimeRange {
	var times []string
	for _, m := range clockToken.FindAllStringSubmatch(text, -1) {
		if t, ok := normalizeClock(m[1], m[2], m[3]); ok {
			times = append(times, t)
			if len(times) == 2 {
				return &TimeRange{Start: times[0], End: times[1]}
			}
		}
	}

	lower := strings.ToLower(text)
	for _, p := range namedPeriods {
		if strings.Contains(lower, p.keyword) {
			return &TimeRange{Start: p.start, End: p.end}
		}
	}
	return nil
}

// ParseFirstTime extracts the first explicit clock time in the text as
// HH:MM. Used when a command names a single target time rather than a
// range ("move breakfast to 2pm").
func ParseFirstTime(text string) (string, bool) {
	for _, m := range clockToken.FindAllStringSubmatch(text, -1) {
		if t, ok := normalizeClock(m[1], m[2], m[3]); ok {
			return t, true
		}
	}
	return "", false
}

// normalizeClock converts a matched token to HH:MM, applying am/pm rules:
// pm adds 12 hours unless the hour is already 12, am zeroes a 12.
func normalizeClock(hourStr, minuteStr, meridiem string) (string, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour > 23 {
		return "", false
	}
	minute := 0
	if minuteStr != "" {
		minute, err = strconv.Atoi(minuteStr)
		if err != nil || minute > 59 {
			return "", false
		}
	}

	switch strings.ToLower(meridiem) {
	case "pm":
		if hour > 12 {
			return "", false
		}
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour > 12 {
			return "", false
		}
		if hour == 12 {
			hour = 0
		}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), true
}
