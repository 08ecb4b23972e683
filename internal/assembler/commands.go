// Package assembler turns retrieved itinerary context into model prompts
// and natural-language requests into structured schedule operations.
package assembler

import (
	"regexp"
	"strings"

	"github.com/tripwing/tripwing/internal/itinerary"
)

// modificationKeywords trigger the schedule-modification flow. Matching is
// a case-insensitive substring check, deliberately loose: it is a router,
// not a grammar.
var modificationKeywords = []string{
	"move", "change", "reschedule", "shift", "swap",
	"cancel", "remove", "delete", "add", "update", "modify",
}

// IsModificationCommand reports whether the text looks like a schedule
// modification request.
func IsModificationCommand(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range modificationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// targetPatterns capture the target phrase of a modification command.
// Tried in order; the first capture that matches an item title wins.
var targetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:move|change|reschedule)\s+(?:the\s+|my\s+)?(.+?)\s+to\b`),
	regexp.MustCompile(`(?i)reschedule\s+(?:the\s+|my\s+)?(.+)$`),
	regexp.MustCompile(`(?i)(?:cancel|remove|delete|shift|update|modify)\s+(?:the\s+|my\s+)?(.+)$`),
}

// ExtractTarget resolves the item a modification command refers to.
// It first tries an exact case-insensitive title-in-command match, then
// falls back to regex target-phrase extraction matched against titles.
// Best-effort heuristics: the first matching item wins, no scoring.
func ExtractTarget(command string, items []itinerary.TripItem) *itinerary.TripItem {
	lower := strings.ToLower(command)

	for i := range items {
		if title := strings.ToLower(items[i].Title); title != "" && strings.Contains(lower, title) {
			return &items[i]
		}
	}

	for _, pattern := range targetPatterns {
		m := pattern.FindStringSubmatch(command)
		if m == nil {
			continue
		}
		phrase := strings.ToLower(strings.TrimSpace(m[1]))
		if phrase == "" {
			continue
		}
		for i := range items {
			title := strings.ToLower(items[i].Title)
			if title == "" {
				continue
			}
			if strings.Contains(title, phrase) || strings.Contains(phrase, title) {
				return &items[i]
			}
		}
	}
	return nil
}
