package assembler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tripwing/tripwing/internal/itinerary"
	"github.com/tripwing/tripwing/internal/logistics"
	"github.com/tripwing/tripwing/internal/memory"
	"github.com/tripwing/tripwing/prompts"
)

// BuildQAPrompt assembles the Q&A system prompt from retrieved chunks,
// the current day's schedule and the spatial relations between its stops.
// It only reformats what it is given.
func BuildQAPrompt(retrieved []memory.ScoredChunk, dayItems []itinerary.TripItem, places map[string]itinerary.Place) string {
	day := SummarizeDay(dayItems)
	if notes := FormatRelations(dayItems, places); notes != "" {
		day += "\n\nLocation notes:\n" + notes
	}
	return fmt.Sprintf(prompts.QASystemPrompt, FormatRetrieved(retrieved), day)
}

// BuildReplanPrompt assembles the replanning system prompt.
func BuildReplanPrompt(tripSummary string, dayItems []itinerary.TripItem, instruction string) string {
	return fmt.Sprintf(prompts.ReplanSystemPrompt, tripSummary, SummarizeDay(dayItems), instruction)
}

// BuildFreeTimePrompt assembles the free-time suggestion prompt from
// retrieved chunks and candidate free blocks.
func BuildFreeTimePrompt(retrieved []memory.ScoredChunk, blocks []logistics.FreeBlock) string {
	return fmt.Sprintf(prompts.FreeTimeSystemPrompt, FormatRetrieved(retrieved), FormatBlocks(blocks))
}

// FormatRetrieved renders retrieved chunks as a context section, one
// chunk per paragraph. Empty input renders an explicit absence marker so
// the model declines instead of guessing.
func FormatRetrieved(retrieved []memory.ScoredChunk) string {
	if len(retrieved) == 0 {
		return "(no itinerary context retrieved)"
	}
	parts := make([]string, 0, len(retrieved))
	for _, sc := range retrieved {
		parts = append(parts, sc.Chunk.Text)
	}
	return strings.Join(parts, "\n---\n")
}

// FormatRelations renders the derived relations between items as one note
// per pair. Temporal order is already visible in the schedule lines, so
// only the spatial relations are spelled out. Returns "" when no item
// pair resolves to related places.
func FormatRelations(items []itinerary.TripItem, places map[string]itinerary.Place) string {
	if len(items) < 2 {
		return ""
	}

	g := logistics.Build(items, places)
	titles := make(map[string]string, len(items))
	for _, it := range items {
		titles[it.ID] = it.Title
	}

	// Edges are stored in both directions; emit each pair once.
	seen := make(map[string]bool)
	var lines []string
	note := func(rel logistics.Relation, id, other, format string) {
		key := pairKey(rel, id, other)
		if seen[key] {
			return
		}
		seen[key] = true
		lines = append(lines, fmt.Sprintf(format, titles[id], titles[other]))
	}

	for _, id := range g.Nodes {
		for _, other := range g.Related(id, logistics.RelationNear) {
			note(logistics.RelationNear, id, other, "%q is near %q.")
		}
		for _, other := range g.Related(id, logistics.RelationSameArea) {
			note(logistics.RelationSameArea, id, other, "%q is in the same area as %q.")
		}
	}
	return strings.Join(lines, "\n")
}

func pairKey(rel logistics.Relation, a, b string) string {
	if b < a {
		a, b = b, a
	}
	return string(rel) + "|" + a + "|" + b
}

// FormatBlocks renders free blocks as "HH:MM-HH:MM" lines.
func FormatBlocks(blocks []logistics.FreeBlock) string {
	if len(blocks) == 0 {
		return "(no open time)"
	}
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		lines = append(lines, fmt.Sprintf("%s-%s", b.Start.Format("15:04"), b.End.Format("15:04")))
	}
	return strings.Join(lines, "\n")
}

// SummarizeDay renders a day's items as "{start}-{end}: {title}" lines in
// start order, or a fixed sentinel when the day is empty.
func SummarizeDay(items []itinerary.TripItem) string {
	if len(items) == 0 {
		return prompts.NoActivitiesSentinel
	}

	sorted := make([]itinerary.TripItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	lines := make([]string, 0, len(sorted))
	for _, it := range sorted {
		lines = append(lines, fmt.Sprintf("%s-%s: %s",
			it.Start.Format("15:04"), it.End.Format("15:04"), it.Title))
	}
	return strings.Join(lines, "\n")
}
