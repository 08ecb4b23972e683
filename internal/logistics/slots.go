package logistics

import (
	"sort"
	"time"

	"github.com/tripwing/tripwing/internal/itinerary"
)

// Day boundaries assumed when finding a slot within a day.
const (
	dayStartHour = 8
	dayEndHour   = 22
)

// FreeBlock is a computed gap with no scheduled items. Always derived,
// never stored.
type FreeBlock struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DurationMinutes returns the block length in minutes.
func (b FreeBlock) DurationMinutes() int {
	return int(b.End.Sub(b.Start).Minutes())
}

// ComputeFreeBlocks returns the gaps between items in chronological order.
// Zero-valued bounds are treated as absent: with no items and both bounds
// set, the whole bound is one free block; with no items and a missing
// bound there is no day boundary to infer, so the result is empty.
// Overlapping or nested items are tolerated: the cursor never regresses.
func ComputeFreeBlocks(items []itinerary.TripItem, dayStart, dayEnd time.Time) []FreeBlock {
	if len(items) == 0 {
		if !dayStart.IsZero() && !dayEnd.IsZero() && dayEnd.After(dayStart) {
			return []FreeBlock{{Start: dayStart, End: dayEnd}}
		}
		return nil
	}

	sorted := make([]itinerary.TripItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	cursor := dayStart
	if cursor.IsZero() {
		cursor = sorted[0].Start
	}

	var blocks []FreeBlock
	for _, it := range sorted {
		if it.Start.After(cursor) {
			blocks = append(blocks, FreeBlock{Start: cursor, End: it.Start})
		}
		if it.End.After(cursor) {
			cursor = it.End
		}
	}

	if !dayEnd.IsZero() && dayEnd.After(cursor) {
		blocks = append(blocks, FreeBlock{Start: cursor, End: dayEnd})
	}
	return blocks
}

// FindEarliestAvailableSlot restricts to one day's items, assumes the day
// runs 08:00-22:00 on the inferred calendar date, and returns the first
// free block that fits the requested duration, truncated to exactly that
// duration from the block's start. Returns nil when the day has no items
// (no date to infer from) or nothing fits.
func FindEarliestAvailableSlot(items []itinerary.TripItem, dayID string, durationMinutes int) *FreeBlock {
	if durationMinutes <= 0 {
		return nil
	}

	dayItems := filterDay(items, dayID)
	if len(dayItems) == 0 {
		return nil
	}

	y, m, d := dayItems[0].Start.Date()
	loc := dayItems[0].Start.Location()
	dayStart := time.Date(y, m, d, dayStartHour, 0, 0, 0, loc)
	dayEnd := time.Date(y, m, d, dayEndHour, 0, 0, 0, loc)

	for _, block := range ComputeFreeBlocks(dayItems, dayStart, dayEnd) {
		if block.DurationMinutes() >= durationMinutes {
			return &FreeBlock{
				Start: block.Start,
				End:   block.Start.Add(time.Duration(durationMinutes) * time.Minute),
			}
		}
	}
	return nil
}

// ItemsAfter returns the day's items starting strictly after the boundary,
// ascending by start time.
func ItemsAfter(items []itinerary.TripItem, dayID string, boundary time.Time) []itinerary.TripItem {
	var out []itinerary.TripItem
	for _, it := range filterDay(items, dayID) {
		if it.Start.After(boundary) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// ItemsBefore returns the day's items ending strictly before the boundary,
// descending by start time.
func ItemsBefore(items []itinerary.TripItem, dayID string, boundary time.Time) []itinerary.TripItem {
	var out []itinerary.TripItem
	for _, it := range filterDay(items, dayID) {
		if it.End.Before(boundary) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.After(out[j].Start)
	})
	return out
}

// filterDay keeps items belonging to the given day, sorted by start time.
func filterDay(items []itinerary.TripItem, dayID string) []itinerary.TripItem {
	var out []itinerary.TripItem
	for _, it := range items {
		if it.DayID == dayID {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
