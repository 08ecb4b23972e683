package assembler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tripwing/tripwing/internal/itinerary"
	"github.com/tripwing/tripwing/internal/llm"
	"github.com/tripwing/tripwing/internal/logistics"
	"github.com/tripwing/tripwing/types"
)

// PendingAction is a proposed, not-yet-committed schedule mutation
// awaiting user confirmation. It is terminal after Apply or Dismiss.
type PendingAction struct {
	Item        itinerary.TripItem
	NewStart    time.Time
	NewEnd      time.Time
	Description string
}

// ItemMutator persists a rescheduled item. Satisfied by the trip store.
type ItemMutator interface {
	UpdateItem(ctx context.Context, item itinerary.TripItem) error
}

// Reindexer refreshes an item's memory chunk after a mutation.
// Satisfied by the memory service.
type Reindexer interface {
	ReindexItem(ctx context.Context, item itinerary.TripItem, place *itinerary.Place) error
}

// Session carries the conversational state for one trip: the message
// history and the single pending-action slot. Callers must serialize
// dispatch into a session; it is not safe for concurrent use.
type Session struct {
	TripID   string
	Messages []llm.Message

	pending *PendingAction
}

// NewSession creates an empty session for a trip.
func NewSession(tripID string) *Session {
	return &Session{TripID: tripID}
}

// Pending returns the live pending action, or nil.
func (s *Session) Pending() *PendingAction {
	return s.pending
}

// Append adds a message to the session history.
func (s *Session) Append(role, content string) {
	s.Messages = append(s.Messages, llm.Message{Role: role, Content: content})
}

// HandleModification drives a modification command through target
// resolution and slot finding, drafting a pending action on success.
// At most one pending action is live per session; a new request while one
// is pending fails with ErrPendingAction.
func (s *Session) HandleModification(command string, items []itinerary.TripItem) (*PendingAction, error) {
	if s.pending != nil {
		return nil, types.ErrPendingAction
	}

	target := ExtractTarget(command, items)
	if target == nil {
		return nil, fmt.Errorf("resolve target of %q: %w", command, types.ErrNoTarget)
	}

	others := make([]itinerary.TripItem, 0, len(items))
	for _, it := range items {
		if it.ID != target.ID {
			others = append(others, it)
		}
	}

	duration := target.DurationMinutes()
	newStart, newEnd, ok := s.proposeTimes(command, *target, others, duration)
	if !ok {
		return nil, fmt.Errorf("fit %q (%d min): %w", target.Title, duration, types.ErrNoSlot)
	}

	desc := fmt.Sprintf("Move %q to %s-%s on %s?",
		target.Title, newStart.Format("15:04"), newEnd.Format("15:04"),
		newStart.Format("2006-01-02"))
	if prev := logistics.ItemsBefore(others, target.DayID, newStart); len(prev) > 0 {
		desc += fmt.Sprintf(" It would follow %q.", prev[0].Title)
	}
	if next := logistics.ItemsAfter(others, target.DayID, newEnd); len(next) > 0 {
		desc += fmt.Sprintf(" %q comes next.", next[0].Title)
	}

	action := &PendingAction{
		Item:        *target,
		NewStart:    newStart,
		NewEnd:      newEnd,
		Description: desc,
	}
	s.pending = action
	s.Append(llm.RoleAssistant, action.Description)
	return action, nil
}

// proposeTimes picks the new start and end: an explicit time range or
// single clock time in the command wins; otherwise the earliest slot
// among the day's other items. others must exclude the target itself.
func (s *Session) proposeTimes(command string, target itinerary.TripItem, others []itinerary.TripItem, durationMinutes int) (time.Time, time.Time, bool) {
	clock := ""
	if tr := itinerary.ParseTimeRange(command); tr != nil {
		clock = tr.Start
	} else if first, ok := itinerary.ParseFirstTime(command); ok {
		clock = first
	}
	if clock != "" {
		start, err := atClock(target.Start, clock)
		if err == nil {
			return start, start.Add(time.Duration(durationMinutes) * time.Minute), true
		}
	}

	slot := logistics.FindEarliestAvailableSlot(others, target.DayID, durationMinutes)
	if slot == nil {
		return time.Time{}, time.Time{}, false
	}
	return slot.Start, slot.End, true
}

// Apply commits the pending action: persist the new times, refresh the
// memory index best-effort, and append a confirmation message. The
// pending slot is cleared either way once the mutation is persisted.
func (s *Session) Apply(ctx context.Context, mutator ItemMutator, reindexer Reindexer, place *itinerary.Place) (itinerary.TripItem, error) {
	if s.pending == nil {
		return itinerary.TripItem{}, fmt.Errorf("apply: %w", types.ErrNotFound)
	}

	updated := s.pending.Item
	updated.Start = s.pending.NewStart
	updated.End = s.pending.NewEnd

	if err := mutator.UpdateItem(ctx, updated); err != nil {
		return itinerary.TripItem{}, fmt.Errorf("update item %s: %w", updated.ID, err)
	}

	if err := reindexer.ReindexItem(ctx, updated, place); err != nil {
		slog.Warn("reindex after reschedule failed", "item_id", updated.ID, "error", err)
	}

	s.Append(llm.RoleAssistant, fmt.Sprintf("Done. %q now runs %s-%s.",
		updated.Title, updated.Start.Format("15:04"), updated.End.Format("15:04")))
	s.pending = nil
	return updated, nil
}

// Dismiss discards the pending action and appends a decline message.
func (s *Session) Dismiss() {
	if s.pending == nil {
		return
	}
	s.Append(llm.RoleAssistant, fmt.Sprintf("Okay, leaving %q unchanged.", s.pending.Item.Title))
	s.pending = nil
}

// atClock returns the given day at an HH:MM clock time.
func atClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse clock %q: %w", clock, err)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
