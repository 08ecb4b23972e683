package planner

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/tripwing/tripwing/internal/assembler"
	"github.com/tripwing/tripwing/internal/itinerary"
	"github.com/tripwing/tripwing/internal/llm"
	"github.com/tripwing/tripwing/internal/memory"
	"github.com/tripwing/tripwing/prompts"
	"github.com/tripwing/tripwing/types"
)

// Plan sources.
const (
	SourceCloud = "cloud"
	SourceLocal = "local"
)

// ItemPersister persists generated items. Satisfied by the trip store.
type ItemPersister interface {
	SaveItems(ctx context.Context, items []itinerary.TripItem) error
}

// GenerateRequest describes one day-plan generation.
type GenerateRequest struct {
	TripID     string
	DayID      string
	City       string
	Date       time.Time
	Interests  []string
	TimeRanges []itinerary.TimeRange

	// ExistingItems is the trip's current schedule; the router derives
	// the target day's state from it.
	ExistingItems []itinerary.TripItem
	Places        map[string]itinerary.Place
}

// GenerateResult is the outcome of a routed generation.
type GenerateResult struct {
	Source string
	Items  []itinerary.TripItem
	// Narrative is the local engine's textual plan, empty for cloud plans.
	Narrative string
}

// Router decides between cloud generation and local replanning.
// Cloud is used iff the network is up and the target day is fresh
// (zero existing items); everything else goes to the on-device engine.
type Router struct {
	cloud        CloudPlanner
	connectivity Connectivity
	completer    llm.Completer
	readiness    llm.Readiness
	memory       *memory.Service
	store        ItemPersister
}

// NewRouter wires a hybrid planning router.
func NewRouter(cloud CloudPlanner, connectivity Connectivity, completer llm.Completer, readiness llm.Readiness, mem *memory.Service, store ItemPersister) *Router {
	return &Router{
		cloud:        cloud,
		connectivity: connectivity,
		completer:    completer,
		readiness:    readiness,
		memory:       mem,
		store:        store,
	}
}

// GeneratePlan routes the request, applies the winning engine's result
// and triggers re-indexing.
func (r *Router) GeneratePlan(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	dayItems := itemsForDay(req.ExistingItems, req.DayID)

	if r.connectivity.Online(ctx) && len(dayItems) == 0 {
		return r.generateCloud(ctx, req)
	}
	return r.replanLocal(ctx, req, dayItems)
}

// generateCloud persists the cloud plan whole, then re-indexes
// best-effort. A non-success response or an empty item set surfaces as an
// error with nothing committed.
func (r *Router) generateCloud(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	resp, err := r.cloud.GeneratePlan(ctx, PlanRequest{
		City:       req.City,
		Date:       req.Date.Format("2006-01-02"),
		TimeRanges: req.TimeRanges,
		Interests:  req.Interests,
	})
	if err != nil {
		return nil, fmt.Errorf("cloud plan: %w", err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "planning service reported failure"
		}
		return nil, types.NewPlanError(types.PlanErrBadResponse, msg)
	}
	if len(resp.Items) == 0 {
		return nil, types.NewPlanError(types.PlanErrEmptyPlan, "planning service returned no items")
	}

	items := make([]itinerary.TripItem, len(resp.Items))
	for i, it := range resp.Items {
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		it.TripID = req.TripID
		it.DayID = req.DayID
		items[i] = it
	}

	if err := r.store.SaveItems(ctx, items); err != nil {
		return nil, fmt.Errorf("persist cloud plan: %w", err)
	}

	r.indexPlan(ctx, req.TripID, items, req.Places, resp.KnowledgeContext)

	return &GenerateResult{Source: SourceCloud, Items: items}, nil
}

// replanLocal frames the request as a natural-language replanning
// instruction for the on-device engine. It fails fast when the model is
// not downloaded rather than silently falling back.
func (r *Router) replanLocal(ctx context.Context, req GenerateRequest, dayItems []itinerary.TripItem) (*GenerateResult, error) {
	if !r.readiness.Ready(ctx) {
		return nil, fmt.Errorf("local replanning: %w", types.ErrModelNotReady)
	}

	date := req.Date.Format("2006-01-02")
	instruction := fmt.Sprintf(prompts.LocalReplanInstruction, req.City, date, assembler.SummarizeDay(dayItems))
	system := assembler.BuildReplanPrompt(
		fmt.Sprintf("%s, %s", req.City, date), dayItems, instruction)

	result, err := r.completer.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: instruction},
	}, llm.CompletionOptions{MaxTokens: 1024, Temperature: 0.7}, nil)
	if err != nil {
		return nil, fmt.Errorf("local replan: %w", err)
	}

	items := parsePlannedLines(result.Response, req)
	if len(items) > 0 {
		if err := r.store.SaveItems(ctx, items); err != nil {
			return nil, fmt.Errorf("persist local plan: %w", err)
		}
		r.indexPlan(ctx, req.TripID, items, req.Places, nil)
	}

	return &GenerateResult{Source: SourceLocal, Items: items, Narrative: result.Response}, nil
}

// indexPlan refreshes the memory index for freshly planned items.
// Indexing is a best-effort side effect and is skipped entirely (deferred,
// not failed) while the embedding engine is not ready.
func (r *Router) indexPlan(ctx context.Context, tripID string, items []itinerary.TripItem, places map[string]itinerary.Place, knowledge []string) {
	if !r.readiness.Ready(ctx) {
		slog.Info("embedding engine not ready, deferring indexing", "trip_id", tripID)
		return
	}
	indexed := r.memory.IndexItems(ctx, items, places)
	if indexed < len(items) {
		slog.Warn("some planned items were not indexed", "trip_id", tripID, "indexed", indexed, "total", len(items))
	}
	if len(knowledge) > 0 {
		r.memory.IndexKnowledge(ctx, tripID, knowledge)
	}
}

// plannedLine matches the "HH:MM-HH:MM: title" lines the local engine is
// instructed to emit.
var plannedLine = regexp.MustCompile(`(?m)^(\d{1,2}:\d{2})-(\d{1,2}:\d{2}):\s*(.+)$`)

// parsePlannedLines converts the local engine's plan text into items on
// the requested day. Unparseable lines are ignored.
func parsePlannedLines(text string, req GenerateRequest) []itinerary.TripItem {
	var items []itinerary.TripItem
	for _, m := range plannedLine.FindAllStringSubmatch(text, -1) {
		start, err1 := clockOn(req.Date, m[1])
		end, err2 := clockOn(req.Date, m[2])
		if err1 != nil || err2 != nil || !end.After(start) {
			continue
		}
		items = append(items, itinerary.TripItem{
			ID:     uuid.NewString(),
			TripID: req.TripID,
			DayID:  req.DayID,
			Type:   itinerary.ItemActivity,
			Title:  m[3],
			Start:  start,
			End:    end,
		})
	}
	return items
}

// clockOn returns the request date at an HH:MM clock time.
func clockOn(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// itemsForDay filters the trip's items down to one day.
func itemsForDay(items []itinerary.TripItem, dayID string) []itinerary.TripItem {
	var out []itinerary.TripItem
	for _, it := range items {
		if it.DayID == dayID {
			out = append(out, it)
		}
	}
	return out
}
