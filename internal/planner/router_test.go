package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwing/tripwing/internal/itinerary"
	"github.com/tripwing/tripwing/internal/llm"
	"github.com/tripwing/tripwing/internal/memory"
	"github.com/tripwing/tripwing/types"
)

type fakeCloud struct {
	resp  *PlanResponse
	err   error
	calls int
}

func (f *fakeCloud) GeneratePlan(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	f.calls++
	return f.resp, f.err
}

type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) Complete(ctx context.Context, msgs []llm.Message, opts llm.CompletionOptions, onToken llm.TokenCallback) (*llm.CompletionResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResult{Response: f.response}, nil
}

type fakePersister struct {
	saved [][]itinerary.TripItem
	err   error
}

func (f *fakePersister) SaveItems(ctx context.Context, items []itinerary.TripItem) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, items)
	return nil
}

type fixedEmbedder struct{}

func (fixedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

type memStore struct {
	chunks []memory.Chunk
}

func (m *memStore) GetChunks(ctx context.Context, tripID string) ([]memory.Chunk, error) {
	return m.chunks, nil
}

func (m *memStore) UpsertBySource(ctx context.Context, chunk memory.Chunk) error {
	m.chunks = append(m.chunks, chunk)
	return nil
}

func (m *memStore) DeleteBySource(ctx context.Context, sourceID string) error { return nil }
func (m *memStore) DeleteTrip(ctx context.Context, tripID string) error       { return nil }

func online(v bool) Connectivity {
	return OnlineFunc(func(ctx context.Context) bool { return v })
}

func ready(v bool) llm.Readiness {
	return llm.ReadyFunc(func(ctx context.Context) bool { return v })
}

func day(hour, min int) time.Time {
	return time.Date(2026, 9, 12, hour, min, 0, 0, time.UTC)
}

func baseRequest() GenerateRequest {
	return GenerateRequest{
		TripID:    "trip-1",
		DayID:     "day-1",
		City:      "Lisbon",
		Date:      day(0, 0),
		Interests: []string{"food"},
	}
}

func TestGeneratePlanRoutesCloudOnlyWhenOnlineAndDayEmpty(t *testing.T) {
	existing := []itinerary.TripItem{{
		ID: "i1", TripID: "trip-1", DayID: "day-1", Type: itinerary.ItemActivity,
		Title: "Museum", Start: day(10, 0), End: day(12, 0),
	}}

	tests := []struct {
		name     string
		online   bool
		existing []itinerary.TripItem
		want     string
	}{
		{"online empty day goes cloud", true, nil, SourceCloud},
		{"offline empty day goes local", false, nil, SourceLocal},
		{"online populated day goes local", true, existing, SourceLocal},
		{"other day's items do not count", true, []itinerary.TripItem{{
			ID: "i2", TripID: "trip-1", DayID: "day-2", Type: itinerary.ItemActivity,
			Title: "Tour", Start: day(9, 0), End: day(10, 0),
		}}, SourceCloud},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cloud := &fakeCloud{resp: &PlanResponse{
				Success: true,
				Items: []itinerary.TripItem{{
					Type: itinerary.ItemActivity, Title: "Walk",
					Start: day(9, 0), End: day(10, 0),
				}},
			}}
			completer := &fakeCompleter{response: "09:00-10:00: Walk"}
			store := &fakePersister{}
			mem := memory.NewService(&memStore{}, fixedEmbedder{})
			router := NewRouter(cloud, online(tt.online), completer, ready(true), mem, store)

			req := baseRequest()
			req.ExistingItems = tt.existing
			result, err := router.GeneratePlan(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Source)
			if tt.want == SourceCloud {
				assert.Equal(t, 1, cloud.calls)
				assert.Equal(t, 0, completer.calls)
			} else {
				assert.Equal(t, 0, cloud.calls)
				assert.Equal(t, 1, completer.calls)
			}
		})
	}
}

func TestGeneratePlanCloudAssignsIdentity(t *testing.T) {
	cloud := &fakeCloud{resp: &PlanResponse{
		Success: true,
		Items: []itinerary.TripItem{
			{Type: itinerary.ItemActivity, Title: "Walk", Start: day(9, 0), End: day(10, 0)},
			{Type: itinerary.ItemActivity, Title: "Lunch", Start: day(12, 0), End: day(13, 0)},
		},
	}}
	store := &fakePersister{}
	mem := memory.NewService(&memStore{}, fixedEmbedder{})
	router := NewRouter(cloud, online(true), &fakeCompleter{}, ready(true), mem, store)

	result, err := router.GeneratePlan(context.Background(), baseRequest())
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	for _, it := range result.Items {
		assert.NotEmpty(t, it.ID)
		assert.Equal(t, "trip-1", it.TripID)
		assert.Equal(t, "day-1", it.DayID)
	}
	require.Len(t, store.saved, 1)
	assert.Len(t, store.saved[0], 2)
}

func TestGeneratePlanCloudFailuresCommitNothing(t *testing.T) {
	tests := []struct {
		name    string
		cloud   *fakeCloud
		errCode string
	}{
		{"transport error", &fakeCloud{err: errors.New("dial tcp: timeout")}, ""},
		{"unsuccessful response", &fakeCloud{resp: &PlanResponse{Success: false, Error: "quota"}}, types.PlanErrBadResponse},
		{"empty item set", &fakeCloud{resp: &PlanResponse{Success: true}}, types.PlanErrEmptyPlan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakePersister{}
			mem := memory.NewService(&memStore{}, fixedEmbedder{})
			router := NewRouter(tt.cloud, online(true), &fakeCompleter{}, ready(true), mem, store)

			_, err := router.GeneratePlan(context.Background(), baseRequest())
			require.Error(t, err)
			assert.Empty(t, store.saved)
			if tt.errCode != "" {
				var planErr *types.PlanError
				require.ErrorAs(t, err, &planErr)
				assert.Equal(t, tt.errCode, planErr.Code)
			}
		})
	}
}

func TestGeneratePlanCloudDefersIndexingWhenModelNotReady(t *testing.T) {
	cloud := &fakeCloud{resp: &PlanResponse{
		Success: true,
		Items: []itinerary.TripItem{{
			Type: itinerary.ItemActivity, Title: "Walk", Start: day(9, 0), End: day(10, 0),
		}},
		KnowledgeContext: []string{"The old town is walkable."},
	}}
	store := &fakePersister{}
	chunks := &memStore{}
	mem := memory.NewService(chunks, fixedEmbedder{})
	router := NewRouter(cloud, online(true), &fakeCompleter{}, ready(false), mem, store)

	result, err := router.GeneratePlan(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Len(t, store.saved, 1, "plan still persists")
	assert.Empty(t, chunks.chunks, "indexing deferred")
}

func TestGeneratePlanCloudIndexesItemsAndKnowledge(t *testing.T) {
	cloud := &fakeCloud{resp: &PlanResponse{
		Success: true,
		Items: []itinerary.TripItem{{
			Type: itinerary.ItemActivity, Title: "Walk", Start: day(9, 0), End: day(10, 0),
		}},
		KnowledgeContext: []string{"The old town is walkable."},
	}}
	chunks := &memStore{}
	mem := memory.NewService(chunks, fixedEmbedder{})
	router := NewRouter(cloud, online(true), &fakeCompleter{}, ready(true), mem, &fakePersister{})

	_, err := router.GeneratePlan(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Len(t, chunks.chunks, 2)
}

func TestGeneratePlanLocalFailsFastWhenModelNotReady(t *testing.T) {
	completer := &fakeCompleter{response: "09:00-10:00: Walk"}
	store := &fakePersister{}
	mem := memory.NewService(&memStore{}, fixedEmbedder{})
	router := NewRouter(&fakeCloud{}, online(false), completer, ready(false), mem, store)

	_, err := router.GeneratePlan(context.Background(), baseRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrModelNotReady)
	assert.Equal(t, 0, completer.calls)
	assert.Empty(t, store.saved)
}

func TestGeneratePlanLocalParsesPlannedLines(t *testing.T) {
	completer := &fakeCompleter{response: "Here is a plan:\n" +
		"09:00-10:30: Alfama walking tour\n" +
		"not a plan line\n" +
		"12:00-13:00: Lunch at the market\n" +
		"14:00-13:00: backwards, skipped\n"}
	store := &fakePersister{}
	mem := memory.NewService(&memStore{}, fixedEmbedder{})
	router := NewRouter(&fakeCloud{}, online(false), completer, ready(true), mem, store)

	result, err := router.GeneratePlan(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, result.Source)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Alfama walking tour", result.Items[0].Title)
	assert.Equal(t, day(9, 0), result.Items[0].Start)
	assert.Equal(t, day(10, 30), result.Items[0].End)
	assert.Equal(t, "Lunch at the market", result.Items[1].Title)
	assert.Contains(t, result.Narrative, "Here is a plan")
	require.Len(t, store.saved, 1)
}

func TestGeneratePlanLocalNarrativeOnlyResponse(t *testing.T) {
	completer := &fakeCompleter{response: "I would keep your day as it is."}
	store := &fakePersister{}
	mem := memory.NewService(&memStore{}, fixedEmbedder{})
	router := NewRouter(&fakeCloud{}, online(false), completer, ready(true), mem, store)

	result, err := router.GeneratePlan(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Empty(t, store.saved, "nothing to persist")
	assert.Equal(t, "I would keep your day as it is.", result.Narrative)
}

func TestGeneratePlanLocalCompleterErrorPropagates(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("context canceled")}
	mem := memory.NewService(&memStore{}, fixedEmbedder{})
	router := NewRouter(&fakeCloud{}, online(false), completer, ready(true), mem, &fakePersister{})

	_, err := router.GeneratePlan(context.Background(), baseRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local replan")
}
