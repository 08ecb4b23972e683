package assembler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tripwing/tripwing/internal/itinerary"
	"github.com/tripwing/tripwing/internal/logistics"
	"github.com/tripwing/tripwing/internal/memory"
	"github.com/tripwing/tripwing/prompts"
)

func TestSummarizeDay(t *testing.T) {
	t.Run("empty day renders sentinel", func(t *testing.T) {
		assert.Equal(t, prompts.NoActivitiesSentinel, SummarizeDay(nil))
	})

	t.Run("lines sorted by start time", func(t *testing.T) {
		later := namedItem("i2", "Museum")
		later.Start = later.Start.Add(3 * time.Hour)
		later.End = later.Start.Add(time.Hour)
		items := []itinerary.TripItem{later, namedItem("i1", "Breakfast")}

		got := SummarizeDay(items)
		assert.Equal(t, "09:00-10:00: Breakfast\n12:00-13:00: Museum", got)
	})
}

func TestBuildQAPromptOnlyReformatsInput(t *testing.T) {
	retrieved := []memory.ScoredChunk{
		{Chunk: memory.Chunk{Text: "Activity \"Colosseum tour\" on 2026-09-14 from 09:00 to 11:00"}, Score: 0.9},
	}
	got := BuildQAPrompt(retrieved, []itinerary.TripItem{namedItem("i1", "Colosseum tour")}, nil)

	assert.Contains(t, got, "Colosseum tour")
	assert.Contains(t, got, "09:00-10:00: Colosseum tour")
	assert.Contains(t, got, "Answer only from the supplied context")
	assert.Contains(t, got, "I don't have that information")
}

func TestBuildQAPromptWithNoContext(t *testing.T) {
	got := BuildQAPrompt(nil, nil, nil)
	assert.Contains(t, got, "(no itinerary context retrieved)")
	assert.Contains(t, got, prompts.NoActivitiesSentinel)
}

func relatedDayFixture() ([]itinerary.TripItem, map[string]itinerary.Place) {
	colosseum := namedItem("i1", "Colosseum tour")
	colosseum.PlaceID = "p1"
	forum := namedItem("i2", "Forum walk")
	forum.Start = forum.Start.Add(3 * time.Hour)
	forum.End = forum.Start.Add(time.Hour)
	forum.PlaceID = "p2"

	places := map[string]itinerary.Place{
		"p1": {ID: "p1", Name: "Colosseum", NearIDs: []string{"p2"}, AreaTags: []string{"ancient-rome"}},
		"p2": {ID: "p2", Name: "Roman Forum", AreaTags: []string{"ancient-rome"}},
	}
	return []itinerary.TripItem{colosseum, forum}, places
}

func TestBuildQAPromptIncludesSpatialNotes(t *testing.T) {
	items, places := relatedDayFixture()
	got := BuildQAPrompt(nil, items, places)

	assert.Contains(t, got, "Location notes:")
	assert.Contains(t, got, `"Colosseum tour" is near "Forum walk".`)
	assert.Contains(t, got, `"Colosseum tour" is in the same area as "Forum walk".`)
}

func TestFormatRelationsOneLinePerPair(t *testing.T) {
	items, places := relatedDayFixture()
	got := FormatRelations(items, places)

	// Edges exist in both directions; each pair renders once.
	assert.Equal(t,
		"\"Colosseum tour\" is near \"Forum walk\".\n"+
			"\"Colosseum tour\" is in the same area as \"Forum walk\".",
		got)
}

func TestFormatRelationsEmptyWithoutPlaces(t *testing.T) {
	items := []itinerary.TripItem{namedItem("i1", "Breakfast"), namedItem("i2", "Museum")}
	assert.Empty(t, FormatRelations(items, nil))
	assert.Empty(t, FormatRelations(items[:1], nil))
}

func TestBuildFreeTimePrompt(t *testing.T) {
	blocks := []logistics.FreeBlock{{
		Start: time.Date(2026, 9, 14, 14, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 14, 16, 30, 0, 0, time.UTC),
	}}
	got := BuildFreeTimePrompt(nil, blocks)
	assert.Contains(t, got, "14:00-16:30")
}

func TestBuildReplanPrompt(t *testing.T) {
	got := BuildReplanPrompt("Rome, 2026-09-14 to 2026-09-18",
		[]itinerary.TripItem{namedItem("i1", "Breakfast")},
		"swap the morning around")
	assert.Contains(t, got, "Rome, 2026-09-14 to 2026-09-18")
	assert.Contains(t, got, "09:00-10:00: Breakfast")
	assert.Contains(t, got, "swap the morning around")
}
