// Package logistics derives temporal and spatial relations between trip
// activities and computes free-time blocks and earliest-fit slots.
package logistics

import (
	"sort"

	"github.com/tripwing/tripwing/internal/itinerary"
)

// Relation labels a directed edge between two itinerary items.
type Relation string

// Edge relations.
const (
	RelationBefore    Relation = "BEFORE"
	RelationAfter     Relation = "AFTER"
	RelationWithinDay Relation = "WITHIN_DAY"
	RelationNear      Relation = "NEAR"
	RelationSameArea  Relation = "SAME_AREA"
)

// Edge is a directed (from, to, relation) triple.
type Edge struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Relation Relation `json:"relation"`
}

// Graph is a derived, disposable view over a trip's items and places.
// It is never persisted; rebuild it on demand.
type Graph struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

// Build derives the relation graph for a set of items. The temporal pass
// sorts by start time and links adjacent pairs; the spatial pass compares
// every pair with resolvable places. The spatial pass is quadratic, which
// is fine at single-trip scale.
func Build(items []itinerary.TripItem, places map[string]itinerary.Place) *Graph {
	g := &Graph{}

	sorted := make([]itinerary.TripItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	for _, it := range sorted {
		g.Nodes = append(g.Nodes, it.ID)
	}

	// Temporal pass: adjacent pairs in start order.
	for i := 0; i+1 < len(sorted); i++ {
		a, b := sorted[i], sorted[i+1]
		g.Edges = append(g.Edges,
			Edge{From: a.ID, To: b.ID, Relation: RelationBefore},
			Edge{From: b.ID, To: a.ID, Relation: RelationAfter},
		)
		if a.SameDay(b) {
			g.Edges = append(g.Edges,
				Edge{From: a.ID, To: b.ID, Relation: RelationWithinDay},
				Edge{From: b.ID, To: a.ID, Relation: RelationWithinDay},
			)
		}
	}

	// Spatial pass: every pair with resolvable places.
	for i := 0; i < len(sorted); i++ {
		pa, ok := places[sorted[i].PlaceID]
		if !ok {
			continue
		}
		for j := i + 1; j < len(sorted); j++ {
			pb, ok := places[sorted[j].PlaceID]
			if !ok {
				continue
			}
			// The near-list is directed storage with symmetric intent:
			// either side listing the other is enough.
			if pa.ListsNear(pb.ID) || pb.ListsNear(pa.ID) {
				g.Edges = append(g.Edges,
					Edge{From: sorted[i].ID, To: sorted[j].ID, Relation: RelationNear},
					Edge{From: sorted[j].ID, To: sorted[i].ID, Relation: RelationNear},
				)
			}
			if pa.SharesArea(pb) {
				g.Edges = append(g.Edges,
					Edge{From: sorted[i].ID, To: sorted[j].ID, Relation: RelationSameArea},
					Edge{From: sorted[j].ID, To: sorted[i].ID, Relation: RelationSameArea},
				)
			}
		}
	}

	return g
}

// Related returns the ids reachable from the given node over one edge of
// the given relation, in edge insertion order.
func (g *Graph) Related(id string, relation Relation) []string {
	var out []string
	for _, e := range g.Edges {
		if e.From == id && e.Relation == relation {
			out = append(out, e.To)
		}
	}
	return out
}
