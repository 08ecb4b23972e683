// Package itinerary defines the trip data model and the deterministic
// text rendering used to feed itinerary facts into the memory index.
package itinerary

import "time"

// ItemType classifies a scheduled trip entry.
type ItemType string

// Item types.
const (
	ItemFlight    ItemType = "flight"
	ItemLodging   ItemType = "lodging"
	ItemActivity  ItemType = "activity"
	ItemTransport ItemType = "transport"
)

// TripItem is a dated activity within a trip.
// End must be at or after Start; items within a day may overlap.
type TripItem struct {
	ID       string            `json:"id" validate:"required"`
	TripID   string            `json:"tripId" validate:"required"`
	DayID    string            `json:"dayId" validate:"required"`
	Type     ItemType          `json:"type" validate:"required,oneof=flight lodging activity transport"`
	Title    string            `json:"title" validate:"required"`
	Start    time.Time         `json:"start" validate:"required"`
	End      time.Time         `json:"end" validate:"required,gtefield=Start"`
	PlaceID  string            `json:"placeId,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// DurationMinutes returns the scheduled length of the item in minutes.
func (it TripItem) DurationMinutes() int {
	return int(it.End.Sub(it.Start).Minutes())
}

// SameDay reports whether both items fall on the same calendar date.
func (it TripItem) SameDay(other TripItem) bool {
	y1, m1, d1 := it.Start.Date()
	y2, m2, d2 := other.Start.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Place is a referenced location with area tags and a near-list.
// The near-list is directed: A listing B does not imply B lists A.
type Place struct {
	ID       string   `json:"id" validate:"required"`
	Name     string   `json:"name" validate:"required"`
	City     string   `json:"city,omitempty"`
	AreaTags []string `json:"areaTags,omitempty"`
	NearIDs  []string `json:"nearIds,omitempty"`
}

// ListsNear reports whether p's near-list contains the given place id.
func (p Place) ListsNear(id string) bool {
	for _, n := range p.NearIDs {
		if n == id {
			return true
		}
	}
	return false
}

// SharesArea reports whether two places have intersecting area-tag sets.
func (p Place) SharesArea(other Place) bool {
	for _, a := range p.AreaTags {
		for _, b := range other.AreaTags {
			if a == b {
				return true
			}
		}
	}
	return false
}
