// Package store persists trips and their itineraries as JSON files.
package store

import (
	"context"

	"github.com/tripwing/tripwing/internal/itinerary"
)

// Trip is the persisted root aggregate: the trip header plus its days,
// items and referenced places.
type Trip struct {
	ID        string               `json:"id" validate:"required"`
	Name      string               `json:"name" validate:"required"`
	City      string               `json:"city" validate:"required"`
	StartDate string               `json:"startDate" validate:"required"` // YYYY-MM-DD
	EndDate   string               `json:"endDate" validate:"required"`
	Interests []string             `json:"interests,omitempty"`
	Days      []Day                `json:"days,omitempty"`
	Items     []itinerary.TripItem `json:"items,omitempty"`
	Places    []itinerary.Place    `json:"places,omitempty"`
}

// Day is one planned calendar day of a trip.
type Day struct {
	ID   string `json:"id" validate:"required"`
	Date string `json:"date" validate:"required"` // YYYY-MM-DD
}

// PlacesByID indexes the trip's places for lookup by item PlaceID.
func (t Trip) PlacesByID() map[string]itinerary.Place {
	out := make(map[string]itinerary.Place, len(t.Places))
	for _, p := range t.Places {
		out[p.ID] = p
	}
	return out
}

// ItemsForDay returns the trip's items scheduled on the given day.
func (t Trip) ItemsForDay(dayID string) []itinerary.TripItem {
	var out []itinerary.TripItem
	for _, it := range t.Items {
		if it.DayID == dayID {
			out = append(out, it)
		}
	}
	return out
}

// TripStore defines the persistence contract for trips.
type TripStore interface {
	// CreateTrip validates and persists a new trip. A missing ID is
	// generated. Returns the stored trip.
	CreateTrip(ctx context.Context, trip Trip) (Trip, error)

	// GetTrip loads a trip by id. Returns types.ErrNotFound when absent.
	GetTrip(ctx context.Context, id string) (Trip, error)

	// ListTrips returns all stored trips, ordered by id.
	ListTrips(ctx context.Context) ([]Trip, error)

	// DeleteTrip removes a trip. Returns types.ErrNotFound when absent.
	DeleteTrip(ctx context.Context, id string) error

	// SaveItems appends validated items to their trip.
	SaveItems(ctx context.Context, items []itinerary.TripItem) error

	// UpdateItem replaces an existing item in place, keyed by item ID.
	UpdateItem(ctx context.Context, item itinerary.TripItem) error
}
