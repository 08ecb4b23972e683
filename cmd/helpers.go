package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/tripwing/tripwing/store"
)

// findDay resolves a day of a trip by its YYYY-MM-DD date.
func findDay(trip store.Trip, date string) (store.Day, error) {
	for _, d := range trip.Days {
		if d.Date == date {
			return d, nil
		}
	}
	return store.Day{}, fmt.Errorf("trip %s has no day on %s", trip.ID, date)
}

// loadTripAndDay loads a trip and resolves one of its days by date.
func loadTripAndDay(ctx context.Context, trips store.TripStore, tripID, date string) (store.Trip, store.Day, error) {
	trip, err := trips.GetTrip(ctx, tripID)
	if err != nil {
		return store.Trip{}, store.Day{}, err
	}
	day, err := findDay(trip, date)
	if err != nil {
		return store.Trip{}, store.Day{}, err
	}
	return trip, day, nil
}

// parseDate parses a YYYY-MM-DD date.
func parseDate(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q (want YYYY-MM-DD): %w", date, err)
	}
	return t, nil
}
