package itinerary

import (
	"fmt"
	"strings"
)

// Canonical text layout constants.
const (
	canonicalDateLayout = "2006-01-02"
	canonicalTimeLayout = "15:04"
)

// Canonicalize renders a trip item as a fixed-template natural-language
// sentence suitable for embedding. The rendering is a pure function of
// (item, place): identical inputs always produce identical output, which
// is what makes re-embedding idempotent. place may be nil.
func Canonicalize(item TripItem, place *Place) string {
	date := item.Start.Format(canonicalDateLayout)
	start := item.Start.Format(canonicalTimeLayout)
	end := item.End.Format(canonicalTimeLayout)

	switch item.Type {
	case ItemFlight:
		var sb strings.Builder
		fmt.Fprintf(&sb, "Flight %q on %s departing %s arriving %s", item.Title, date, start, end)
		origin := item.Metadata["origin"]
		destination := item.Metadata["destination"]
		if origin != "" && destination != "" {
			fmt.Fprintf(&sb, " from %s to %s", origin, destination)
		}
		return sb.String()

	case ItemLodging:
		var sb strings.Builder
		fmt.Fprintf(&sb, "Stay at %q", item.Title)
		if place != nil && place.City != "" {
			fmt.Fprintf(&sb, " in %s", place.City)
		}
		fmt.Fprintf(&sb, " from %s %s check-in until %s check-out", date, start, end)
		return sb.String()

	case ItemActivity:
		var sb strings.Builder
		fmt.Fprintf(&sb, "Activity %q on %s from %s to %s", item.Title, date, start, end)
		if place != nil {
			if place.City != "" {
				fmt.Fprintf(&sb, " in %s", place.City)
			}
			if len(place.AreaTags) > 0 {
				fmt.Fprintf(&sb, " near %s", strings.Join(place.AreaTags, ", "))
			}
		}
		return sb.String()

	case ItemTransport:
		return fmt.Sprintf("Transport %q on %s from %s to %s", item.Title, date, start, end)

	default:
		// Unknown types fall back to the generic template.
		return fmt.Sprintf("%s on %s from %s to %s", item.Title, date, start, end)
	}
}
