package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tripwing/tripwing/internal/itinerary"
	"github.com/tripwing/tripwing/internal/planner"
)

var (
	planInterests []string
	planWindow    string
)

var planCmd = &cobra.Command{
	Use:   "plan <trip-id> <date>",
	Short: "Generate a plan for one day, in the cloud or on-device",
	Long: `Generates activities for one day of a trip. An empty day with network
access is planned by the cloud service; a day that already has items, or an
offline session, is replanned by the on-device engine.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		trips, err := getStore()
		if err != nil {
			return err
		}
		trip, day, err := loadTripAndDay(ctx, trips, args[0], args[1])
		if err != nil {
			return err
		}
		date, err := parseDate(day.Date)
		if err != nil {
			return err
		}

		mem, chunkStore, err := getMemory()
		if err != nil {
			return err
		}
		defer func() { _ = chunkStore.Close() }()

		router, err := getRouter(mem, trips)
		if err != nil {
			return err
		}

		interests := planInterests
		if len(interests) == 0 {
			interests = trip.Interests
		}
		var ranges []itinerary.TimeRange
		if planWindow != "" {
			if tr := itinerary.ParseTimeRange(planWindow); tr != nil {
				ranges = append(ranges, *tr)
			} else {
				return fmt.Errorf("cannot parse time window %q", planWindow)
			}
		}

		result, err := router.GeneratePlan(ctx, planner.GenerateRequest{
			TripID:        trip.ID,
			DayID:         day.ID,
			City:          trip.City,
			Date:          date,
			Interests:     interests,
			TimeRanges:    ranges,
			ExistingItems: trip.Items,
			Places:        trip.PlacesByID(),
		})
		if err != nil {
			return err
		}

		fmt.Printf("Planned %s via %s engine:\n", day.Date, result.Source)
		for _, it := range result.Items {
			fmt.Printf("  %s-%s  %s\n", it.Start.Format("15:04"), it.End.Format("15:04"), it.Title)
		}
		if len(result.Items) == 0 && result.Narrative != "" {
			fmt.Println(result.Narrative)
		}
		return nil
	},
}

func init() {
	planCmd.Flags().StringSliceVar(&planInterests, "interests", nil, "override trip interests for this day")
	planCmd.Flags().StringVar(&planWindow, "window", "", `preferred time window, e.g. "morning" or "2pm to 6pm"`)
	rootCmd.AddCommand(planCmd)
}
