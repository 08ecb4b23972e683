package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tripwing/tripwing/store"
)

var (
	tripName      string
	tripCity      string
	tripStart     string
	tripEnd       string
	tripInterests []string
)

var tripCmd = &cobra.Command{
	Use:   "trip",
	Short: "Manage trips",
}

var tripNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a trip with one day per date in its range",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := daysBetween(tripStart, tripEnd)
		if err != nil {
			return err
		}

		trips, err := getStore()
		if err != nil {
			return err
		}
		trip, err := trips.CreateTrip(cmd.Context(), store.Trip{
			Name:      tripName,
			City:      tripCity,
			StartDate: tripStart,
			EndDate:   tripEnd,
			Interests: tripInterests,
			Days:      days,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Created trip %s (%s, %s to %s, %d days)\n",
			trip.ID, trip.City, trip.StartDate, trip.EndDate, len(trip.Days))
		return nil
	},
}

var tripListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trips",
	RunE: func(cmd *cobra.Command, args []string) error {
		trips, err := getStore()
		if err != nil {
			return err
		}
		all, err := trips.ListTrips(cmd.Context())
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Println("No trips yet. Create one with 'tripwing trip new'.")
			return nil
		}
		for _, t := range all {
			fmt.Printf("%s  %-24s %s  %s to %s  (%d items)\n",
				t.ID, t.Name, t.City, t.StartDate, t.EndDate, len(t.Items))
		}
		return nil
	},
}

var tripDeleteCmd = &cobra.Command{
	Use:   "delete <trip-id>",
	Short: "Delete a trip and its memory chunks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trips, err := getStore()
		if err != nil {
			return err
		}
		if err := trips.DeleteTrip(cmd.Context(), args[0]); err != nil {
			return err
		}

		mem, chunkStore, err := getMemory()
		if err != nil {
			return err
		}
		defer func() { _ = chunkStore.Close() }()
		if err := mem.RemoveTrip(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("remove trip memory: %w", err)
		}

		fmt.Printf("Deleted trip %s\n", args[0])
		return nil
	},
}

var tripShowCmd = &cobra.Command{
	Use:   "show <trip-id>",
	Short: "Show a trip's days and items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trips, err := getStore()
		if err != nil {
			return err
		}
		trip, err := trips.GetTrip(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s, %s (%s to %s)\n", trip.Name, trip.City, trip.StartDate, trip.EndDate)
		for _, day := range trip.Days {
			fmt.Printf("\n%s:\n", day.Date)
			items := trip.ItemsForDay(day.ID)
			if len(items) == 0 {
				fmt.Println("  (nothing scheduled)")
				continue
			}
			for _, it := range items {
				fmt.Printf("  %s-%s  [%s] %s\n",
					it.Start.Format("15:04"), it.End.Format("15:04"), it.Type, it.Title)
			}
		}
		return nil
	},
}

// daysBetween expands an inclusive YYYY-MM-DD date range into Day records.
func daysBetween(start, end string) ([]store.Day, error) {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, fmt.Errorf("parse start date %q: %w", start, err)
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, fmt.Errorf("parse end date %q: %w", end, err)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("end date %s is before start date %s", end, start)
	}

	var days []store.Day
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, store.Day{Date: d.Format("2006-01-02")})
	}
	return days, nil
}

func init() {
	tripNewCmd.Flags().StringVar(&tripName, "name", "", "trip name")
	tripNewCmd.Flags().StringVar(&tripCity, "city", "", "destination city")
	tripNewCmd.Flags().StringVar(&tripStart, "start", "", "start date (YYYY-MM-DD)")
	tripNewCmd.Flags().StringVar(&tripEnd, "end", "", "end date (YYYY-MM-DD)")
	tripNewCmd.Flags().StringSliceVar(&tripInterests, "interests", nil, "traveler interests")
	_ = tripNewCmd.MarkFlagRequired("name")
	_ = tripNewCmd.MarkFlagRequired("city")
	_ = tripNewCmd.MarkFlagRequired("start")
	_ = tripNewCmd.MarkFlagRequired("end")

	tripCmd.AddCommand(tripNewCmd, tripListCmd, tripShowCmd, tripDeleteCmd)
	rootCmd.AddCommand(tripCmd)
}
