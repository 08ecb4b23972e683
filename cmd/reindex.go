package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tripwing/tripwing/internal/assembler"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex <trip-id>",
	Short: "Rebuild the memory index for a trip from its stored items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		trips, err := getStore()
		if err != nil {
			return err
		}
		trip, err := trips.GetTrip(ctx, args[0])
		if err != nil {
			return err
		}

		mem, chunkStore, err := getMemory()
		if err != nil {
			return err
		}
		defer func() { _ = chunkStore.Close() }()

		if err := mem.RemoveTrip(ctx, trip.ID); err != nil {
			return fmt.Errorf("clear trip memory: %w", err)
		}
		indexed := mem.IndexItems(ctx, trip.Items, trip.PlacesByID())

		summaries := 0
		for _, day := range trip.Days {
			items := trip.ItemsForDay(day.ID)
			if len(items) == 0 {
				continue
			}
			summary := day.Date + ":\n" + assembler.SummarizeDay(items)
			if err := mem.IndexDaySummary(ctx, trip.ID, day.ID, summary); err != nil {
				slog.Warn("index day summary failed", "day_id", day.ID, "error", err)
				continue
			}
			summaries++
		}

		fmt.Printf("Indexed %d of %d items and %d day summaries for trip %s\n",
			indexed, len(trip.Items), summaries, trip.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
