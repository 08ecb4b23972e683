package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tripwing/tripwing/internal/assembler"
	"github.com/tripwing/tripwing/internal/llm"
	"github.com/tripwing/tripwing/internal/logistics"
)

var (
	freetimeMinimum int
	freetimeSuggest bool
)

var freetimeCmd = &cobra.Command{
	Use:   "freetime <trip-id> <date>",
	Short: "Show a day's open time blocks, optionally with suggestions",
	Args:  cobra.ExactArgs(2),
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

		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 8, 0, 0, 0, date.Location())
		dayEnd := time.Date(date.Year(), date.Month(), date.Day(), 22, 0, 0, 0, date.Location())

		blocks := logistics.ComputeFreeBlocks(trip.ItemsForDay(day.ID), dayStart, dayEnd)
		var kept []logistics.FreeBlock
		for _, b := range blocks {
			if b.DurationMinutes() >= freetimeMinimum {
				kept = append(kept, b)
			}
		}

		if len(kept) == 0 {
			fmt.Printf("No open blocks of %d minutes or more on %s.\n", freetimeMinimum, day.Date)
			return nil
		}
		fmt.Printf("Open time on %s:\n", day.Date)
		for _, b := range kept {
			fmt.Printf("  %s-%s  (%d min)\n",
				b.Start.Format("15:04"), b.End.Format("15:04"), b.DurationMinutes())
		}

		if !freetimeSuggest {
			return nil
		}

		mem, chunkStore, err := getMemory()
		if err != nil {
			return err
		}
		defer func() { _ = chunkStore.Close() }()

		retrieved, err := mem.Search(ctx, trip.ID, "things to do in "+trip.City, 5)
		if err != nil {
			return fmt.Errorf("search memory: %w", err)
		}

		completer, _, err := getCompleter()
		if err != nil {
			return err
		}

		fmt.Println()
		system := assembler.BuildFreeTimePrompt(retrieved, kept)
		_, err = completer.Complete(ctx, []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: "What should I do with my open time?"},
		}, llm.CompletionOptions{MaxTokens: 512}, func(token string) {
			fmt.Print(token)
		})
		fmt.Println()
		if err != nil {
			return fmt.Errorf("suggest free time: %w", err)
		}
		return nil
	},
}

func init() {
	freetimeCmd.Flags().IntVar(&freetimeMinimum, "min", 30, "minimum block length in minutes")
	freetimeCmd.Flags().BoolVar(&freetimeSuggest, "suggest", false, "ask the completion engine for suggestions")
	rootCmd.AddCommand(freetimeCmd)
}
