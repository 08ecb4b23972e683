package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchTopK int

var searchCmd = &cobra.Command{
	Use:   "search <trip-id> <query>",
	Short: "Search the trip's semantic memory index",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		query := strings.Join(args[1:], " ")

		mem, chunkStore, err := getMemory()
		if err != nil {
			return err
		}
		defer func() { _ = chunkStore.Close() }()

		results, err := mem.Search(ctx, args[0], query, searchTopK)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No indexed itinerary context. Run 'tripwing reindex' first.")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%.3f  [%s]  %s\n", r.Score, r.Chunk.Kind, r.Chunk.Text)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top", "k", 5, "number of results")
	rootCmd.AddCommand(searchCmd)
}
