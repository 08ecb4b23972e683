package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tripwing/tripwing/internal/assembler"
	"github.com/tripwing/tripwing/internal/itinerary"
	"github.com/tripwing/tripwing/internal/llm"
	"github.com/tripwing/tripwing/internal/logger"
	"github.com/tripwing/tripwing/store"
)

var (
	askDate string
	askYes  bool
	askTopK int
)

var askCmd = &cobra.Command{
	Use:   "ask <trip-id> <question>",
	Short: "Ask about your itinerary, or request a change in plain language",
	Long: `Answers itinerary questions from the semantic memory index.
Commands like "move the museum visit to 3pm" are detected and turned into a
proposed schedule change you confirm before it is applied.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		tripID := args[0]
		text := strings.Join(args[1:], " ")
		logger.SetLastInput(text)

		trips, err := getStore()
		if err != nil {
			return err
		}
		trip, err := trips.GetTrip(ctx, tripID)
		if err != nil {
			return err
		}

		if assembler.IsModificationCommand(text) {
			return runModification(cmd, trips, trip, text)
		}
		return runQuestion(cmd, trip, text)
	},
}

// runQuestion retrieves relevant chunks and answers through the
// completion engine, streaming tokens as they arrive.
func runQuestion(cmd *cobra.Command, trip store.Trip, question string) error {
	ctx := cmd.Context()

	mem, chunkStore, err := getMemory()
	if err != nil {
		return err
	}
	defer func() { _ = chunkStore.Close() }()

	retrieved, err := mem.Search(ctx, trip.ID, question, askTopK)
	if err != nil {
		return fmt.Errorf("search memory: %w", err)
	}

	var dayItems []itinerary.TripItem
	if askDate != "" {
		day, err := findDay(trip, askDate)
		if err != nil {
			return err
		}
		dayItems = trip.ItemsForDay(day.ID)
	}

	completer, _, err := getCompleter()
	if err != nil {
		return err
	}

	system := assembler.BuildQAPrompt(retrieved, dayItems, trip.PlacesByID())
	_, err = completer.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: question},
	}, llm.CompletionOptions{MaxTokens: 512}, func(token string) {
		fmt.Print(token)
	})
	fmt.Println()
	if err != nil {
		return fmt.Errorf("answer question: %w", err)
	}
	return nil
}

// runModification drives the session state machine: resolve the target,
// propose new times, confirm on stdin, apply or dismiss.
func runModification(cmd *cobra.Command, trips store.TripStore, trip store.Trip, command string) error {
	ctx := cmd.Context()

	session := assembler.NewSession(trip.ID)
	session.Append(llm.RoleUser, command)

	action, err := session.HandleModification(command, trip.Items)
	if err != nil {
		return err
	}

	fmt.Println(action.Description)
	if !askYes && !confirm() {
		session.Dismiss()
		fmt.Println("Left unchanged.")
		return nil
	}

	mem, chunkStore, err := getMemory()
	if err != nil {
		return err
	}
	defer func() { _ = chunkStore.Close() }()

	var place *itinerary.Place
	if p, ok := trip.PlacesByID()[action.Item.PlaceID]; ok {
		place = &p
	}
	updated, err := session.Apply(ctx, trips, mem, place)
	if err != nil {
		return err
	}
	fmt.Printf("Moved %q to %s-%s.\n",
		updated.Title, updated.Start.Format("15:04"), updated.End.Format("15:04"))
	return nil
}

// confirm reads a y/n answer from stdin.
func confirm() bool {
	fmt.Print("Apply this change? [y/N] ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	askCmd.Flags().StringVar(&askDate, "date", "", "include this day's schedule in the context (YYYY-MM-DD)")
	askCmd.Flags().BoolVarP(&askYes, "yes", "y", false, "apply proposed changes without asking")
	askCmd.Flags().IntVarP(&askTopK, "top", "k", 5, "number of memory chunks to retrieve")
	rootCmd.AddCommand(askCmd)
}
