package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vytor/codeflash/internal/flashcard"
)

func newReviewCmd() *cobra.Command {
	var timeTaken float64

	cmd := &cobra.Command{
		Use:   "review <card-id> <quality>",
		Short: "Record a review for a card",
		Long: `Rate a card and reschedule it.

Quality is 0-3 or one of again, hard, good, easy.

Examples:
  codeflash review 42 good
  codeflash review 42 3 --time 12.5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid card ID %q", args[0])
			}
			quality, err := flashcard.ParseQuality(args[1])
			if err != nil {
				return err
			}

			var taken *float64
			if cmd.Flags().Changed("time") {
				taken = &timeTaken
			}

			app := appFrom(cmd)
			card, err := app.CardService.ReviewCard(cmd.Context(), id, quality, taken)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Card %d rated %s\n", card.ID, quality)
			fmt.Fprintf(out, "  ease factor: %.2f\n", card.EaseFactor)
			fmt.Fprintf(out, "  interval:    %s\n", flashcard.FormatInterval(card.Interval))
			fmt.Fprintf(out, "  next review: %s\n", formatDate(card.NextReview))
			fmt.Fprintf(out, "  phase:       %s\n", flashcard.RegimeOf(card.SchedulingState()))
			return nil
		},
	}

	cmd.Flags().Float64Var(&timeTaken, "time", 0, "seconds spent answering")
	return cmd
}
