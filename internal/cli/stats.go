package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <deck-id>",
		Short: "Show statistics for a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid deck ID %q", args[0])
			}

			app := appFrom(cmd)
			ctx := cmd.Context()
			deck, err := app.DeckService.GetDeck(ctx, id)
			if err != nil {
				return err
			}
			stats, err := app.DeckService.GetDeckStats(ctx, id)
			if err != nil {
				return err
			}
			today, err := app.ReviewService.TodayCount(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", deck.Name)
			fmt.Fprintf(out, "  total cards:      %d\n", stats.TotalCards)
			fmt.Fprintf(out, "  due now:          %d\n", stats.CardsDue)
			fmt.Fprintf(out, "  reviews today:    %d\n", today)
			return nil
		},
	}
}
