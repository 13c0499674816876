package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/codeflash/internal/flashcard"
)

func newDueCmd(defaultLimit int) *cobra.Command {
	var (
		deckID int64
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "due",
		Short: "Show cards due for review",
		Long: `Show cards whose next review is now or in the past, oldest first.

Examples:
  codeflash due                 # Due cards across all decks
  codeflash due --deck 3        # Due cards in deck 3
  codeflash due --limit 10      # At most 10 cards`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			cards, err := app.CardService.DueCards(cmd.Context(), deckID, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(cards) == 0 {
				fmt.Fprintln(out, "Nothing due. Come back later.")
				return nil
			}
			fmt.Fprintf(out, "%-6s %-6s %-10s %-12s %s\n", "ID", "DECK", "LANGUAGE", "INTERVAL", "FRONT")
			fmt.Fprintln(out, strings.Repeat("-", 70))
			for _, c := range cards {
				fmt.Fprintf(out, "%-6d %-6d %-10s %-12s %s\n",
					c.ID, c.DeckID, c.Language, flashcard.FormatInterval(c.Interval), truncate(firstLine(c.Front), 40))
			}
			fmt.Fprintf(out, "\n%d card(s) due\n", len(cards))
			return nil
		},
	}

	cmd.Flags().Int64Var(&deckID, "deck", 0, "only cards in this deck")
	cmd.Flags().IntVar(&limit, "limit", defaultLimit, "maximum cards to show")
	return cmd
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
