package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDecksCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "decks",
		Short:   "List decks with card and due counts",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appFrom(cmd)
			ctx := cmd.Context()

			decks, err := app.DeckService.ListDecks(ctx)
			if err != nil {
				return err
			}
			stats, err := app.DeckService.AllDeckStats(ctx)
			if err != nil {
				return err
			}
			total := make(map[int64]int, len(stats))
			due := make(map[int64]int, len(stats))
			for _, s := range stats {
				total[s.DeckID] = s.TotalCards
				due[s.DeckID] = s.CardsDue
			}

			out := cmd.OutOrStdout()
			if len(decks) == 0 {
				fmt.Fprintln(out, "No decks yet.")
				return nil
			}
			fmt.Fprintf(out, "%-6s %-30s %8s %6s\n", "ID", "NAME", "CARDS", "DUE")
			fmt.Fprintln(out, strings.Repeat("-", 53))
			for _, d := range decks {
				fmt.Fprintf(out, "%-6d %-30s %8d %6d\n", d.ID, truncate(d.Name, 30), total[d.ID], due[d.ID])
			}
			return nil
		},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
