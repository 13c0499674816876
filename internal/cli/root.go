package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/vytor/codeflash/internal/config"
	"github.com/vytor/codeflash/internal/db"
	"github.com/vytor/codeflash/internal/jobs"
	"github.com/vytor/codeflash/internal/logger"
	"github.com/vytor/codeflash/internal/repository/sqlite"
	"github.com/vytor/codeflash/internal/services"
)

// App holds the services a command works against.
type App struct {
	DB            *db.DB
	DeckService   services.DeckService
	CardService   services.CardService
	ReviewService services.ReviewService
}

// OpenApp opens the database at path and wires the services. Review history
// is written inline because the process exits right after the command.
func OpenApp(path string, clock services.Clock) (*App, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}

	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	reviewRepo := sqlite.NewReviewRepository(database.DB)

	return &App{
		DB:            database,
		DeckService:   services.NewDeckService(deckRepo, cardRepo, clock),
		CardService:   services.NewCardService(cardRepo, deckRepo, jobs.NewInlineQueue(reviewRepo), clock),
		ReviewService: services.NewReviewService(reviewRepo, cardRepo, clock),
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}

type rootOptions struct {
	dbPath  string
	verbose bool
	app     *App
	// open is swapped in tests to share an in-memory database.
	open func(path string) (*App, error)
}

type appKey struct{}

func appFrom(cmd *cobra.Command) *App {
	app, _ := cmd.Context().Value(appKey{}).(*App)
	return app
}


func newRootCmd(opts *rootOptions) *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:   "codeflash",
		Short: "CodeFlash - spaced repetition for code snippets",
		Long: `CodeFlash schedules programming flashcards with the SM-2 algorithm.

The CLI works directly against the same SQLite database the server uses.

Examples:
  codeflash decks                 # Decks with due counts
  codeflash due --deck 3          # Cards due in deck 3
  codeflash review 42 good        # Rate card 42
  codeflash stats 3               # Statistics for deck 3`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logger.WARN
			if opts.verbose {
				level = logger.DEBUG
			}
			log := logger.New(
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithLevel(level),
				logger.WithColors(false),
			).WithField("request_id", uuid.NewString())
			logger.SetDefault(log)

			if opts.app == nil {
				app, err := opts.open(opts.dbPath)
				if err != nil {
					return fmt.Errorf("open database: %w", err)
				}
				opts.app = app
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = logger.NewContext(ctx, log.WithPrefix(cmd.Name()))
			cmd.SetContext(context.WithValue(ctx, appKey{}, opts.app))
			log.Debug("command start: %s", cmd.CommandPath())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.dbPath, "db", cfg.DBPath, "SQLite database path (defaults to DB_PATH)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newDecksCmd(),
		newDueCmd(cfg.DueLimit),
		newReviewCmd(),
		newStatsCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	opts := &rootOptions{
		open: func(path string) (*App, error) { return OpenApp(path, nil) },
	}
	root := newRootCmd(opts)
	err := root.ExecuteContext(context.Background())
	if opts.app != nil {
		_ = opts.app.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func formatDate(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
