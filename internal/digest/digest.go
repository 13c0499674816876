package digest

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/codeflash/internal/logger"
	"github.com/vytor/codeflash/internal/models"
)

// DeckSource is the part of the deck service the digest reads from.
type DeckSource interface {
	ListDecks(ctx context.Context) ([]models.Deck, error)
	AllDeckStats(ctx context.Context) ([]models.DeckStats, error)
}

// Entry is one line of the digest.
type Entry struct {
	DeckID     int64
	DeckName   string
	TotalCards int
	CardsDue   int
}

// Reporter periodically logs how many cards are due in every deck.
type Reporter struct {
	scheduler *gocron.Scheduler
	decks     DeckSource
	interval  time.Duration
	log       *logger.Logger
}

// New creates a reporter firing every interval. A zero interval disables it.
func New(decks DeckSource, interval time.Duration) *Reporter {
	return &Reporter{
		scheduler: gocron.NewScheduler(time.UTC),
		decks:     decks,
		interval:  interval,
		log:       logger.Default().WithPrefix("digest"),
	}
}

// Start schedules the digest without blocking. The first run happens immediately.
func (r *Reporter) Start() error {
	if r.interval <= 0 {
		r.log.Info("due digest disabled")
		return nil
	}
	_, err := r.scheduler.Every(r.interval).Do(func() {
		if _, err := r.Run(context.Background()); err != nil {
			r.log.Warn("due digest failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	r.scheduler.StartAsync()
	r.log.Info("due digest scheduled every %v", r.interval)
	return nil
}

// Stop terminates the schedule.
func (r *Reporter) Stop() {
	if r.scheduler.IsRunning() {
		r.scheduler.Stop()
	}
}

// Run builds the digest once and logs it.
func (r *Reporter) Run(ctx context.Context) ([]Entry, error) {
	ctx = logger.NewContext(ctx, r.log)

	decks, err := r.decks.ListDecks(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := r.decks.AllDeckStats(ctx)
	if err != nil {
		return nil, err
	}

	byDeck := make(map[int64]models.DeckStats, len(stats))
	for _, s := range stats {
		byDeck[s.DeckID] = s
	}

	entries := make([]Entry, 0, len(decks))
	totalDue := 0
	for _, d := range decks {
		s := byDeck[d.ID]
		entries = append(entries, Entry{
			DeckID:     d.ID,
			DeckName:   d.Name,
			TotalCards: s.TotalCards,
			CardsDue:   s.CardsDue,
		})
		totalDue += s.CardsDue
		r.log.WithFields(map[string]any{
			"deck":  d.Name,
			"due":   s.CardsDue,
			"total": s.TotalCards,
		}).Info("deck digest")
	}
	r.log.Info("%d cards due across %d decks", totalDue, len(decks))
	return entries, nil
}
