package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vytor/codeflash/internal/models"
)

// ErrVersionConflict is returned when a card changed between read and write.
var ErrVersionConflict = errors.New("card was modified concurrently")

// DeckRepository handles deck data access
type DeckRepository interface {
	Get(ctx context.Context, id int64) (*models.Deck, error)
	List(ctx context.Context) ([]models.Deck, error)
	Insert(ctx context.Context, deck models.Deck) (int64, error)
	Update(ctx context.Context, deck models.Deck) error
	Delete(ctx context.Context, id int64) (bool, error)
	Stats(ctx context.Context, id int64, asOf time.Time) (*models.DeckStats, error)
	AllStats(ctx context.Context, asOf time.Time) ([]models.DeckStats, error)
}

// CardRepository handles card data access
type CardRepository interface {
	Get(ctx context.Context, id int64) (*models.Card, error)
	List(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	Due(ctx context.Context, filter models.DueFilter) ([]models.Card, error)
	Insert(ctx context.Context, card models.Card) (int64, error)
	UpdateContent(ctx context.Context, card models.Card) error
	// UpdateSchedule writes the scheduling fields only if the stored version
	// still equals card.Version, then bumps the version.
	UpdateSchedule(ctx context.Context, card models.Card) error
	Delete(ctx context.Context, id int64) (bool, error)
	CountByDeck(ctx context.Context, deckID int64) (int, error)
	DeleteByDeck(ctx context.Context, deckID int64) (int64, error)
}

// ReviewRepository handles review history data access
type ReviewRepository interface {
	Insert(ctx context.Context, review models.Review) (int64, error)
	ListForCard(ctx context.Context, cardID int64, limit int) ([]models.Review, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]models.Review, error)
	CountBetween(ctx context.Context, start, end time.Time) (int, error)
	StatsForCard(ctx context.Context, cardID int64) (*models.ReviewStats, error)
}
