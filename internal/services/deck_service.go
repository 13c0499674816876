package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vytor/codeflash/internal/errors"
	"github.com/vytor/codeflash/internal/logger"
	"github.com/vytor/codeflash/internal/models"
	"github.com/vytor/codeflash/internal/repository"
)

// DeckService handles deck-related business logic
type DeckService interface {
	ListDecks(ctx context.Context) ([]models.Deck, error)
	GetDeck(ctx context.Context, id int64) (*models.Deck, error)
	CreateDeck(ctx context.Context, deck models.Deck) (*models.Deck, error)
	UpdateDeck(ctx context.Context, id int64, update models.DeckUpdate) (*models.Deck, error)
	DeleteDeck(ctx context.Context, id int64, cascade bool) error
	GetDeckStats(ctx context.Context, id int64) (*models.DeckStats, error)
	AllDeckStats(ctx context.Context) ([]models.DeckStats, error)
	ListDeckCards(ctx context.Context, id int64) ([]models.Card, error)
}

type deckService struct {
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
	now      Clock
}

// NewDeckService creates a new DeckService
func NewDeckService(deckRepo repository.DeckRepository, cardRepo repository.CardRepository, clock Clock) DeckService {
	return &deckService{
		deckRepo: deckRepo,
		cardRepo: cardRepo,
		now:      clockOrDefault(clock),
	}
}

func (s *deckService) ListDecks(ctx context.Context) ([]models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing decks")

	decks, err := s.deckRepo.List(ctx)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) GetDeck(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting deck: id=%d", id)

	deck, err := s.deckRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) CreateDeck(ctx context.Context, deck models.Deck) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	deck.Name = strings.TrimSpace(deck.Name)
	deck.Description = strings.TrimSpace(deck.Description)
	if deck.Name == "" {
		return nil, errors.NewValidationError("name", "is required")
	}
	if deck.Color == "" {
		deck.Color = models.DefaultDeckColor
	}
	if !models.IsValidDeckColor(deck.Color) {
		return nil, errors.NewValidationError("color", "must be a hex color like #7C3AED")
	}

	now := s.now()
	deck.CreatedAt = now
	deck.UpdatedAt = now

	id, err := s.deckRepo.Insert(ctx, deck)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	deck.ID = id
	log.Info("deck created: id=%d, name=%s", id, deck.Name)
	return &deck, nil
}

func (s *deckService) UpdateDeck(ctx context.Context, id int64, update models.DeckUpdate) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating deck: id=%d", id)

	deck, err := s.GetDeck(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, errors.NewValidationError("name", "cannot be empty")
		}
		deck.Name = name
	}
	if update.Description != nil {
		deck.Description = strings.TrimSpace(*update.Description)
	}
	if update.Color != nil && *update.Color != "" {
		if !models.IsValidDeckColor(*update.Color) {
			return nil, errors.NewValidationError("color", "must be a hex color like #7C3AED")
		}
		deck.Color = *update.Color
	}
	if update.Icon != nil {
		deck.Icon = *update.Icon
	}
	deck.UpdatedAt = s.now()

	if err := s.deckRepo.Update(ctx, *deck); err != nil {
		log.Error("failed to update deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return deck, nil
}

// DeleteDeck refuses to drop a deck that still holds cards unless cascade is set.
func (s *deckService) DeleteDeck(ctx context.Context, id int64, cascade bool) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting deck: id=%d, cascade=%t", id, cascade)

	if _, err := s.GetDeck(ctx, id); err != nil {
		return err
	}

	count, err := s.cardRepo.CountByDeck(ctx, id)
	if err != nil {
		log.Error("failed to count deck cards: %v", err)
		return errors.NewInternalError(err)
	}
	if count > 0 && !cascade {
		return errors.NewConflictError(
			fmt.Sprintf("cannot delete deck with %d cards, use cascade=true to delete all cards", count), nil)
	}
	if count > 0 {
		removed, err := s.cardRepo.DeleteByDeck(ctx, id)
		if err != nil {
			log.Error("failed to delete deck cards: %v", err)
			return errors.NewInternalError(err)
		}
		log.Info("deleted %d cards of deck %d", removed, id)
	}

	deleted, err := s.deckRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
		return errors.NewInternalError(err)
	}
	if !deleted {
		return errors.NewNotFoundError("deck", id)
	}
	log.Info("deck deleted: id=%d", id)
	return nil
}

func (s *deckService) GetDeckStats(ctx context.Context, id int64) (*models.DeckStats, error) {
	log := logger.FromContext(ctx)

	if _, err := s.GetDeck(ctx, id); err != nil {
		return nil, err
	}
	stats, err := s.deckRepo.Stats(ctx, id, s.now())
	if err != nil {
		log.Error("failed to get deck stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *deckService) AllDeckStats(ctx context.Context) ([]models.DeckStats, error) {
	stats, err := s.deckRepo.AllStats(ctx, s.now())
	if err != nil {
		logger.FromContext(ctx).Error("failed to get deck stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *deckService) ListDeckCards(ctx context.Context, id int64) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	if _, err := s.GetDeck(ctx, id); err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.List(ctx, models.CardFilter{DeckID: id})
	if err != nil {
		log.Error("failed to list deck cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}
