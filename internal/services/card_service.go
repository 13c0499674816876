package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/vytor/codeflash/internal/errors"
	"github.com/vytor/codeflash/internal/flashcard"
	"github.com/vytor/codeflash/internal/jobs"
	"github.com/vytor/codeflash/internal/logger"
	"github.com/vytor/codeflash/internal/models"
	"github.com/vytor/codeflash/internal/repository"
)

// CardService handles card-related business logic
type CardService interface {
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	GetCard(ctx context.Context, id int64) (*models.Card, error)
	CreateCard(ctx context.Context, card models.Card) (*models.Card, error)
	UpdateCard(ctx context.Context, id int64, update models.CardUpdate) (*models.Card, error)
	DeleteCard(ctx context.Context, id int64) error
	DueCards(ctx context.Context, deckID int64, limit int) ([]models.Card, error)
	ReviewCard(ctx context.Context, id int64, quality flashcard.Quality, timeTaken *float64) (*models.Card, error)
}

type cardService struct {
	cardRepo repository.CardRepository
	deckRepo repository.DeckRepository
	jobQueue jobs.JobQueue
	now      Clock
}

// NewCardService creates a new CardService
func NewCardService(cardRepo repository.CardRepository, deckRepo repository.DeckRepository, jobQueue jobs.JobQueue, clock Clock) CardService {
	return &cardService{
		cardRepo: cardRepo,
		deckRepo: deckRepo,
		jobQueue: jobQueue,
		now:      clockOrDefault(clock),
	}
}

func (s *cardService) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards: deck_id=%d, language=%s, search=%q", filter.DeckID, filter.Language, filter.Search)

	cards, err := s.cardRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *cardService) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting card: id=%d", id)

	card, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", id)
	}
	return card, nil
}

func (s *cardService) requireDeck(ctx context.Context, deckID int64) error {
	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get deck: %v", err)
		return errors.NewInternalError(err)
	}
	if deck == nil {
		return errors.NewNotFoundError("deck", deckID)
	}
	return nil
}

// CreateCard stores a new card with the default scheduling state, due immediately.
func (s *cardService) CreateCard(ctx context.Context, card models.Card) (*models.Card, error) {
	log := logger.FromContext(ctx)

	if card.DeckID <= 0 {
		return nil, errors.NewValidationError("deck_id", "is required")
	}
	card.Front = strings.TrimSpace(card.Front)
	card.Back = strings.TrimSpace(card.Back)
	card.Language = strings.ToLower(strings.TrimSpace(card.Language))
	switch {
	case card.Front == "":
		return nil, errors.NewValidationError("front", "is required")
	case card.Back == "":
		return nil, errors.NewValidationError("back", "is required")
	case card.Language == "":
		return nil, errors.NewValidationError("language", "is required")
	}
	if err := s.requireDeck(ctx, card.DeckID); err != nil {
		return nil, err
	}

	now := s.now()
	card = card.WithSchedulingState(flashcard.NewSchedulingState(now))
	card.CreatedAt = now
	card.UpdatedAt = now
	card.Version = 1

	id, err := s.cardRepo.Insert(ctx, card)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	card.ID = id
	log.Info("card created: id=%d, deck_id=%d", id, card.DeckID)
	return &card, nil
}

// UpdateCard edits content fields only. Scheduling state is owned by ReviewCard.
func (s *cardService) UpdateCard(ctx context.Context, id int64, update models.CardUpdate) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating card: id=%d", id)

	card, err := s.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Front != nil {
		front := strings.TrimSpace(*update.Front)
		if front == "" {
			return nil, errors.NewValidationError("front", "cannot be empty")
		}
		card.Front = front
	}
	if update.Back != nil {
		back := strings.TrimSpace(*update.Back)
		if back == "" {
			return nil, errors.NewValidationError("back", "cannot be empty")
		}
		card.Back = back
	}
	if update.Language != nil {
		language := strings.ToLower(strings.TrimSpace(*update.Language))
		if language == "" {
			return nil, errors.NewValidationError("language", "cannot be empty")
		}
		card.Language = language
	}
	if update.DeckID != nil && *update.DeckID != card.DeckID {
		if err := s.requireDeck(ctx, *update.DeckID); err != nil {
			return nil, err
		}
		card.DeckID = *update.DeckID
	}
	card.UpdatedAt = s.now()

	if err := s.cardRepo.UpdateContent(ctx, *card); err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%d", id)

	deleted, err := s.cardRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return errors.NewInternalError(err)
	}
	if !deleted {
		return errors.NewNotFoundError("card", id)
	}
	return nil
}

// DueCards returns cards whose next review is at or before now, most overdue
// first. deckID 0 means every deck; limit <= 0 means no limit.
func (s *cardService) DueCards(ctx context.Context, deckID int64, limit int) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	if deckID != 0 {
		if err := s.requireDeck(ctx, deckID); err != nil {
			return nil, err
		}
	}
	cards, err := s.cardRepo.Due(ctx, models.DueFilter{DeckID: deckID, AsOf: s.now(), Limit: limit})
	if err != nil {
		log.Error("failed to get due cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Debug("found %d due cards: deck_id=%d", len(cards), deckID)
	return cards, nil
}

// ReviewCard applies an SM-2 review and persists the new schedule. The
// history entry is queued afterwards; losing it never fails the review.
func (s *cardService) ReviewCard(ctx context.Context, id int64, quality flashcard.Quality, timeTaken *float64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{"card_id": id, "quality": int(quality)})
	log.Debug("reviewing card")

	if !quality.IsValid() {
		return nil, errors.NewInvalidQualityError(flashcard.ErrInvalidQuality)
	}
	if timeTaken != nil && *timeTaken < 0 {
		return nil, errors.NewValidationError("time_taken", "cannot be negative")
	}

	card, err := s.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	next, err := flashcard.ApplyReview(card.SchedulingState(), quality, now)
	if err != nil {
		return nil, errors.NewInvalidQualityError(err)
	}
	updated := card.WithSchedulingState(next)
	updated.UpdatedAt = now

	if err := s.cardRepo.UpdateSchedule(ctx, updated); err != nil {
		if stderrors.Is(err, repository.ErrVersionConflict) {
			return nil, errors.NewConflictError("card was reviewed concurrently, reload and try again", err)
		}
		log.Error("failed to update card schedule: %v", err)
		return nil, errors.NewInternalError(err)
	}
	updated.Version++
	log.Info("card reviewed: interval=%d, repetitions=%d, ease_factor=%.2f",
		updated.Interval, updated.Repetitions, updated.EaseFactor)

	review := models.Review{
		CardID:     updated.ID,
		Quality:    int(quality),
		ReviewedAt: now,
		TimeTaken:  timeTaken,
	}
	if err := s.jobQueue.EnqueueReviewRecord(review); err != nil {
		log.WithError(err).Warn("failed to queue review history")
	}

	return &updated, nil
}
