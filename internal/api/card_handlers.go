package api

import (
	"net/http"

	"github.com/vytor/codeflash/internal/flashcard"
	"github.com/vytor/codeflash/internal/logger"
	"github.com/vytor/codeflash/internal/models"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	deckID, err := queryID(r, "deckId")
	if err != nil {
		handleError(w, r, err)
		return
	}
	filter := models.CardFilter{
		DeckID:   deckID,
		Language: r.URL.Query().Get("language"),
		Search:   r.URL.Query().Get("search"),
	}

	cards, err := s.CardService.ListCards(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondList(w, r, cards)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.CreateCard(r.Context(), models.Card{
		DeckID:   req.DeckID,
		Front:    req.Front,
		Back:     req.Back,
		Language: req.Language,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, card)
}

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	deckID, err := queryID(r, "deckId")
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit, err := queryLimit(r, s.DueLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.CardService.DueCards(r.Context(), deckID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondList(w, r, cards)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "card")
	if err != nil {
		handleError(w, r, err)
		return
	}
	card, err := s.CardService.GetCard(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "card")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req updateCardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.UpdateCard(r.Context(), id, models.CardUpdate{
		DeckID:   req.DeckID,
		Front:    req.Front,
		Back:     req.Back,
		Language: req.Language,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "card")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.CardService.DeleteCard(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	respondMessage(w, r, nil, "Card deleted successfully")
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id, err := pathID(r, "id", "card")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req reviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	quality := flashcard.Quality(*req.Quality)
	log = log.WithFields(map[string]any{"card_id": id, "quality": quality.String()})
	log.Debug("reviewing card")

	card, err := s.CardService.ReviewCard(r.Context(), id, quality, req.TimeTaken)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Info("card reviewed, next review in %s", flashcard.FormatInterval(card.Interval))
	respondMessage(w, r, card, "Card reviewed successfully")
}
