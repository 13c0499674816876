package api

import (
	"net/http"

	"github.com/vytor/codeflash/internal/logger"
	"github.com/vytor/codeflash/internal/models"
)

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := s.DeckService.ListDecks(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondList(w, r, decks)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req createDeckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.DeckService.CreateDeck(r.Context(), models.Deck{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusCreated, deck)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "deck")
	if err != nil {
		handleError(w, r, err)
		return
	}
	deck, err := s.DeckService.GetDeck(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, deck)
}

func (s *Server) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "deck")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req updateDeckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.DeckService.UpdateDeck(r.Context(), id, models.DeckUpdate{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "deck")
	if err != nil {
		handleError(w, r, err)
		return
	}
	cascade := r.URL.Query().Get("cascade") == "true"
	logger.FromContext(r.Context()).Debug("delete deck requested: id=%d, cascade=%t", id, cascade)

	if err := s.DeckService.DeleteDeck(r.Context(), id, cascade); err != nil {
		handleError(w, r, err)
		return
	}
	respondMessage(w, r, nil, "Deck deleted successfully")
}

func (s *Server) handleDeckStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "deck")
	if err != nil {
		handleError(w, r, err)
		return
	}
	stats, err := s.DeckService.GetDeckStats(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, stats)
}

func (s *Server) handleDeckCards(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "deck")
	if err != nil {
		handleError(w, r, err)
		return
	}
	cards, err := s.DeckService.ListDeckCards(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondList(w, r, cards)
}
