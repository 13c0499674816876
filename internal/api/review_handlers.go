package api

import (
	"net/http"
	"time"

	"github.com/vytor/codeflash/internal/errors"
	"github.com/vytor/codeflash/internal/flashcard"
)

type todayCount struct {
	TodayCount int `json:"todayCount"`
}

// parseDay accepts 2006-01-02 or a full RFC 3339 timestamp. Empty means today.
func parseDay(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, raw, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.NewBadRequestError("invalid date: " + raw)
	}
	return t.In(time.Local), nil
}

// handleReviews returns today's review count, or the reviews between
// startDate and endDate when either is given.
func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	startRaw, endRaw := q.Get("startDate"), q.Get("endDate")

	if startRaw == "" && endRaw == "" {
		n, err := s.ReviewService.TodayCount(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondData(w, r, http.StatusOK, todayCount{TodayCount: n})
		return
	}

	start, err := parseDay(startRaw)
	if err != nil {
		handleError(w, r, err)
		return
	}
	end, err := parseDay(endRaw)
	if err != nil {
		handleError(w, r, err)
		return
	}

	reviews, err := s.ReviewService.ReviewsBetween(r.Context(), start, end)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondList(w, r, reviews)
}

func (s *Server) handleCardReviews(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId", "card")
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit, err := queryLimit(r, 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	reviews, err := s.ReviewService.CardReviews(r.Context(), cardID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondList(w, r, reviews)
}

func (s *Server) handleCardReviewStats(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId", "card")
	if err != nil {
		handleError(w, r, err)
		return
	}
	stats, err := s.ReviewService.CardReviewStats(r.Context(), cardID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, stats)
}

func (s *Server) handleReviewOptions(w http.ResponseWriter, r *http.Request) {
	respondList(w, r, flashcard.QualityOptions())
}
