package api_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/codeflash/internal/api"
	"github.com/vytor/codeflash/internal/jobs"
	"github.com/vytor/codeflash/internal/repository/sqlite"
	"github.com/vytor/codeflash/internal/services"
	"github.com/vytor/codeflash/internal/testutil"
)

type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type APISuite struct {
	suite.Suite
	db      *sql.DB
	handler http.Handler
}

func (s *APISuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())

	deckRepo := sqlite.NewDeckRepository(s.db)
	cardRepo := sqlite.NewCardRepository(s.db)
	reviewRepo := sqlite.NewReviewRepository(s.db)

	server := &api.Server{
		DB:            s.db,
		DeckService:   services.NewDeckService(deckRepo, cardRepo, nil),
		CardService:   services.NewCardService(cardRepo, deckRepo, jobs.NewInlineQueue(reviewRepo), nil),
		ReviewService: services.NewReviewService(reviewRepo, cardRepo, nil),
		DueLimit:      50,
	}
	s.handler = server.Routes()
}

func (s *APISuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *APISuite) do(method, path string, body any) (*httptest.ResponseRecorder, response) {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			s.Require().NoError(json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var resp response
	if rec.Header().Get("Content-Type") == "application/json" {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func (s *APISuite) createDeck(name string) int64 {
	rec, resp := s.do(http.MethodPost, "/api/decks", map[string]any{"name": name})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var deck struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(resp.Data, &deck))
	return deck.ID
}

func (s *APISuite) createCard(deckID int64, front string) int64 {
	rec, resp := s.do(http.MethodPost, "/api/cards", map[string]any{
		"deck_id":  deckID,
		"front":    front,
		"back":     "answer",
		"language": "Go",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var card struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(resp.Data, &card))
	return card.ID
}

func (s *APISuite) TestHealthAndReady() {
	rec, _ := s.do(http.MethodGet, "/health", nil)
	s.Assert().Equal(http.StatusOK, rec.Code)
	s.Assert().Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))
	s.Assert().NotEmpty(rec.Header().Get("X-Request-ID"))

	rec, _ = s.do(http.MethodGet, "/ready", nil)
	s.Assert().Equal(http.StatusOK, rec.Code)

	s.Require().NoError(s.db.Close())
	rec, _ = s.do(http.MethodGet, "/ready", nil)
	s.Assert().Equal(http.StatusServiceUnavailable, rec.Code)
	s.db = testutil.NewTestDB(s.T())
}

func (s *APISuite) TestDeckLifecycle() {
	deckID := s.createDeck("Go")

	rec, resp := s.do(http.MethodGet, "/api/decks", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NotNil(resp.Count)
	s.Assert().Equal(1, *resp.Count)

	rec, resp = s.do(http.MethodPut, fmt.Sprintf("/api/decks/%d", deckID), map[string]any{"color": "#123ABC"})
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Contains(string(resp.Data), `"color":"#123ABC"`)

	s.createCard(deckID, "q1")

	rec, resp = s.do(http.MethodDelete, fmt.Sprintf("/api/decks/%d", deckID), nil)
	s.Assert().Equal(http.StatusConflict, rec.Code)
	s.Assert().Equal("CONFLICT", resp.Error.Code)

	rec, resp = s.do(http.MethodDelete, fmt.Sprintf("/api/decks/%d?cascade=true", deckID), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Equal("Deck deleted successfully", resp.Message)

	rec, resp = s.do(http.MethodGet, fmt.Sprintf("/api/decks/%d", deckID), nil)
	s.Assert().Equal(http.StatusNotFound, rec.Code)
	s.Assert().False(resp.Success)
}

func (s *APISuite) TestCreateDeck_Validation() {
	rec, resp := s.do(http.MethodPost, "/api/decks", map[string]any{"name": "Go", "color": "blue"})
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Require().NotNil(resp.Error)
	s.Assert().Equal("VALIDATION_ERROR", resp.Error.Code)
	s.Assert().Contains(resp.Error.Message, "color")

	rec, resp = s.do(http.MethodPost, "/api/decks", `{"name":`)
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Equal("BAD_REQUEST", resp.Error.Code)
}

func (s *APISuite) TestReviewFlow() {
	deckID := s.createDeck("Go")
	cardID := s.createCard(deckID, "What does range over a channel do?")

	rec, resp := s.do(http.MethodGet, fmt.Sprintf("/api/cards/due?deckId=%d", deckID), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Equal(1, *resp.Count, "new cards are due")

	rec, resp = s.do(http.MethodPost, fmt.Sprintf("/api/cards/%d/review", cardID), map[string]any{"quality": 3, "time_taken": 4.2})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Assert().Equal("Card reviewed successfully", resp.Message)

	var card struct {
		Interval    int     `json:"interval"`
		Repetitions int     `json:"repetitions"`
		EaseFactor  float64 `json:"ease_factor"`
		Language    string  `json:"language"`
	}
	s.Require().NoError(json.Unmarshal(resp.Data, &card))
	s.Assert().Equal(1, card.Interval)
	s.Assert().Equal(1, card.Repetitions)
	s.Assert().InDelta(2.6, card.EaseFactor, 1e-9)
	s.Assert().Equal("go", card.Language)

	rec, resp = s.do(http.MethodGet, "/api/cards/due", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Equal(0, *resp.Count)

	rec, resp = s.do(http.MethodGet, fmt.Sprintf("/api/reviews/cards/%d", cardID), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Equal(1, *resp.Count)

	rec, resp = s.do(http.MethodGet, fmt.Sprintf("/api/reviews/cards/%d/stats", cardID), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Contains(string(resp.Data), `"total_reviews":1`)
	s.Assert().Contains(string(resp.Data), `"average_time":4.2`)

	rec, resp = s.do(http.MethodGet, "/api/reviews", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().JSONEq(`{"todayCount":1}`, string(resp.Data))

	today := time.Now().Format(time.DateOnly)
	rec, resp = s.do(http.MethodGet, "/api/reviews?startDate="+today+"&endDate="+today, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Equal(1, *resp.Count)
}

func (s *APISuite) TestReviewCard_Errors() {
	deckID := s.createDeck("Go")
	cardID := s.createCard(deckID, "q")

	rec, resp := s.do(http.MethodPost, fmt.Sprintf("/api/cards/%d/review", cardID), map[string]any{"quality": 4})
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Equal("INVALID_QUALITY", resp.Error.Code)

	rec, resp = s.do(http.MethodPost, fmt.Sprintf("/api/cards/%d/review", cardID), map[string]any{})
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Equal("VALIDATION_ERROR", resp.Error.Code)

	rec, _ = s.do(http.MethodPost, "/api/cards/999/review", map[string]any{"quality": 2})
	s.Assert().Equal(http.StatusNotFound, rec.Code)

	rec, resp = s.do(http.MethodPost, "/api/cards/abc/review", map[string]any{"quality": 2})
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Equal("BAD_REQUEST", resp.Error.Code)
}

func (s *APISuite) TestCardFiltersAndUpdate() {
	deckID := s.createDeck("Go")
	cardID := s.createCard(deckID, "goroutines")
	s.createCard(deckID, "maps")

	rec, resp := s.do(http.MethodGet, "/api/cards?search=gorout&language=go", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Equal(1, *resp.Count)

	rec, resp = s.do(http.MethodPut, fmt.Sprintf("/api/cards/%d", cardID), map[string]any{"back": "lightweight threads"})
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Contains(string(resp.Data), "lightweight threads")

	rec, resp = s.do(http.MethodGet, fmt.Sprintf("/api/decks/%d/cards", deckID), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Equal(2, *resp.Count)

	rec, resp = s.do(http.MethodGet, fmt.Sprintf("/api/decks/%d/stats", deckID), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Contains(string(resp.Data), `"cards_due":2`)

	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/cards/%d", cardID), nil)
	s.Assert().Equal(http.StatusOK, rec.Code)
	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/cards/%d", cardID), nil)
	s.Assert().Equal(http.StatusNotFound, rec.Code)
}

func (s *APISuite) TestReviewOptions() {
	rec, resp := s.do(http.MethodGet, "/api/review-options", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Equal(4, *resp.Count)
	s.Assert().Contains(string(resp.Data), `"label":"Again","value":0`)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func TestDueCards_InvalidLimit(t *testing.T) {
	server := &api.Server{}
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cards/due?limit=-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid limit")
}
