package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/codeflash/internal/errors"
	"github.com/vytor/codeflash/internal/services"
)

type Server struct {
	DB            *sql.DB
	DeckService   services.DeckService
	CardService   services.CardService
	ReviewService services.ReviewService
	// DueLimit caps /api/cards/due when the request has no limit.
	DueLimit int
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name, resource string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewBadRequestError("invalid " + resource + " ID: " + raw)
	}
	return id, nil
}

// queryID parses an optional positive integer query parameter. Absent means 0.
func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewBadRequestError("invalid " + name + ": " + raw)
	}
	return id, nil
}

// queryLimit parses an optional positive limit, falling back to def.
func queryLimit(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.NewBadRequestError("invalid limit: " + raw)
	}
	return n, nil
}
