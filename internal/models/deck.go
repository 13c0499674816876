package models

import (
	"regexp"
	"time"
)

// DefaultDeckColor is used when a deck is created without a color.
const DefaultDeckColor = "#7C3AED"

type Deck struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeckUpdate carries the fields of a partial deck update. Nil fields are left alone.
type DeckUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
}

type DeckStats struct {
	DeckID     int64 `json:"deck_id"`
	TotalCards int   `json:"total_cards"`
	CardsDue   int   `json:"cards_due"`
}

var deckColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsValidDeckColor reports whether color is a six digit hex color such as #7C3AED.
func IsValidDeckColor(color string) bool {
	return deckColorPattern.MatchString(color)
}
