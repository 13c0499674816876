package models

import (
	"time"

	"github.com/vytor/codeflash/internal/flashcard"
)

type Card struct {
	ID           int64      `json:"id"`
	DeckID       int64      `json:"deck_id"`
	Front        string     `json:"front"`
	Back         string     `json:"back"`
	Language     string     `json:"language"`
	EaseFactor   float64    `json:"ease_factor"`
	Interval     int        `json:"interval"`
	Repetitions  int        `json:"repetitions"`
	NextReview   time.Time  `json:"next_review"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	Version      int64      `json:"version"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SchedulingState extracts the fields owned by the scheduler.
func (c Card) SchedulingState() flashcard.SchedulingState {
	return flashcard.SchedulingState{
		EaseFactor:   c.EaseFactor,
		Interval:     c.Interval,
		Repetitions:  c.Repetitions,
		NextReview:   c.NextReview,
		LastReviewed: c.LastReviewed,
	}
}

// WithSchedulingState returns a copy of c with every scheduling field replaced.
func (c Card) WithSchedulingState(s flashcard.SchedulingState) Card {
	c.EaseFactor = s.EaseFactor
	c.Interval = s.Interval
	c.Repetitions = s.Repetitions
	c.NextReview = s.NextReview
	c.LastReviewed = s.LastReviewed
	return c
}

// CardUpdate carries the content fields of a partial card update.
type CardUpdate struct {
	DeckID   *int64
	Front    *string
	Back     *string
	Language *string
}

type CardFilter struct {
	DeckID   int64
	Language string
	Search   string
}

type DueFilter struct {
	DeckID int64
	AsOf   time.Time
	Limit  int
}
