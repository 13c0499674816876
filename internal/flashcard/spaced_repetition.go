package flashcard

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultEaseFactor is the ease factor given to a newly created card.
	DefaultEaseFactor = 2.5
	// MinEaseFactor is the floor applied after every ease factor update.
	MinEaseFactor = 1.3

	// Successful reviews 1 and 2 use fixed learning steps.
	firstInterval  = 1
	secondInterval = 6
)

// SchedulingState is the part of a card the scheduler reads and rewrites.
// It is always replaced as a whole, never patched field by field.
type SchedulingState struct {
	EaseFactor   float64    `json:"ease_factor"`
	Interval     int        `json:"interval"`
	Repetitions  int        `json:"repetitions"`
	NextReview   time.Time  `json:"next_review"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
}

// NewSchedulingState returns the state of a card created at now.
// The card is due immediately.
func NewSchedulingState(now time.Time) SchedulingState {
	return SchedulingState{
		EaseFactor:  DefaultEaseFactor,
		Interval:    0,
		Repetitions: 0,
		NextReview:  now,
	}
}

// ApplyReview updates scheduling using SM-2.
// quality: 0=Again, 1=Hard, 2=Good, 3=Easy
//
// Again and Hard reset repetitions and interval and leave the ease factor
// alone. Good is scored as 3 and Easy as 5 on the SM-2 scale. Intervals
// past the second repetition are round(previous interval * new ease),
// rounding half away from zero.
func ApplyReview(state SchedulingState, quality Quality, now time.Time) (SchedulingState, error) {
	if !quality.IsValid() {
		return SchedulingState{}, fmt.Errorf("%w: %d", ErrInvalidQuality, int(quality))
	}

	ef := state.EaseFactor
	interval := state.Interval
	reps := state.Repetitions

	if quality < Good {
		reps = 0
		interval = 0
	} else {
		ef = nextEaseFactor(ef, quality.performance())
		reps++
		switch reps {
		case 1:
			interval = firstInterval
		case 2:
			interval = secondInterval
		default:
			interval = int(math.Round(float64(state.Interval) * ef))
		}
	}

	reviewed := now
	return SchedulingState{
		EaseFactor:   ef,
		Interval:     interval,
		Repetitions:  reps,
		NextReview:   now.AddDate(0, 0, interval),
		LastReviewed: &reviewed,
	}, nil
}

// ApplyReviewNow is ApplyReview at the current wall-clock time.
func ApplyReviewNow(state SchedulingState, quality Quality) (SchedulingState, error) {
	return ApplyReview(state, quality, time.Now())
}

// IsDue reports whether the card is due as of asOf. A card whose next
// review is exactly asOf is due.
func IsDue(state SchedulingState, asOf time.Time) bool {
	return !state.NextReview.After(asOf)
}

// IsDueNow is IsDue at the current wall-clock time.
func IsDueNow(state SchedulingState) bool {
	return IsDue(state, time.Now())
}

func nextEaseFactor(ef float64, r int) float64 {
	d := float64(5 - r)
	ef = ef + (0.1 - d*(0.08+d*0.02))
	if ef < MinEaseFactor {
		ef = MinEaseFactor
	}
	return ef
}

// Regime names the two phases a card moves through.
type Regime string

const (
	// Learning cards advance through the fixed 1 and 6 day steps.
	Learning Regime = "learning"
	// Reviewing cards grow their interval by the ease factor.
	Reviewing Regime = "reviewing"
)

// RegimeOf returns the phase the card is in.
func RegimeOf(state SchedulingState) Regime {
	if state.Repetitions < 3 {
		return Learning
	}
	return Reviewing
}
