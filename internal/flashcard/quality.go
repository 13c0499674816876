package flashcard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidQuality is returned for ratings outside Again..Easy.
var ErrInvalidQuality = errors.New("quality must be between 0 and 3")

// Quality is the recall rating a user gives a card.
type Quality int

const (
	Again Quality = iota // Complete failure.
	Hard                 // Difficult recall.
	Good                 // Correct with effort.
	Easy                 // Perfect recall.
)

var qualityNames = [...]string{Again: "Again", Hard: "Hard", Good: "Good", Easy: "Easy"}

// IsValid reports whether q is one of the four ratings.
func (q Quality) IsValid() bool {
	return q >= Again && q <= Easy
}

func (q Quality) String() string {
	if q.IsValid() {
		return qualityNames[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// performance maps a passing rating onto the 0-5 SM-2 scale.
// Easy jumps straight to 5.
func (q Quality) performance() int {
	if q == Easy {
		return 5
	}
	return int(q) + 1
}

// ParseQuality accepts either the numeric value ("2") or the name ("good").
func ParseQuality(s string) (Quality, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		q := Quality(n)
		if !q.IsValid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidQuality, n)
		}
		return q, nil
	}
	for i, name := range qualityNames {
		if strings.EqualFold(name, s) {
			return Quality(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidQuality, s)
}

// QualityOption describes one of the fixed answer buttons.
type QualityOption struct {
	Label       string  `json:"label"`
	Value       Quality `json:"value"`
	Description string  `json:"description"`
}

// QualityOptions returns the four ratings in display order.
func QualityOptions() []QualityOption {
	return []QualityOption{
		{Label: "Again", Value: Again, Description: "Complete failure"},
		{Label: "Hard", Value: Hard, Description: "Difficult recall"},
		{Label: "Good", Value: Good, Description: "Correct with effort"},
		{Label: "Easy", Value: Easy, Description: "Perfect recall"},
	}
}
