package flashcard

import (
	"fmt"
	"math"
)

// FormatInterval renders an interval in days for display.
func FormatInterval(days int) string {
	switch {
	case days <= 0:
		return "New"
	case days == 1:
		return "1 day"
	case days < 30:
		return fmt.Sprintf("%d days", days)
	case days < 365:
		return fmt.Sprintf("%d months", int(math.Round(float64(days)/30)))
	default:
		return fmt.Sprintf("%d years", int(math.Round(float64(days)/365)))
	}
}
