package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

// FormatMissingDaily builds the reminder shown when no daily note exists
// for today. The streak length decides how urgent the phrasing gets.
func FormatMissingDaily(streak int) (string, string) {
	title := "Daily note reminder"
	if streak > 1 {
		return title, fmt.Sprintf("No note for today yet. Your %d-day streak ends at midnight.", streak)
	}
	return title, "No note for today yet. A few lines keep the habit alive."
}
