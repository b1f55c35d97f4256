package task

import (
	"strings"
	"time"
)

// Display layouts for dates and times in listings.
const (
	displayDateLayout = "Jan 2, 2006"
	displayTimeLayout = "3:04 PM"
)

// FormatWhen renders the task's date and time for display, e.g.
// "Mar 5, 2024 - 9:30 AM". Values that do not parse are shown as stored.
// Returns "" when the task has neither.
func FormatWhen(t Task) string {
	var parts []string

	if t.Date != "" {
		if d, ok := ParseDate(t.Date); ok {
			parts = append(parts, d.Format(displayDateLayout))
		} else {
			parts = append(parts, t.Date)
		}
	}

	if t.Time != "" {
		if tod, ok := ParseTime(t.Time); ok {
			parts = append(parts, time.Time{}.Add(tod).Format(displayTimeLayout))
		} else {
			parts = append(parts, t.Time)
		}
	}

	return strings.Join(parts, " - ")
}
