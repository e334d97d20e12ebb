package render

import (
	"fmt"
	"strings"
	"time"

	"alertdash/internal/view"
)

const notAvailable = "N/A"

const dateDisplayLayout = "Jan 2, 2006, 03:04 PM"

// FormatDate renders a timestamp for display, N/A when absent.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return notAvailable
	}
	return t.Format(dateDisplayLayout)
}

// BugStatusClass maps a bug status onto its badge class.
func BugStatusClass(status *string) string {
	if status == nil {
		return "na"
	}
	switch s := strings.ToLower(*status); s {
	case "new", "fixed", "invalid", "inactive", "duplicate":
		return s
	}
	return "na"
}

// ModeLabel is the human readable name of a view mode.
func ModeLabel(m view.Mode) string {
	switch m {
	case view.ModeWithoutBugs:
		return "Without Bugs"
	case view.ModeGrouped:
		return "Grouped by Summary"
	default:
		return "With Bugs"
	}
}

// Summary is the count line shown above the table.
func Summary(res view.Result) string {
	if res.Mode == view.ModeGrouped {
		groups := len(res.Groups)
		total := res.Total()
		return fmt.Sprintf("Total: %d %s (%d %s)", groups, plural(groups, "group"), total, plural(total, "alert"))
	}
	return fmt.Sprintf("Total Alerts (%s): %d", ModeLabel(res.Mode), len(res.Alerts))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func deref(s *string) string {
	if s == nil {
		return notAvailable
	}
	return *s
}
