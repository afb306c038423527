package domain

import "strings"

// RecurringIntervals is the fixed ordered enumeration of recurrence cadences.
// A task's recurringInterval field is the zero-based index into this list,
// never the label itself.
var RecurringIntervals = []string{"hourly", "daily", "weekly", "monthly", "yearly"}

// ParseRecurringInterval resolves a cadence label to its zero-based index.
// Matching is case-insensitive. The second return value is false for labels
// outside the enumeration.
func ParseRecurringInterval(label string) (int, bool) {
	needle := strings.ToLower(strings.TrimSpace(label))
	for i, interval := range RecurringIntervals {
		if interval == needle {
			return i, true
		}
	}
	return 0, false
}

// RecurringIntervalLabel returns the cadence label for an index, or the empty
// string for an index outside the enumeration.
func RecurringIntervalLabel(index int) string {
	if index < 0 || index >= len(RecurringIntervals) {
		return ""
	}
	return RecurringIntervals[index]
}
