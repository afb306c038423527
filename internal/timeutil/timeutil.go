package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tasks-cli/internal/errors"
)

// DisplayFormat is the layout used when rendering deadlines to the user.
const DisplayFormat = "2006-01-02 15:04"

var (
	dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeFormat = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// DefaultOffset is the fixed UTC offset under which user-entered deadlines
// are interpreted.
var DefaultOffset = time.FixedZone("+01:00", 3600)

// Unit is a calendar unit accepted by AddToDate.
type Unit int

const (
	UnitMinute Unit = iota
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear
)

// ToUnixTime converts a wall-clock time to seconds since epoch, truncating
// sub-second precision.
func ToUnixTime(t time.Time) int64 {
	return t.Unix()
}

// AddToDate adds amount units to a date and returns the new date. Month and
// year additions use calendar arithmetic with end-of-month clamping, so one
// month after January 31 is the last day of February rather than an
// overflowed March date.
func AddToDate(t time.Time, amount int, unit Unit) time.Time {
	switch unit {
	case UnitMinute:
		return t.Add(time.Duration(amount) * time.Minute)
	case UnitHour:
		return t.Add(time.Duration(amount) * time.Hour)
	case UnitDay:
		return t.AddDate(0, 0, amount)
	case UnitWeek:
		return t.AddDate(0, 0, 7*amount)
	case UnitMonth:
		return addMonths(t, amount)
	case UnitYear:
		return addMonths(t, 12*amount)
	default:
		return t
	}
}

// addMonths advances the calendar month, clamping the day to the length of
// the target month.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	// Normalize to the first of the month so AddDate cannot overflow, then
	// clamp the day back in.
	first := time.Date(year, month, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	shifted := first.AddDate(0, months, 0)
	last := daysInMonth(shifted.Year(), shifted.Month())
	if day > last {
		day = last
	}
	return time.Date(shifted.Year(), shifted.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Combine parses a YYYY-MM-DD date and HH:MM time under the given fixed
// offset and returns Unix seconds. Strings that do not match the fixed digit
// patterns are rejected, as are digit-shaped values that do not form a real
// calendar date (month 13 and the like).
func Combine(dateStr, timeStr string, offset *time.Location) (int64, error) {
	if !dateFormat.MatchString(dateStr) {
		return 0, errors.NewValidationError("Please format the date as YYYY-MM-DD", nil)
	}
	if !timeFormat.MatchString(timeStr) {
		return 0, errors.NewValidationError("Please format the time as HH:MM", nil)
	}

	combined, err := time.ParseInLocation(DisplayFormat, fmt.Sprintf("%s %s", dateStr, timeStr), offset)
	if err != nil {
		return 0, errors.NewValidationError(
			fmt.Sprintf("%s %s is not a valid date and time", dateStr, timeStr), err)
	}
	return ToUnixTime(combined), nil
}

// FormatDateTime renders a time using the fixed display layout.
func FormatDateTime(t time.Time) string {
	return t.Format(DisplayFormat)
}

// Offset is a relative deadline selection: "amount units from now".
type Offset struct {
	Label  string
	Amount int
	Unit   Unit
}

// RelativeOffsets is the fixed ordered set of offsets offered for relative
// deadline entry.
var RelativeOffsets = []Offset{
	{Label: "5m", Amount: 5, Unit: UnitMinute},
	{Label: "10m", Amount: 10, Unit: UnitMinute},
	{Label: "30m", Amount: 30, Unit: UnitMinute},
	{Label: "1h", Amount: 1, Unit: UnitHour},
	{Label: "1d", Amount: 1, Unit: UnitDay},
	{Label: "1w", Amount: 1, Unit: UnitWeek},
	{Label: "1mo", Amount: 1, Unit: UnitMonth},
	{Label: "1y", Amount: 1, Unit: UnitYear},
}

// ParseOffset resolves a relative offset label like "30m" or "1w" to its
// entry in RelativeOffsets.
func ParseOffset(label string) (Offset, bool) {
	needle := strings.ToLower(strings.TrimSpace(label))
	for _, offset := range RelativeOffsets {
		if offset.Label == needle {
			return offset, true
		}
	}
	return Offset{}, false
}

// OffsetLabels returns the accepted relative offset labels in order.
func OffsetLabels() []string {
	labels := make([]string, len(RelativeOffsets))
	for i, offset := range RelativeOffsets {
		labels[i] = offset.Label
	}
	return labels
}

// FixedOffsetMinutes builds a fixed-offset location from a minutes-east value.
func FixedOffsetMinutes(minutes int) *time.Location {
	sign := "+"
	abs := minutes
	if minutes < 0 {
		sign = "-"
		abs = -minutes
	}
	name := fmt.Sprintf("%s%02d:%02d", sign, abs/60, abs%60)
	return time.FixedZone(name, minutes*60)
}
