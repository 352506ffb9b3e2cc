package view

import "time"

// FormatDate renders a calendar date for display.
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatDatePtr renders an optional date; nil or zero is "unspecified".
func FormatDatePtr(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Unspecified
	}
	return FormatDate(*t)
}

// FormatDay renders a YYYY-MM-DD timeline label as a short date; an
// unparseable label is shown as-is.
func FormatDay(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return t.Format("Jan 2")
}
