package view

import (
	"testing"
	"time"
)

func TestFormatDatePtr(t *testing.T) {
	if got := FormatDatePtr(nil); got != "unspecified" {
		t.Errorf("FormatDatePtr(nil) = %q", got)
	}
	var zero time.Time
	if got := FormatDatePtr(&zero); got != "unspecified" {
		t.Errorf("FormatDatePtr(zero) = %q", got)
	}
	d := time.Date(2025, 8, 27, 10, 0, 0, 0, time.UTC)
	if got := FormatDatePtr(&d); got != "Aug 27, 2025" {
		t.Errorf("FormatDatePtr = %q", got)
	}
}

func TestFormatDay(t *testing.T) {
	if got := FormatDay("2025-08-01"); got != "Aug 1" {
		t.Errorf("FormatDay = %q", got)
	}
	if got := FormatDay("not-a-date"); got != "not-a-date" {
		t.Errorf("unparseable label should pass through, got %q", got)
	}
}
