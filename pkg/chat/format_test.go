package chat

import (
	"testing"
	"time"

	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
)

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{
		0:   "TBA",
		45:  "45min",
		60:  "1h",
		65:  "1h 5min",
		130: "2h 10min",
	}
	for minutes, want := range tests {
		if got := FormatDuration(minutes); got != want {
			t.Errorf("FormatDuration(%d): expected %q, got %q", minutes, want, got)
		}
	}
}

func TestFormatChanges(t *testing.T) {
	tests := map[int]string{0: "Direct", 1: "1 change", 3: "3 changes"}
	for n, want := range tests {
		if got := FormatChanges(n); got != want {
			t.Errorf("FormatChanges(%d): expected %q, got %q", n, want, got)
		}
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(time.Time{}); got != "TBA" {
		t.Errorf("expected TBA for zero time, got %q", got)
	}

	// 03:15 UTC is 14:15 AEDT
	got := FormatTime(time.Date(2026, 2, 25, 3, 15, 0, 0, time.UTC))
	if got != "02:15 pm" {
		t.Errorf("expected Sydney 12-hour time, got %q", got)
	}

	got = FormatTime(time.Date(2026, 7, 1, 9, 5, 0, 0, clock.Sydney))
	if got != "09:05 am" {
		t.Errorf("expected 09:05 am, got %q", got)
	}
}
