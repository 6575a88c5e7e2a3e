package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

// MaxListed caps how many journeys a summary lists.
const MaxListed = 5

// FormatTime renders a time as a Sydney 12-hour clock, or TBA when unknown.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "TBA"
	}
	return t.In(clock.Sydney).Format("03:04 pm")
}

// FormatDuration renders minutes as "45min", "2h" or "1h 5min".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "TBA"
	}
	hours, mins := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dmin", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dmin", hours, mins)
}

// FormatChanges renders a change count as "Direct", "1 change" or "N changes".
func FormatChanges(n int) string {
	switch {
	case n <= 0:
		return "Direct"
	case n == 1:
		return "1 change"
	}
	return fmt.Sprintf("%d changes", n)
}

// Platform returns the departure platform of a journey's first leg, or TBA.
func Platform(j journey.Journey) string {
	if len(j.Legs) == 0 || j.Legs[0].Departure.Platform == "" {
		return "TBA"
	}
	return j.Legs[0].Departure.Platform
}

// Line returns the service name of a journey's first leg.
func Line(j journey.Journey) string {
	if len(j.Legs) == 0 {
		return journey.GenericCarrier
	}
	return j.Legs[0].Line
}

// Summary renders up to MaxListed journeys of a result as chat text.
func Summary(res *journey.QueryResult) string {
	listed := res.Results
	if len(listed) > MaxListed {
		listed = listed[:MaxListed]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚂 Next %d %s services from %s to %s:\n\n", len(listed), res.Mode, res.From, res.To)

	for i, j := range listed {
		if i > 0 {
			b.WriteString("\n\n")
		}
		quickest := ""
		if j.IsQuickest {
			quickest = " ⚡ QUICKEST"
		}
		fmt.Fprintf(&b, "%d. %s → %s%s\n", i+1, FormatTime(j.DepartureTime), FormatTime(j.ArrivalTime), quickest)
		fmt.Fprintf(&b, "   Duration: %s | %s\n", FormatDuration(j.DurationMinutes), FormatChanges(j.ChangeCount))
		fmt.Fprintf(&b, "   %s from Platform %s", Line(j), Platform(j))
	}

	if res.Offline {
		b.WriteString("\n\n(Offline timetable. Times may differ from live services.)")
	}
	return b.String()
}
