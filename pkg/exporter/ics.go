package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/thesumanshah/tfnsw-assistant/pkg/chat"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

// GenerateICS writes one calendar event per journey in results. Journeys
// without both times are skipped. stamp is used for the created, stamp and
// modified properties.
func GenerateICS(results []*journey.QueryResult, stamp time.Time, w io.Writer) (int, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//tfnsw-assistant//journeys//EN")

	count := 0
	for _, res := range results {
		if res.Empty() {
			continue
		}

		for i, j := range res.Results {
			if j.DepartureTime.IsZero() || j.ArrivalTime.IsZero() {
				continue
			}

			uid := fmt.Sprintf("%s-%s-%d", j.DepartureTime.UTC().Format("20060102T150405Z"), eventSlug(res.Route), i)
			event := cal.AddEvent(uid)
			event.SetCreatedTime(stamp)
			event.SetDtStampTime(stamp)
			event.SetModifiedAt(stamp)
			event.SetStartAt(j.DepartureTime)
			event.SetEndAt(j.ArrivalTime)
			event.SetSummary(fmt.Sprintf("%s %s to %s", modeTitle(res.Mode), res.From, res.To))
			event.SetLocation(fmt.Sprintf("%s (Platform %s)", res.From, chat.Platform(j)))
			event.SetDescription(describe(j, res))
			count++
		}
	}

	return count, cal.SerializeTo(w)
}

func describe(j journey.Journey, res *journey.QueryResult) string {
	lines := []string{
		fmt.Sprintf("Line: %s", chat.Line(j)),
		fmt.Sprintf("Duration: %s", chat.FormatDuration(j.DurationMinutes)),
		chat.FormatChanges(j.ChangeCount),
	}
	if res.Offline {
		lines = append(lines, "Times are from the offline timetable.")
	}
	return strings.Join(lines, "\n")
}

func eventSlug(r journey.Route) string {
	slug := fmt.Sprintf("%s-%s-%s", r.From, r.To, r.Mode)
	return strings.ReplaceAll(strings.ToLower(slug), " ", "-")
}

func modeTitle(m journey.Mode) string {
	if m == "" {
		return "Train"
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}
