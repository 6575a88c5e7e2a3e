package offline

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

const tomorrowCount = 3

// Resolver answers trip requests from the canned table.
type Resolver struct {
	table *Table
	clock clock.Clock
}

func NewResolver(t *Table, c clock.Clock) *Resolver {
	return &Resolver{table: t, clock: c}
}

// Resolve returns the remaining services for today, or the first few of
// tomorrow when none remain. When only the reversed route is known its
// departure platform is dropped.
func (r *Resolver) Resolve(route journey.Route) *journey.QueryResult {
	now := r.clock.Now().In(clock.Sydney)
	current := now.Hour()*60 + now.Minute()

	entries, reversed, generic := r.table.Lookup(route.From, route.To)

	var upcoming []Entry
	for _, e := range entries {
		dep, _ := clockMinutes(e.Depart)
		if dep >= current {
			upcoming = append(upcoming, e)
		}
	}

	day := now
	if len(upcoming) == 0 {
		upcoming = entries[:min(tomorrowCount, len(entries))]
		day = now.AddDate(0, 0, 1)
	}

	route.Mode = journey.ModeTrain
	results := make([]journey.Journey, 0, len(upcoming))
	for _, e := range upcoming {
		results = append(results, r.journeyFor(e, route, day, reversed))
	}

	log.Debug().
		Str("from", route.From).
		Str("to", route.To).
		Bool("reversed", reversed).
		Bool("generic", generic).
		Int("journeys", len(results)).
		Msg("Served offline schedule")

	return &journey.QueryResult{
		Route:     route,
		Results:   results,
		Timestamp: r.clock.Now(),
		Source:    journey.SourceOffline,
		Offline:   true,
	}
}

// Trips adapts a Resolver to callers that plan TripRequests. The request
// time is ignored and it never fails.
type Trips struct {
	*Resolver
}

func (t Trips) Resolve(ctx context.Context, req journey.TripRequest) (*journey.QueryResult, error) {
	return t.Resolver.Resolve(req.Route), nil
}

func (r *Resolver) journeyFor(e Entry, route journey.Route, day time.Time, reversed bool) journey.Journey {
	depMin, _ := clockMinutes(e.Depart)
	arrMin, _ := clockMinutes(e.Arrive)

	departure := at(day, depMin)
	arrival := at(day, arrMin)
	if arrival.Before(departure) {
		arrival = arrival.AddDate(0, 0, 1)
	}

	platform := e.Platform
	if reversed {
		platform = ""
	}

	return journey.Journey{
		DepartureTime:   departure,
		ArrivalTime:     arrival,
		DurationMinutes: int(arrival.Sub(departure).Minutes()),
		Legs: []journey.Leg{{
			Mode: journey.ModeTrain,
			Line: r.table.Line,
			Departure: journey.Stop{
				Time:     departure,
				Platform: platform,
				Stop:     route.From,
			},
			Arrival: journey.Stop{
				Time: arrival,
				Stop: route.To,
			},
		}},
	}
}
