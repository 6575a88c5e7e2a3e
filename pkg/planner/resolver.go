package planner

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
	"github.com/thesumanshah/tfnsw-assistant/pkg/stations"
	"github.com/thesumanshah/tfnsw-assistant/pkg/tfnsw"
)

// EmptyMessage accompanies a successful query without usable journeys.
const EmptyMessage = "No journey options found for this route at this time"

// TripFetcher is the upstream trip planner.
type TripFetcher interface {
	FetchTrips(ctx context.Context, q tfnsw.TripQuery) ([]journey.Itinerary, error)
}

// Resolver turns trip requests into normalized journeys.
type Resolver struct {
	gazetteer *stations.Gazetteer
	trips     TripFetcher
	clock     clock.Clock
}

func NewResolver(g *stations.Gazetteer, trips TripFetcher, c clock.Clock) *Resolver {
	return &Resolver{gazetteer: g, trips: trips, clock: c}
}

// Gazetteer exposes the station list the resolver validates against.
func (r *Resolver) Gazetteer() *stations.Gazetteer {
	return r.gazetteer
}

// Resolve validates both stations, queries the trip planner and normalizes
// the answer. Station validation happens before any network I/O. An empty
// result is returned as a QueryResult, never as an error.
func (r *Resolver) Resolve(ctx context.Context, req journey.TripRequest) (*journey.QueryResult, error) {
	from, ok := r.gazetteer.Lookup(req.From)
	if !ok {
		return nil, &InvalidStationError{Name: req.From}
	}
	to, ok := r.gazetteer.Lookup(req.To)
	if !ok {
		return nil, &InvalidStationError{Name: req.To}
	}

	if !req.Mode.Valid() {
		req.Mode = journey.ModeTrain
	}

	when := req.Datetime
	if when.IsZero() {
		when = r.clock.Now()
	}

	raw, err := r.trips.FetchTrips(ctx, tfnsw.TripQuery{Origin: from, Destination: to, When: when})
	if err != nil {
		log.Error().Err(err).Str("from", req.From).Str("to", req.To).Msg("Trip planner request failed")
		return nil, upstreamError(err)
	}

	journeys := journey.NormalizeAll(raw, req.Route)
	result := &journey.QueryResult{
		Route:     req.Route,
		Results:   journeys,
		Timestamp: r.clock.Now(),
		Source:    journey.SourceTripPlanner,
	}

	if len(journeys) == 0 {
		result.Source = journey.SourceTripPlannerEmpty
		result.Message = EmptyMessage
	}

	log.Info().
		Str("from", req.From).
		Str("to", req.To).
		Int("itineraries", len(raw)).
		Int("journeys", len(journeys)).
		Msg("Resolved trip request")

	return result, nil
}

func upstreamError(err error) *UpstreamError {
	if errors.Is(err, tfnsw.ErrMissingAPIKey) {
		return &UpstreamError{Message: "TfNSW API key not configured", Err: err}
	}

	var statusErr *tfnsw.StatusError
	if errors.As(err, &statusErr) {
		return &UpstreamError{Message: "Unable to fetch real-time journey information", Status: statusErr.StatusCode, Err: err}
	}

	return &UpstreamError{Message: "Unable to fetch real-time journey information", Err: err}
}
