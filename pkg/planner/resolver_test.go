package planner

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
	"github.com/thesumanshah/tfnsw-assistant/pkg/stations"
	"github.com/thesumanshah/tfnsw-assistant/pkg/tfnsw"
)

type fakeTrips struct {
	calls   int
	last    tfnsw.TripQuery
	results []journey.Itinerary
	err     error
}

func (f *fakeTrips) FetchTrips(ctx context.Context, q tfnsw.TripQuery) ([]journey.Itinerary, error) {
	f.calls++
	f.last = q
	return f.results, f.err
}

var now = time.Date(2026, 2, 25, 8, 0, 0, 0, clock.Sydney)

func newTestResolver(trips TripFetcher) *Resolver {
	return NewResolver(stations.Default(), trips, clock.NewMockClock(now))
}

func trainItinerary(dep, arr string) journey.Itinerary {
	return journey.Itinerary{
		"legs": []any{
			map[string]any{
				"transportation": map[string]any{"product": map[string]any{"class": float64(1), "name": "T1 North Shore & Western Line"}},
				"origin":         map[string]any{"departureTimePlanned": dep, "platform": "16"},
				"destination":    map[string]any{"arrivalTimePlanned": arr},
			},
		},
	}
}

func TestResolve_InvalidStationSkipsNetwork(t *testing.T) {
	trips := &fakeTrips{}
	r := newTestResolver(trips)

	_, err := r.Resolve(context.Background(), journey.TripRequest{
		Route: journey.Route{From: "Nonexistent Place", To: "Parramatta", Mode: journey.ModeTrain},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidStation))

	var invalid *InvalidStationError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "Nonexistent Place", invalid.Name)
	assert.Zero(t, trips.calls)
}

func TestResolve_Success(t *testing.T) {
	trips := &fakeTrips{results: []journey.Itinerary{
		trainItinerary("2026-02-24T21:05:00Z", "2026-02-24T21:35:00Z"),
		trainItinerary("2026-02-24T21:20:00Z", "2026-02-24T21:50:00Z"),
	}}
	r := newTestResolver(trips)

	res, err := r.Resolve(context.Background(), journey.TripRequest{
		Route: journey.Route{From: "central station", To: "Parramatta", Mode: journey.ModeTrain},
	})
	require.NoError(t, err)

	assert.Equal(t, journey.SourceTripPlanner, res.Source)
	assert.Len(t, res.Results, 2)
	assert.True(t, res.Results[0].IsQuickest)
	assert.False(t, res.Results[1].IsQuickest)
	assert.Equal(t, "16", res.Results[0].Legs[0].Departure.Platform)
	assert.Equal(t, now, trips.last.When)
	assert.Equal(t, "Central", trips.last.Origin.Name)
}

func TestResolve_UsesRequestedTime(t *testing.T) {
	trips := &fakeTrips{}
	r := newTestResolver(trips)
	when := now.Add(3 * time.Hour)

	_, err := r.Resolve(context.Background(), journey.TripRequest{
		Route:    journey.Route{From: "Central", To: "Chatswood", Mode: journey.ModeTrain},
		Datetime: when,
	})
	require.NoError(t, err)
	assert.Equal(t, when, trips.last.When)
}

func TestResolve_EmptyIsNotAnError(t *testing.T) {
	trips := &fakeTrips{results: []journey.Itinerary{{"legs": []any{}}}}
	r := newTestResolver(trips)

	res, err := r.Resolve(context.Background(), journey.TripRequest{
		Route: journey.Route{From: "Central", To: "Parramatta", Mode: journey.ModeTrain},
	})
	require.NoError(t, err)

	assert.True(t, res.Empty())
	assert.Equal(t, journey.SourceTripPlannerEmpty, res.Source)
	assert.Equal(t, EmptyMessage, res.Message)
}

func TestResolve_UpstreamStatus(t *testing.T) {
	trips := &fakeTrips{err: &tfnsw.StatusError{StatusCode: http.StatusForbidden}}
	r := newTestResolver(trips)

	_, err := r.Resolve(context.Background(), journey.TripRequest{
		Route: journey.Route{From: "Central", To: "Parramatta", Mode: journey.ModeTrain},
	})

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusForbidden, upstream.Status)
	assert.False(t, errors.Is(err, ErrInvalidStation))
}

func TestResolve_MissingAPIKey(t *testing.T) {
	r := newTestResolver(tfnsw.NewClient(""))

	_, err := r.Resolve(context.Background(), journey.TripRequest{
		Route: journey.Route{From: "Central", To: "Parramatta", Mode: journey.ModeTrain},
	})

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Zero(t, upstream.Status)
	assert.ErrorIs(t, err, tfnsw.ErrMissingAPIKey)
}
