package exporter

import (
	"context"
	"errors"
	"testing"

	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
	"github.com/thesumanshah/tfnsw-assistant/pkg/planner"
)

type routeResolver map[string]error

func (r routeResolver) Resolve(ctx context.Context, req journey.TripRequest) (*journey.QueryResult, error) {
	if err := r[req.From]; err != nil {
		return nil, err
	}
	return &journey.QueryResult{Route: req.Route, Source: journey.SourceTripPlanner}, nil
}

func TestCollectJourneys_SkipsFailures(t *testing.T) {
	r := routeResolver{"Atlantis": &planner.InvalidStationError{Name: "Atlantis"}}
	routes := []journey.Route{
		{From: "Central", To: "Redfern", Mode: journey.ModeTrain},
		{From: "Atlantis", To: "Redfern", Mode: journey.ModeTrain},
	}

	results, err := CollectJourneys(context.Background(), r, routes)
	if err != nil {
		t.Fatalf("expected partial success, got %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].From != "Central" {
		t.Errorf("expected Central result, got %q", results[0].From)
	}
}

func TestCollectJourneys_AllFail(t *testing.T) {
	r := routeResolver{"Atlantis": &planner.InvalidStationError{Name: "Atlantis"}}

	_, err := CollectJourneys(context.Background(), r, []journey.Route{{From: "Atlantis", To: "Redfern"}})
	if !errors.Is(err, planner.ErrInvalidStation) {
		t.Errorf("expected ErrInvalidStation, got %v", err)
	}
}

func TestCollectJourneys_NoRoutes(t *testing.T) {
	results, err := CollectJourneys(context.Background(), routeResolver{}, nil)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
