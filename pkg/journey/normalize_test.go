package journey

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func decodeItineraries(t *testing.T, raw string) []Itinerary {
	t.Helper()
	var payload struct {
		Journeys []Itinerary `json:"journeys"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return payload.Journeys
}

var centralToParramatta = Route{From: "Central", To: "Parramatta", Mode: ModeTrain}

func TestNormalize_WalkTrainWalk(t *testing.T) {
	// Walking legs around a single train ride, platform only on the stop sequence
	mockJSON := `{
		"journeys": [
			{
				"legs": [
					{
						"transportation": {"product": {"class": 100, "name": "footpath"}},
						"origin": {"departureTimePlanned": "2026-02-25T07:50:00Z"},
						"destination": {"arrivalTimePlanned": "2026-02-25T07:55:00Z"}
					},
					{
						"transportation": {"product": {"class": 1, "name": "Sydney Trains Network"}, "disassembledName": "T1"},
						"origin": {
							"name": "Central Station, Platform 16, Sydney",
							"departureTimePlanned": "2026-02-25T08:00:00Z",
							"departureTimeEstimated": "2026-02-25T08:02:00Z"
						},
						"destination": {
							"name": "Parramatta Station, Platform 3, Parramatta",
							"arrivalTimePlanned": "2026-02-25T08:30:00Z",
							"properties": {"platform": "PR3"}
						},
						"stopSequence": [{"platform": "Platform 16"}, {"platform": "7"}]
					},
					{
						"transportation": {"product": {"class": 100}},
						"origin": {"departureTimePlanned": "2026-02-25T08:31:00Z"},
						"destination": {"arrivalTimePlanned": "2026-02-25T08:40:00Z"}
					}
				]
			}
		]
	}`

	journeys := NormalizeAll(decodeItineraries(t, mockJSON), centralToParramatta)
	if len(journeys) != 1 {
		t.Fatalf("expected 1 journey, got %d", len(journeys))
	}

	j := journeys[0]
	wantDep := time.Date(2026, 2, 25, 8, 2, 0, 0, time.UTC)
	wantArr := time.Date(2026, 2, 25, 8, 30, 0, 0, time.UTC)

	if !j.DepartureTime.Equal(wantDep) {
		t.Errorf("expected estimated departure %v, got %v", wantDep, j.DepartureTime)
	}
	if !j.ArrivalTime.Equal(wantArr) {
		t.Errorf("expected planned arrival %v, got %v", wantArr, j.ArrivalTime)
	}
	if j.DurationMinutes != 28 {
		t.Errorf("expected 28 minutes, got %d", j.DurationMinutes)
	}
	if j.ChangeCount != 0 {
		t.Errorf("expected direct journey, got %d changes", j.ChangeCount)
	}
	if !j.IsQuickest {
		t.Errorf("expected first itinerary to be quickest")
	}
	if len(j.Legs) != 1 {
		t.Fatalf("expected walking legs to be dropped, got %d legs", len(j.Legs))
	}

	leg := j.Legs[0]
	if leg.Line != GenericCarrier {
		t.Errorf("expected network name replaced by %q, got %q", GenericCarrier, leg.Line)
	}
	if leg.Departure.Platform != "16" {
		t.Errorf("expected departure platform 16, got %q", leg.Departure.Platform)
	}
	if leg.Arrival.Platform != "3" {
		t.Errorf("expected arrival platform 3, got %q", leg.Arrival.Platform)
	}
	if leg.Departure.Stop != "Central" || leg.Arrival.Stop != "Parramatta" {
		t.Errorf("expected request stations on the outer stops, got %q -> %q", leg.Departure.Stop, leg.Arrival.Stop)
	}
}

func TestNormalize_NoTransportLegs(t *testing.T) {
	it := Itinerary{
		"legs": []any{
			map[string]any{
				"transportation": map[string]any{"product": map[string]any{"class": float64(100), "name": "footpath"}},
				"origin":         map[string]any{"departureTimePlanned": "2026-02-25T08:00:00Z"},
				"destination":    map[string]any{"arrivalTimePlanned": "2026-02-25T08:20:00Z"},
			},
			map[string]any{
				"transportation": map[string]any{"product": map[string]any{"class": float64(5), "name": "Bus 400"}},
				"origin":         map[string]any{"departureTimePlanned": "2026-02-25T08:20:00Z"},
				"destination":    map[string]any{"arrivalTimePlanned": "2026-02-25T08:50:00Z"},
			},
		},
	}

	if _, ok := Normalize(it, centralToParramatta, 0); ok {
		t.Errorf("expected itinerary without train legs to be dropped")
	}
	if _, ok := Normalize(Itinerary{}, centralToParramatta, 0); ok {
		t.Errorf("expected itinerary without legs to be dropped")
	}
}

func TestNormalize_MissingTimes(t *testing.T) {
	it := Itinerary{
		"legs": []any{
			map[string]any{
				"transportation": map[string]any{"description": "Sydney Trains Network"},
				"origin":         map[string]any{"departureTimePlanned": "2026-02-25T08:00:00Z"},
				"destination":    map[string]any{"name": "Parramatta"},
			},
		},
	}

	if _, ok := Normalize(it, centralToParramatta, 0); ok {
		t.Errorf("expected itinerary without arrival time to be dropped")
	}
}

func TestNormalize_ArrivalBeforeDeparture(t *testing.T) {
	it := trainItinerary(1, "2026-02-25T09:00:00Z", "2026-02-25T08:00:00Z")
	if _, ok := Normalize(it, centralToParramatta, 0); ok {
		t.Errorf("expected itinerary arriving before it departs to be dropped")
	}
}

func TestNormalize_ChangeCount(t *testing.T) {
	for legs := 1; legs <= 4; legs++ {
		it := trainItinerary(legs, "2026-02-25T08:00:00Z", "2026-02-25T09:00:00Z")
		j, ok := Normalize(it, centralToParramatta, 0)
		if !ok {
			t.Fatalf("expected %d-leg itinerary to normalize", legs)
		}
		if j.ChangeCount != legs-1 {
			t.Errorf("expected %d changes for %d legs, got %d", legs-1, legs, j.ChangeCount)
		}
		if len(j.Legs) != legs {
			t.Errorf("expected %d canonical legs, got %d", legs, len(j.Legs))
		}
	}
}

func TestNormalizeAll_QuickestIsFirst(t *testing.T) {
	var raw []Itinerary
	for i := 0; i < 7; i++ {
		dep := fmt.Sprintf("2026-02-25T08:%02d:00Z", i*5)
		arr := fmt.Sprintf("2026-02-25T09:%02d:00Z", i*5)
		raw = append(raw, trainItinerary(1, dep, arr))
	}

	journeys := NormalizeAll(raw, centralToParramatta)
	if len(journeys) != MaxItineraries {
		t.Fatalf("expected %d journeys, got %d", MaxItineraries, len(journeys))
	}
	for i, j := range journeys {
		if j.IsQuickest != (i == 0) {
			t.Errorf("journey %d: expected isQuickest=%v", i, i == 0)
		}
	}
}

func TestNormalizeAll_DroppedFirstKeepsNoQuickest(t *testing.T) {
	raw := []Itinerary{
		{"legs": []any{}},
		trainItinerary(1, "2026-02-25T08:10:00Z", "2026-02-25T08:40:00Z"),
	}

	journeys := NormalizeAll(raw, centralToParramatta)
	if len(journeys) != 1 {
		t.Fatalf("expected 1 journey, got %d", len(journeys))
	}
	if journeys[0].IsQuickest {
		t.Errorf("expected quickest marker to stay bound to upstream position 0")
	}
}

func TestPlatform(t *testing.T) {
	tests := []struct {
		name string
		leg  map[string]any
		want string
	}{
		{
			name: "direct field wins",
			leg: map[string]any{
				"origin":       map[string]any{"platform": "Platform 2", "platformName": "5"},
				"stopSequence": []any{map[string]any{"platform": "9"}},
			},
			want: "2",
		},
		{
			name: "nested realtime update",
			leg: map[string]any{
				"origin": map[string]any{"properties": map[string]any{"RealtimeTripUpdate": map[string]any{"platform": "CE21"}}},
			},
			want: "21",
		},
		{
			name: "numeric value",
			leg:  map[string]any{"properties": map[string]any{"platform": float64(4)}},
			want: "4",
		},
		{
			name: "first non-null candidate without digits",
			leg: map[string]any{
				"origin":       map[string]any{"platform": "TBA"},
				"stopSequence": []any{map[string]any{"platform": "9"}},
			},
			want: "",
		},
		{
			name: "nothing",
			leg:  map[string]any{},
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Platform(tc.leg, DeparturePlatformAccessors)
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
			if strings.Trim(got, "0123456789") != "" {
				t.Errorf("platform %q contains non-digits", got)
			}
		})
	}
}

func TestPlatform_ArrivalUsesLastStop(t *testing.T) {
	leg := map[string]any{
		"stopSequence": []any{
			map[string]any{"platform": "1"},
			map[string]any{"platform": "2"},
			map[string]any{"platform": "Platform 8"},
		},
	}
	if got := Platform(leg, ArrivalPlatformAccessors); got != "8" {
		t.Errorf("expected arrival platform 8, got %q", got)
	}
}

func TestLineName(t *testing.T) {
	tests := []struct {
		transportation map[string]any
		want           string
	}{
		{map[string]any{"product": map[string]any{"name": "T1 North Shore & Western Line"}}, "T1 North Shore & Western Line"},
		{map[string]any{"product": map[string]any{"line": "T2"}}, "T2"},
		{map[string]any{"disassembledName": "T8"}, "T8"},
		{map[string]any{"description": "Sydney Trains Network"}, GenericCarrier},
		{map[string]any{}, GenericCarrier},
	}

	for _, tc := range tests {
		if got := LineName(map[string]any{"transportation": tc.transportation}); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestIsTransportLeg(t *testing.T) {
	train := map[string]any{"transportation": map[string]any{"product": map[string]any{"class": float64(1)}}}
	named := map[string]any{"transportation": map[string]any{"description": "Intercity TRAIN"}}
	walk := map[string]any{"transportation": map[string]any{"product": map[string]any{"class": float64(100)}}}

	if !IsTransportLeg(train) {
		t.Errorf("expected rail class to be a transport leg")
	}
	if !IsTransportLeg(named) {
		t.Errorf("expected description mentioning train to be a transport leg")
	}
	if IsTransportLeg(walk) {
		t.Errorf("expected walking leg to be excluded")
	}
	if IsTransportLeg(map[string]any{}) {
		t.Errorf("expected leg without transportation to be excluded")
	}
}

// trainItinerary builds n consecutive rail legs spanning dep to arr.
func trainItinerary(n int, dep, arr string) Itinerary {
	legs := make([]any, 0, n)
	for i := 0; i < n; i++ {
		origin := map[string]any{"name": fmt.Sprintf("Stop %d, Sydney", i)}
		destination := map[string]any{"name": fmt.Sprintf("Stop %d, Sydney", i+1)}
		if i == 0 {
			origin["departureTimePlanned"] = dep
		}
		if i == n-1 {
			destination["arrivalTimePlanned"] = arr
		}
		legs = append(legs, map[string]any{
			"transportation": map[string]any{"product": map[string]any{"class": float64(1), "name": "T1"}},
			"origin":         origin,
			"destination":    destination,
		})
	}
	return Itinerary{"legs": legs}
}
