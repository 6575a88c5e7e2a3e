package journey

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// MaxItineraries caps how many upstream itineraries are considered.
	MaxItineraries = 5

	// GenericCarrier replaces missing or network-level service names.
	GenericCarrier = "Sydney Trains"

	trainProductClass   = 1
	walkingProductClass = 100
)

var trainName = regexp.MustCompile(`(?i)train`)
var digits = regexp.MustCompile(`\d+`)

// DeparturePlatformAccessors are tried in order against a leg to find the
// platform it departs from. New upstream quirks are added here.
var DeparturePlatformAccessors = []Accessor{
	Path("origin", "platform"),
	Path("origin", "platformName"),
	Path("origin", "properties", "platform"),
	Path("origin", "properties", "RealtimeTripUpdate", "platform"),
	Path("transportation", "origin", "platform"),
	Path("properties", "platform"),
	Path("stopSequence", 0, "platform"),
}

// ArrivalPlatformAccessors are tried in order against a leg to find the
// platform it arrives at.
var ArrivalPlatformAccessors = []Accessor{
	Path("destination", "platform"),
	Path("destination", "platformName"),
	Path("destination", "properties", "platform"),
	Path("destination", "properties", "RealtimeTripUpdate", "platform"),
	Path("transportation", "destination", "platform"),
	Path("properties", "platform"),
	Path("stopSequence", -1, "platform"),
}

var lineNameAccessors = []Accessor{
	Path("transportation", "product", "name"),
	Path("transportation", "product", "line"),
	Path("transportation", "disassembledName"),
	Path("transportation", "description"),
}

var stopNameAccessors = []Accessor{
	Path("parent", "disassembledName"),
	Path("parent", "name"),
	Path("disassembledName"),
	Path("name"),
}

// NormalizeAll turns the upstream journeys list into canonical journeys,
// dropping itineraries that yield no usable record.
func NormalizeAll(raw []Itinerary, route Route) []Journey {
	if len(raw) > MaxItineraries {
		raw = raw[:MaxItineraries]
	}

	journeys := make([]Journey, 0, len(raw))
	for i, it := range raw {
		j, ok := Normalize(it, route, i)
		if !ok {
			log.Debug().Int("index", i).Msg("Dropping itinerary without usable train legs or times")
			continue
		}
		journeys = append(journeys, j)
	}
	return journeys
}

// Normalize reshapes one upstream itinerary. index is the itinerary's
// position in the upstream list, which is already ordered by travel time.
func Normalize(it Itinerary, route Route, index int) (Journey, bool) {
	legs := legsOf(it)

	var transport []map[string]any
	for _, leg := range legs {
		if IsTransportLeg(leg) {
			transport = append(transport, leg)
		}
	}

	if len(transport) == 0 {
		return Journey{}, false
	}

	first := transport[0]
	last := transport[len(transport)-1]

	departure, hasDeparture := legTime(first, "origin", "departureTimeEstimated", "departureTimePlanned")
	arrival, hasArrival := legTime(last, "destination", "arrivalTimeEstimated", "arrivalTimePlanned")

	if !hasDeparture || !hasArrival || arrival.Before(departure) {
		return Journey{}, false
	}

	j := Journey{
		DepartureTime:   departure,
		ArrivalTime:     arrival,
		DurationMinutes: int(math.Round(arrival.Sub(departure).Minutes())),
		ChangeCount:     changeCount(len(transport)),
		IsQuickest:      index == 0,
		Legs:            make([]Leg, 0, len(transport)),
	}

	for i, leg := range transport {
		out := Leg{
			Mode: route.Mode,
			Line: LineName(leg),
			Departure: Stop{
				Platform: Platform(leg, DeparturePlatformAccessors),
				Stop:     stopName(leg, "origin"),
			},
			Arrival: Stop{
				Platform: Platform(leg, ArrivalPlatformAccessors),
				Stop:     stopName(leg, "destination"),
			},
		}
		out.Departure.Time, _ = legTime(leg, "origin", "departureTimeEstimated", "departureTimePlanned")
		out.Arrival.Time, _ = legTime(leg, "destination", "arrivalTimeEstimated", "arrivalTimePlanned")

		if i == 0 {
			out.Departure.Stop = route.From
			out.Departure.Time = departure
		}
		if i == len(transport)-1 {
			out.Arrival.Stop = route.To
			out.Arrival.Time = arrival
		}

		j.Legs = append(j.Legs, out)
	}

	return j, true
}

func legsOf(it Itinerary) []map[string]any {
	arr, _ := it["legs"].([]any)
	legs := make([]map[string]any, 0, len(arr))
	for _, v := range arr {
		if m := asObject(v); m != nil {
			legs = append(legs, m)
		}
	}
	return legs
}

// IsTransportLeg reports whether a leg is a train ride: its product class
// is the rail class, or its product name or description mentions "train".
func IsTransportLeg(leg map[string]any) bool {
	transportation := asObject(leg["transportation"])
	if transportation == nil {
		return false
	}

	class, hasClass := asFloat(walk(transportation, "product", "class"))
	nameOrDesc := asString(firstPresent(transportation, []Accessor{
		Path("product", "name"),
		Path("description"),
	}))

	isTrain := (hasClass && class == trainProductClass) || trainName.MatchString(nameOrDesc)

	log.Debug().
		Bool("walking", hasClass && class == walkingProductClass).
		Bool("train", isTrain).
		Str("name", nameOrDesc).
		Msg("Classified leg")

	return isTrain
}

func legTime(leg map[string]any, end, estimated, planned string) (time.Time, bool) {
	point := asObject(leg[end])
	if point == nil {
		return time.Time{}, false
	}
	if t, ok := asTime(point[estimated]); ok {
		return t, true
	}
	return asTime(point[planned])
}

func changeCount(transportLegs int) int {
	return max(0, transportLegs-1)
}

// Platform runs the accessors against a leg and keeps the first number in
// the first value found. Values without digits yield no platform.
func Platform(leg map[string]any, accessors []Accessor) string {
	raw := firstPresent(leg, accessors)
	if raw == nil {
		return ""
	}
	return digits.FindString(asString(raw))
}

// LineName returns the service name of a leg.
func LineName(leg map[string]any) string {
	name := asString(firstPresent(leg, lineNameAccessors))
	if name == "" || strings.Contains(name, "Network") {
		return GenericCarrier
	}
	return name
}

func stopName(leg map[string]any, end string) string {
	point := asObject(leg[end])
	if point == nil {
		return ""
	}
	name := asString(firstPresent(point, stopNameAccessors))
	if before, _, found := strings.Cut(name, ","); found {
		name = before
	}
	return strings.TrimSpace(name)
}
