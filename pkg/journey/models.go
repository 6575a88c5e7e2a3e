package journey

import (
	"strings"
	"time"
)

// Mode is the transport mode a trip is requested for.
type Mode string

const (
	ModeTrain Mode = "train"
	ModeMetro Mode = "metro"
	ModeBus   Mode = "bus"
	ModeFerry Mode = "ferry"
)

// Modes lists the supported modes in display order.
var Modes = []Mode{ModeTrain, ModeMetro, ModeBus, ModeFerry}

// ParseMode maps free text onto a Mode, defaulting to train.
func ParseMode(s string) Mode {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m.Valid() {
		return m
	}
	return ModeTrain
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeTrain, ModeMetro, ModeBus, ModeFerry:
		return true
	}
	return false
}

// Route identifies an origin/destination pair for a mode.
type Route struct {
	From string `json:"from"`
	To   string `json:"to"`
	Mode Mode   `json:"mode"`
}

// Reversed swaps origin and destination.
func (r Route) Reversed() Route {
	return Route{From: r.To, To: r.From, Mode: r.Mode}
}

// TripRequest is a route to plan, departing at Datetime. A zero Datetime
// means now.
type TripRequest struct {
	Route
	Datetime time.Time `json:"datetime"`
}

// Stop is one end of a leg.
type Stop struct {
	Time     time.Time `json:"time"`
	Platform string    `json:"platform,omitempty"`
	Stop     string    `json:"stop"`
}

// Leg is a single ride on one service.
type Leg struct {
	Mode      Mode   `json:"mode"`
	Line      string `json:"line"`
	Departure Stop   `json:"departure"`
	Arrival   Stop   `json:"arrival"`
}

// Journey is the canonical, upstream-agnostic trip option.
type Journey struct {
	DepartureTime   time.Time `json:"departureTime"`
	ArrivalTime     time.Time `json:"arrivalTime"`
	DurationMinutes int       `json:"duration"`
	ChangeCount     int       `json:"changes"`
	IsQuickest      bool      `json:"isQuickest"`
	Legs            []Leg     `json:"legs"`
}

// Source tags where a result came from.
type Source string

const (
	SourceTripPlanner      Source = "tfnsw-api"
	SourceTripPlannerEmpty Source = "tfnsw-api-empty"
	SourceOffline          Source = "offline"
)

// QueryResult is the outcome of a successful journey query. A result with no
// journeys is an empty result, not an error.
type QueryResult struct {
	Route
	Results   []Journey `json:"results"`
	Timestamp time.Time `json:"timestamp"`
	Source    Source    `json:"source"`
	Offline   bool      `json:"offline,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// Empty reports whether the query produced no usable journeys.
func (r *QueryResult) Empty() bool {
	return r == nil || len(r.Results) == 0
}
