// Package stations holds the gazetteer of known Sydney Trains and Metro
// stations and their coordinates.
package stations

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
)

//go:embed stations.csv
var stationsCSV []byte

// Station is a single gazetteer entry.
type Station struct {
	Name      string  `csv:"name"`
	Latitude  float64 `csv:"latitude"`
	Longitude float64 `csv:"longitude"`
	Region    string  `csv:"region"`
}

// Coord renders the station as a trip planner coordinate (lng:lat:EPSG:4326).
func (s Station) Coord() string {
	return fmt.Sprintf("%s:%s:EPSG:4326",
		strconv.FormatFloat(s.Longitude, 'f', -1, 64),
		strconv.FormatFloat(s.Latitude, 'f', -1, 64))
}

// Gazetteer is a read-only, ordered set of stations.
type Gazetteer struct {
	stations []Station
	byName   map[string]int
}

// New builds a gazetteer preserving the order of the given stations.
func New(list []Station) *Gazetteer {
	g := &Gazetteer{
		stations: list,
		byName:   make(map[string]int, len(list)),
	}
	for i, s := range list {
		g.byName[s.Name] = i
	}
	return g
}

// Parse decodes a CSV gazetteer (name,latitude,longitude,region).
func Parse(data []byte) (*Gazetteer, error) {
	var list []Station
	if err := gocsv.UnmarshalBytes(data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode stations CSV: %w", err)
	}
	return New(list), nil
}

var (
	defaultOnce      sync.Once
	defaultGazetteer *Gazetteer
)

// Default returns the embedded gazetteer.
func Default() *Gazetteer {
	defaultOnce.Do(func() {
		g, err := Parse(stationsCSV)
		if err != nil {
			panic(err)
		}
		defaultGazetteer = g
	})
	return defaultGazetteer
}

var stationWord = regexp.MustCompile(`(?i)\bstation\b`)
var whitespace = regexp.MustCompile(`\s+`)

// Normalize lower-cases a name, strips the word "station" and collapses whitespace.
func Normalize(name string) string {
	name = strings.ToLower(name)
	name = stationWord.ReplaceAllString(name, "")
	name = whitespace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// Lookup resolves a display name, trying an exact match first and then a
// normalized match against every entry.
func (g *Gazetteer) Lookup(name string) (Station, bool) {
	if name == "" {
		return Station{}, false
	}
	if i, ok := g.byName[name]; ok {
		return g.stations[i], true
	}

	norm := Normalize(name)
	for _, s := range g.stations {
		if Normalize(s.Name) == norm {
			return s, true
		}
	}
	return Station{}, false
}

// Stations returns the entries in gazetteer order.
func (g *Gazetteer) Stations() []Station {
	out := make([]Station, len(g.stations))
	copy(out, g.stations)
	return out
}

// Names returns the station display names in gazetteer order.
func (g *Gazetteer) Names() []string {
	names := make([]string, 0, len(g.stations))
	for _, s := range g.stations {
		names = append(names, s.Name)
	}
	return names
}

// Len reports the number of stations.
func (g *Gazetteer) Len() int {
	return len(g.stations)
}
