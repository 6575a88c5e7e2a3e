package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/config"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
	"github.com/thesumanshah/tfnsw-assistant/pkg/stations"
	"github.com/thesumanshah/tfnsw-assistant/pkg/tfnsw"
)

// Prints how each raw leg of a live Central to Parramatta query is
// classified, to check the platform accessors against real payloads.
func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Println("Error:", err)
		return
	}
	env, err := config.ReadEnvironment()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	g := stations.Default()
	from, _ := g.Lookup("Central")
	to, _ := g.Lookup("Parramatta")

	fmt.Println("Fetching live trips from the TfNSW trip planner...")

	client := tfnsw.NewClient(env.TfNSWAPIKey)
	raw, err := client.FetchTrips(context.Background(), tfnsw.TripQuery{Origin: from, Destination: to, When: time.Now()})
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	for i, it := range raw {
		fmt.Printf("\n--- 🚆 Itinerary %d ---\n", i+1)

		legs, _ := it["legs"].([]any)
		for _, l := range legs {
			leg, ok := l.(map[string]any)
			if !ok {
				continue
			}
			if !journey.IsTransportLeg(leg) {
				fmt.Println("  (walk / other)")
				continue
			}
			fmt.Printf("  %s: platform %q -> %q\n",
				journey.LineName(leg),
				journey.Platform(leg, journey.DeparturePlatformAccessors),
				journey.Platform(leg, journey.ArrivalPlatformAccessors))
		}
	}

	route := journey.Route{From: from.Name, To: to.Name, Mode: journey.ModeTrain}
	for _, j := range journey.NormalizeAll(raw, route) {
		fmt.Printf("\n[%s] -> [%s] %dmin, %d changes, quickest=%t",
			j.DepartureTime.In(clock.Sydney).Format("15:04"),
			j.ArrivalTime.In(clock.Sydney).Format("15:04"),
			j.DurationMinutes, j.ChangeCount, j.IsQuickest)
	}
	fmt.Println()
}
