package exporter

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

// Resolver plans one trip request.
type Resolver interface {
	Resolve(ctx context.Context, req journey.TripRequest) (*journey.QueryResult, error)
}

// CollectJourneys plans every route departing now. Routes that fail are
// logged and skipped; an error is returned only when none succeeded.
func CollectJourneys(ctx context.Context, r Resolver, routes []journey.Route) ([]*journey.QueryResult, error) {
	var results []*journey.QueryResult
	var errs []error

	for _, route := range routes {
		res, err := r.Resolve(ctx, journey.TripRequest{Route: route})
		if err != nil {
			log.Warn().Err(err).Str("from", route.From).Str("to", route.To).Msg("Skipping route for export")
			errs = append(errs, fmt.Errorf("%s to %s: %w", route.From, route.To, err))
			continue
		}
		results = append(results, res)
	}

	if len(results) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return results, nil
}
