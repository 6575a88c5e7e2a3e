// Package api exposes the assistant over HTTP.
package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/intent"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
	"github.com/thesumanshah/tfnsw-assistant/pkg/metrics"
	"github.com/thesumanshah/tfnsw-assistant/pkg/telegram"
)

// Version is reported by GET /version.
var Version = "v0.1"

// Resolver plans online trips.
type Resolver interface {
	Resolve(ctx context.Context, req journey.TripRequest) (*journey.QueryResult, error)
}

// OfflineResolver answers from the local schedule table.
type OfflineResolver interface {
	Resolve(route journey.Route) *journey.QueryResult
}

// UpdateHandler consumes Telegram webhook updates.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, u telegram.Update) error
}

// Server holds the collaborators behind the HTTP routes. Telegram and
// Metrics are optional.
type Server struct {
	Extractor intent.Extractor
	Resolver  Resolver
	Offline   OfflineResolver
	Telegram  UpdateHandler
	Metrics   *metrics.Metrics
	Clock     clock.Clock
}

// App builds the fiber application with all routes mounted.
func (s *Server) App() *fiber.App {
	webApp := fiber.New(fiber.Config{DisableStartupMessage: true})
	webApp.Use(NewLogger())
	webApp.Use(NewMetrics(s.Metrics))

	webApp.Get("version", s.version)
	if s.Metrics != nil {
		webApp.Get("metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	group := webApp.Group("/api")
	group.Post("/intent", s.postIntent)
	group.Post("/journey", s.postJourney)
	group.Post("/fallback", s.postFallback)
	group.Post("/telegram", s.postTelegram)

	return webApp
}

// Listen serves until the listener fails.
func (s *Server) Listen(listen string) error {
	return s.App().Listen(listen)
}

func (s *Server) version(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": Version,
	})
}
