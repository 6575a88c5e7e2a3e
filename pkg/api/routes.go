package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
	"github.com/thesumanshah/tfnsw-assistant/pkg/metrics"
	"github.com/thesumanshah/tfnsw-assistant/pkg/planner"
	"github.com/thesumanshah/tfnsw-assistant/pkg/telegram"
	"github.com/thesumanshah/tfnsw-assistant/pkg/tfnsw"
)

const unavailableMessage = "The transport API is currently unavailable. Please try again later."

type intentRequest struct {
	Text string `json:"text"`
}

type intentResponse struct {
	From             string       `json:"from,omitempty"`
	To               string       `json:"to,omitempty"`
	Mode             journey.Mode `json:"mode,omitempty"`
	Datetime         string       `json:"datetime,omitempty"`
	NeedsFollowUp    bool         `json:"needsFollowUp"`
	FollowUpQuestion string       `json:"followUpQuestion,omitempty"`
}

func (s *Server) postIntent(c *fiber.Ctx) error {
	var requestBody intentRequest
	if err := c.BodyParser(&requestBody); err != nil || requestBody.Text == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	in, err := s.Extractor.Extract(c.UserContext(), requestBody.Text)
	if err != nil {
		s.countIntent("error")
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Unable to understand the request",
		})
	}

	if in.NeedsFollowUp {
		s.countIntent("follow_up")
		return c.JSON(intentResponse{NeedsFollowUp: true, FollowUpQuestion: in.FollowUpQuestion})
	}

	s.countIntent("trip")
	response := intentResponse{From: in.From, To: in.To, Mode: in.Mode}
	if !in.Datetime.IsZero() {
		response.Datetime = in.Datetime.Format(time.RFC3339)
	}
	return c.JSON(response)
}

const invalidBodyMessage = "Request body must be a JSON object"

type journeyRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Mode     string `json:"mode"`
	Datetime string `json:"datetime"`
}

func (s *Server) postJourney(c *fiber.Ctx) error {
	var requestBody journeyRequest
	if err := c.BodyParser(&requestBody); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": invalidBodyMessage,
		})
	}

	if requestBody.From == "" || requestBody.To == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "From and to stations are required",
		})
	}

	req := journey.TripRequest{Route: journey.Route{
		From: requestBody.From,
		To:   requestBody.To,
		Mode: journey.ParseMode(requestBody.Mode),
	}}
	if requestBody.Datetime != "" {
		when, err := time.Parse(time.RFC3339, requestBody.Datetime)
		if err != nil {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Datetime must be RFC 3339",
			})
		}
		req.Datetime = when
	}

	res, err := s.Resolver.Resolve(c.UserContext(), req)

	var upstreamErr *planner.UpstreamError
	switch {
	case errors.Is(err, planner.ErrInvalidStation):
		s.countJourney(journey.SourceTripPlanner, metrics.OutcomeInvalidStation)
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid station names",
		})
	case errors.As(err, &upstreamErr):
		s.countJourney(journey.SourceTripPlanner, metrics.OutcomeUpstreamError)
		return s.upstreamFailure(c, req.Route, upstreamErr)
	case err != nil:
		log.Error().Err(err).Msg("Unexpected journey resolution error")
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Internal error",
		})
	}

	if res.Empty() {
		s.countJourney(res.Source, metrics.OutcomeEmpty)
	} else {
		s.countJourney(res.Source, metrics.OutcomeOK)
	}

	if res.Results == nil {
		res.Results = []journey.Journey{}
	}
	return c.JSON(res)
}

func (s *Server) upstreamFailure(c *fiber.Ctx, route journey.Route, upstreamErr *planner.UpstreamError) error {
	if errors.Is(upstreamErr, tfnsw.ErrMissingAPIKey) {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": upstreamErr.Message,
		})
	}

	var upstreamStatus any
	if upstreamErr.Status != 0 {
		upstreamStatus = upstreamErr.Status
	}

	details := upstreamErr.Message
	if upstreamErr.Err != nil {
		details = upstreamErr.Err.Error()
	}

	c.Status(fiber.StatusServiceUnavailable)
	return c.JSON(fiber.Map{
		"error":          upstreamErr.Message,
		"details":        details,
		"upstreamStatus": upstreamStatus,
		"from":           route.From,
		"to":             route.To,
		"mode":           route.Mode,
		"timestamp":      s.Clock.Now().UTC().Format(time.RFC3339),
		"message":        unavailableMessage,
	})
}

type fallbackResponse struct {
	*journey.QueryResult
	Cached bool `json:"cached"`
}

func (s *Server) postFallback(c *fiber.Ctx) error {
	var requestBody journeyRequest
	if err := c.BodyParser(&requestBody); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": invalidBodyMessage,
		})
	}

	if requestBody.From == "" || requestBody.To == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "From and to stations are required",
		})
	}

	res := s.Offline.Resolve(journey.Route{From: requestBody.From, To: requestBody.To, Mode: journey.ModeTrain})
	s.countJourney(res.Source, metrics.OutcomeOK)

	return c.JSON(fallbackResponse{QueryResult: res, Cached: true})
}

func (s *Server) postTelegram(c *fiber.Ctx) error {
	if s.Telegram == nil {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Telegram bot not configured",
		})
	}

	var update telegram.Update
	if err := c.BodyParser(&update); err != nil {
		log.Warn().Err(err).Msg("Malformed telegram update")
		return c.JSON(fiber.Map{"ok": true})
	}

	if s.Metrics != nil {
		s.Metrics.TelegramUpdates.Inc()
	}

	// Telegram redelivers on non-200 answers, so failures are only logged.
	if err := s.Telegram.HandleUpdate(c.UserContext(), update); err != nil {
		log.Error().Err(err).Int64("update", update.UpdateID).Msg("Failed to answer telegram update")
	}

	return c.JSON(fiber.Map{"ok": true})
}

func (s *Server) countIntent(result string) {
	if s.Metrics != nil {
		s.Metrics.IntentsTotal.WithLabelValues(result).Inc()
	}
}

func (s *Server) countJourney(source journey.Source, outcome string) {
	if s.Metrics != nil {
		s.Metrics.JourneyQueriesTotal.WithLabelValues(string(source), outcome).Inc()
	}
}
