package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

var completionsURL = "https://api.perplexity.ai/chat/completions"

// DefaultModel is the hosted model used when none is configured.
const DefaultModel = "llama-3.1-sonar-small-128k-online"

const systemPrompt = `You are an assistant for NSW Transport. Extract journey details from user queries.
Return a JSON object with these fields:
- from: departure station name (exact match from NSW stations)
- to: arrival station name (exact match from NSW stations)
- mode: "train", "metro", "bus", or "ferry"
- datetime: ISO timestamp (default to now if not specified)
- needsFollowUp: boolean (true if query is ambiguous)
- followUpQuestion: string (clarifying question if needed)

Common NSW stations include: Central, Town Hall, Wynyard, Circular Quay, Kings Cross, Martin Place, St James, Museum, Redfern, Strathfield, Parramatta, Chatswood, North Sydney, Bondi Junction, Liverpool, Blacktown, Penrith, Hornsby, Hurstville, Bankstown, Epping, Macquarie Park, Castle Hill, Rouse Hill.

If the user doesn't specify a mode, default to "train" for inter-suburb travel and "metro" for CBD/Northwest stations.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens"`
	ResponseFormat map[string]string `json:"response_format"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// modelIntent is the loosely typed object the model is asked to produce.
type modelIntent struct {
	From             string `json:"from"`
	To               string `json:"to"`
	Mode             string `json:"mode"`
	Datetime         string `json:"datetime"`
	NeedsFollowUp    bool   `json:"needsFollowUp"`
	FollowUpQuestion string `json:"followUpQuestion"`
}

// HostedExtractor asks a hosted language model to extract the trip. Calls go
// through a circuit breaker so a failing endpoint is skipped quickly.
type HostedExtractor struct {
	httpClient *http.Client
	apiKey     string
	model      string
	clock      clock.Clock
	breaker    *gobreaker.CircuitBreaker
}

// NewHostedExtractor builds an extractor for the chat completions endpoint.
// An empty model selects DefaultModel.
func NewHostedExtractor(apiKey, model string, c clock.Clock) *HostedExtractor {
	if model == "" {
		model = DefaultModel
	}

	settings := gobreaker.Settings{
		Name:        "IntentModel",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker changed state")
		},
	}

	return &HostedExtractor{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		model:      model,
		clock:      c,
		breaker:    gobreaker.NewCircuitBreaker(settings),
	}
}

// Available reports whether an API key is configured.
func (h *HostedExtractor) Available() bool {
	return h.apiKey != ""
}

func (h *HostedExtractor) Extract(ctx context.Context, text string) (Intent, error) {
	if !h.Available() {
		return Intent{}, fmt.Errorf("%w: no API key", ErrExtractorUnavailable)
	}

	out, err := h.breaker.Execute(func() (interface{}, error) {
		return h.complete(ctx, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			log.Debug().Msg("Intent model circuit open, skipping call")
		}
		return Intent{}, fmt.Errorf("%w: %w", ErrExtractorUnavailable, err)
	}

	return h.toIntent(out.(modelIntent)), nil
}

func (h *HostedExtractor) complete(ctx context.Context, text string) (modelIntent, error) {
	payload, err := json.Marshal(completionRequest{
		Model: h.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		Temperature:    0.3,
		MaxTokens:      200,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return modelIntent{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionsURL, bytes.NewReader(payload))
	if err != nil {
		return modelIntent{}, err
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return modelIntent{}, fmt.Errorf("failed to call intent model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return modelIntent{}, fmt.Errorf("intent model returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return modelIntent{}, fmt.Errorf("failed to read intent model response: %w", err)
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return modelIntent{}, fmt.Errorf("failed to decode completion JSON: %w", err)
	}
	if len(completion.Choices) == 0 {
		return modelIntent{}, errors.New("intent model returned no choices")
	}

	var mi modelIntent
	content := stripFences(completion.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &mi); err != nil {
		return modelIntent{}, fmt.Errorf("intent model returned malformed JSON: %w", err)
	}
	return mi, nil
}

func (h *HostedExtractor) toIntent(mi modelIntent) Intent {
	if mi.NeedsFollowUp {
		return FollowUp(mi.FollowUpQuestion)
	}

	when, err := time.Parse(time.RFC3339, mi.Datetime)
	defaulted := err != nil
	if defaulted {
		when = h.clock.Now()
	}

	return Intent{
		TripRequest: journey.TripRequest{
			Route: journey.Route{
				From: strings.TrimSpace(mi.From),
				To:   strings.TrimSpace(mi.To),
				Mode: journey.ParseMode(mi.Mode),
			},
			Datetime: when,
		},
		TimeDefaulted: defaulted,
	}
}

// stripFences removes a markdown code fence some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
