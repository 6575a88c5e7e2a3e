package intent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

func completionServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultModel, req.Model)
		assert.Len(t, req.Messages, 2)
		assert.Equal(t, "json_object", req.ResponseFormat["type"])

		w.WriteHeader(status)
		if status != http.StatusOK {
			return
		}
		body, _ := json.Marshal(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": content}}},
		})
		w.Write(body)
	}))
}

func withCompletionsURL(t *testing.T, url string) {
	original := completionsURL
	completionsURL = url
	t.Cleanup(func() { completionsURL = original })
}

func TestHostedExtractor_Extract(t *testing.T) {
	server := completionServer(t, http.StatusOK, "```json\n{\"from\": \"Central\", \"to\": \"Hornsby\", \"mode\": \"Metro\", \"datetime\": \"2026-02-25T09:00:00+11:00\", \"needsFollowUp\": false}\n```")
	defer server.Close()
	withCompletionsURL(t, server.URL)

	h := NewHostedExtractor("test-key", "", clock.NewMockClock(extractedAt))
	in, err := h.Extract(context.Background(), "metro from central to hornsby at 9")
	require.NoError(t, err)

	assert.False(t, in.NeedsFollowUp)
	assert.Equal(t, "Central", in.From)
	assert.Equal(t, "Hornsby", in.To)
	assert.Equal(t, journey.ModeMetro, in.Mode)
	assert.True(t, in.Datetime.Equal(time.Date(2026, 2, 25, 9, 0, 0, 0, clock.Sydney)))
	assert.False(t, in.TimeDefaulted)
}

func TestHostedExtractor_DefaultsMissingFields(t *testing.T) {
	server := completionServer(t, http.StatusOK, `{"from": "Central", "mode": "hovercraft"}`)
	defer server.Close()
	withCompletionsURL(t, server.URL)

	h := NewHostedExtractor("test-key", "", clock.NewMockClock(extractedAt))
	in, err := h.Extract(context.Background(), "central")
	require.NoError(t, err)

	assert.Empty(t, in.To)
	assert.Equal(t, journey.ModeTrain, in.Mode)
	assert.Equal(t, extractedAt, in.Datetime)
	assert.True(t, in.TimeDefaulted)
}

func TestHostedExtractor_FollowUp(t *testing.T) {
	server := completionServer(t, http.StatusOK, `{"needsFollowUp": true, "followUpQuestion": "Which Richmond do you mean?"}`)
	defer server.Close()
	withCompletionsURL(t, server.URL)

	h := NewHostedExtractor("test-key", "", clock.NewMockClock(extractedAt))
	in, err := h.Extract(context.Background(), "to richmond")
	require.NoError(t, err)

	assert.True(t, in.NeedsFollowUp)
	assert.Equal(t, "Which Richmond do you mean?", in.FollowUpQuestion)
}

func TestHostedExtractor_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		content string
	}{
		{"server error", http.StatusInternalServerError, ""},
		{"malformed content", http.StatusOK, "Sure! You want to go from Central to Parramatta."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := completionServer(t, tc.status, tc.content)
			defer server.Close()
			withCompletionsURL(t, server.URL)

			h := NewHostedExtractor("test-key", "", clock.NewMockClock(extractedAt))
			_, err := h.Extract(context.Background(), "from central to parramatta")
			assert.True(t, errors.Is(err, ErrExtractorUnavailable), "got %v", err)
		})
	}
}

func TestHostedExtractor_NoKey(t *testing.T) {
	h := NewHostedExtractor("", "", clock.NewMockClock(extractedAt))
	assert.False(t, h.Available())

	_, err := h.Extract(context.Background(), "from central to parramatta")
	assert.ErrorIs(t, err, ErrExtractorUnavailable)
}

func TestHostedExtractor_BreakerOpens(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()
	withCompletionsURL(t, server.URL)

	h := NewHostedExtractor("test-key", "", clock.NewMockClock(extractedAt))
	for i := 0; i < 6; i++ {
		_, err := h.Extract(context.Background(), "from central to parramatta")
		assert.ErrorIs(t, err, ErrExtractorUnavailable)
	}

	// The breaker trips after four consecutive failures.
	assert.Equal(t, 4, calls)
}
