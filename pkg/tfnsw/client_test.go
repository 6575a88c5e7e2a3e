package tfnsw

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/thesumanshah/tfnsw-assistant/pkg/stations"
)

func testClient(serverURL string) *Client {
	baseURL = serverURL
	c := NewClient("test-key")
	c.retryInterval = time.Millisecond
	return c
}

func testQuery(t *testing.T) TripQuery {
	t.Helper()
	g := stations.Default()
	from, ok := g.Lookup("Central")
	if !ok {
		t.Fatalf("Central missing from gazetteer")
	}
	to, ok := g.Lookup("Parramatta")
	if !ok {
		t.Fatalf("Parramatta missing from gazetteer")
	}
	// 2026-02-24T21:30:00Z is 08:30 the next morning in Sydney (AEDT)
	return TripQuery{Origin: from, Destination: to, When: time.Date(2026, 2, 24, 21, 30, 0, 0, time.UTC)}
}

func TestClient_FetchTrips(t *testing.T) {
	mockJSON := `{
		"version": "10.2.1.42",
		"journeys": [
			{"legs": [{"transportation": {"product": {"class": 1}}}]},
			{"legs": []}
		]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trip" {
			t.Errorf("expected path /trip, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "apikey test-key" {
			t.Errorf("expected apikey authorization header, got %q", got)
		}

		q := r.URL.Query()
		expect := map[string]string{
			"outputFormat":      "rapidJSON",
			"depArrMacro":       "dep",
			"itdDate":           "20260225",
			"itdTime":           "083000",
			"type_origin":       "coord",
			"type_destination":  "coord",
			"calcNumberOfTrips": "5",
			"routeType":         "LEASTTIME",
		}
		for k, want := range expect {
			if got := q.Get(k); got != want {
				t.Errorf("expected %s=%s, got %s", k, want, got)
			}
		}
		if q.Get("name_origin") == "" || q.Get("name_destination") == "" {
			t.Errorf("expected coordinate origin and destination")
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(mockJSON))
	}))
	defer server.Close()

	originalBaseURL := baseURL
	defer func() { baseURL = originalBaseURL }()
	client := testClient(server.URL)

	trips, err := client.FetchTrips(context.Background(), testQuery(t))
	if err != nil {
		t.Fatalf("unexpected error fetching mocked trips: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 itineraries, got %d", len(trips))
	}
}

func TestClient_FetchTrips_MissingKey(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	originalBaseURL := baseURL
	defer func() { baseURL = originalBaseURL }()
	client := testClient(server.URL)
	client.apiKey = ""

	_, err := client.FetchTrips(context.Background(), testQuery(t))
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if called {
		t.Errorf("expected no request without an API key")
	}
}

func TestClient_FetchTrips_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ErrorDetails": {"Message": "Invalid API key"}}`))
	}))
	defer server.Close()

	originalBaseURL := baseURL
	defer func() { baseURL = originalBaseURL }()
	client := testClient(server.URL)

	_, err := client.FetchTrips(context.Background(), testQuery(t))
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", statusErr.StatusCode)
	}
}

func TestClient_GetWithRetries_Success(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"journeys": []}`))
	}))
	defer server.Close()

	originalBaseURL := baseURL
	defer func() { baseURL = originalBaseURL }()
	client := testClient(server.URL)

	resp, err := client.getWithRetries(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("expected retry to succeed on 3rd attempt, got error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200 OK, got %d", resp.StatusCode)
	}
	if attempts != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", attempts)
	}
}

func TestClient_GetWithRetries_Fail(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	originalBaseURL := baseURL
	defer func() { baseURL = originalBaseURL }()
	client := testClient(server.URL)

	_, err := client.getWithRetries(context.Background(), server.URL)
	if err == nil {
		t.Fatalf("expected retry to fail after 3 attempts, but got nil error")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected last status 502 to be preserved, got %v", err)
	}
	if attempts != maxRetries+1 {
		t.Errorf("expected %d attempts, got %d", maxRetries+1, attempts)
	}
}
