package tfnsw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
	"github.com/thesumanshah/tfnsw-assistant/pkg/stations"
)

var baseURL = "https://api.transport.nsw.gov.au/v1/tp"

// RequestTimeout bounds a whole trip request, retries included.
const RequestTimeout = 15 * time.Second

const maxRetries = 2

// ErrMissingAPIKey is returned before any request is made when no key is set.
var ErrMissingAPIKey = errors.New("TfNSW API key not configured")

// StatusError is a non-success HTTP answer from the trip planner.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("trip planner returned status %d", e.StatusCode)
}

// Client interacts with the TfNSW Trip Planner API
type Client struct {
	httpClient    *http.Client
	apiKey        string
	limiter       *rate.Limiter
	retryInterval time.Duration
}

// NewClient builds a client for the given API key. The open data quota is
// five requests per second per key.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: RequestTimeout},
		apiKey:        apiKey,
		limiter:       rate.NewLimiter(rate.Limit(5), 5),
		retryInterval: 500 * time.Millisecond,
	}
}

// HasAPIKey reports whether the client can talk to the trip planner at all.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// TripQuery is a coordinate based trip request departing at When.
type TripQuery struct {
	Origin      stations.Station
	Destination stations.Station
	When        time.Time
}

type tripResponse struct {
	Journeys []journey.Itinerary `json:"journeys"`
}

// Values renders the query string the trip endpoint expects. Date and time
// are expressed in Sydney local time.
func (q TripQuery) Values() url.Values {
	local := q.When.In(clock.Sydney)

	v := url.Values{}
	v.Set("outputFormat", "rapidJSON")
	v.Set("coordOutputFormat", "EPSG:4326")
	v.Set("depArrMacro", "dep")
	v.Set("itdDate", local.Format("20060102"))
	v.Set("itdTime", local.Format("150405"))
	v.Set("type_origin", "coord")
	v.Set("name_origin", q.Origin.Coord())
	v.Set("type_destination", "coord")
	v.Set("name_destination", q.Destination.Coord())
	v.Set("calcNumberOfTrips", fmt.Sprint(journey.MaxItineraries))
	v.Set("ptOptionsActive", "1")
	v.Set("trITMOT", "1")
	v.Set("routeType", "LEASTTIME")
	return v
}

// FetchTrips asks the trip planner for itineraries between two stations and
// returns them undecoded beyond generic JSON values.
func (c *Client) FetchTrips(ctx context.Context, q TripQuery) ([]journey.Itinerary, error) {
	if !c.HasAPIKey() {
		return nil, ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	reqURL := baseURL + "/trip?" + q.Values().Encode()
	log.Debug().
		Str("origin", q.Origin.Name).
		Str("destination", q.Destination.Name).
		Str("url", reqURL).
		Msg("Requesting trips")

	resp, err := c.getWithRetries(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trips: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read trip response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tripResp tripResponse
	if err := json.Unmarshal(body, &tripResp); err != nil {
		return nil, fmt.Errorf("failed to decode trip JSON: %w", err)
	}

	return tripResp.Journeys, nil
}

// getWithRetries issues a GET, retrying network errors and 502/503/504
// answers with exponential backoff. Other statuses are returned as is.
func (c *Client) getWithRetries(ctx context.Context, reqURL string) (*http.Response, error) {
	var resp *http.Response
	attempt := 0

	operation := func() error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "apikey "+c.apiKey)

		r, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}

		switch r.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			r.Body.Close()
			return &StatusError{StatusCode: r.StatusCode}
		}

		resp = r
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval

	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("Trip planner congested, retrying")
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(b, maxRetries), ctx), notify); err != nil {
		return nil, fmt.Errorf("failed after %d attempts: %w", attempt, err)
	}
	return resp, nil
}
