package maps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
)

type LatLng struct {
	Lat float64
	Lng float64
}

// DirectionsProvider answers point-to-point driving durations. Best effort:
// callers must treat every error as recoverable.
type DirectionsProvider interface {
	TravelMinutes(ctx context.Context, origin, dest LatLng) (float64, error)
}

const googleDirectionsURL = "https://maps.googleapis.com/maps/api/directions/json"

// GoogleDirectionsClient queries the Google Directions API with a hard
// per-request timeout, so a slow provider can never block a planning run
// beyond the configured deadline.
type GoogleDirectionsClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGoogleDirectionsClient(apiKey string, timeout time.Duration) *GoogleDirectionsClient {
	return &GoogleDirectionsClient{
		apiKey:  apiKey,
		baseURL: googleDirectionsURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at a different endpoint (tests).
func (g *GoogleDirectionsClient) WithBaseURL(u string) *GoogleDirectionsClient {
	g.baseURL = u
	return g
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

func (g *GoogleDirectionsClient) TravelMinutes(ctx context.Context, origin, dest LatLng) (float64, error) {
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", dest.Lat, dest.Lng))
	params.Set("mode", "driving")
	params.Set("language", "pt-BR")
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var parsed directionsResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return 0, err
	}
	if parsed.Status != "OK" || len(parsed.Routes) == 0 {
		return 0, fmt.Errorf("directions: status %s: %s", parsed.Status, parsed.ErrorMessage)
	}

	totalSeconds := 0
	for _, leg := range parsed.Routes[0].Legs {
		totalSeconds += leg.Duration.Value
	}
	return float64(totalSeconds) / 60.0, nil
}
