package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skycast/models"
)

// Source is an interface for services that can fetch a forecast payload
// for a coordinate pair.
type Source interface {
	// Fetch fetches the current/hourly/daily forecast for a coordinate pair.
	Fetch(ctx context.Context, lat, lon float64) (models.ForecastPayload, error)

	// Name returns the source's name.
	Name() string
}

// Parameter sets requested from the forecast API. Hourly covers at least 24
// future hours, daily at least 7 days; all timestamps are in the location's
// local timezone (timezone=auto).
var (
	hourlyParams = []string{"temperature_2m", "relativehumidity_2m", "precipitation_probability", "windspeed_10m", "weathercode"}
	dailyParams  = []string{"temperature_2m_max", "temperature_2m_min", "weathercode", "sunrise", "sunset"}
)

// Client is a Source backed by the Open-Meteo forecast API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a forecast client. baseURL defaults to the public
// Open-Meteo endpoint when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.open-meteo.com"
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the source name.
func (c *Client) Name() string {
	return "Open-Meteo"
}

// Fetch fetches the forecast payload for a coordinate pair. Any network
// failure, non-200 status or undecodable body is returned as an error and
// must propagate to the caller.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (models.ForecastPayload, error) {
	endpoint := fmt.Sprintf("%s/v1/forecast", c.baseURL)
	params := url.Values{}
	params.Add("latitude", fmt.Sprintf("%g", lat))
	params.Add("longitude", fmt.Sprintf("%g", lon))
	params.Add("current_weather", "true")
	params.Add("hourly", strings.Join(hourlyParams, ","))
	params.Add("daily", strings.Join(dailyParams, ","))
	params.Add("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return models.ForecastPayload{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ForecastPayload{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ForecastPayload{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return models.ForecastPayload{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload models.ForecastPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.ForecastPayload{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return payload, nil
}

var _ Source = (*Client)(nil)
