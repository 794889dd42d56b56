// Package geolocate resolves the host's approximate coordinates from its
// public IP address. It backs the "use my location" entry of the pipeline.
package geolocate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client looks up coordinates via the ip-api.com JSON endpoint (no key
// required).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geolocation client. baseURL defaults to the public
// ip-api.com endpoint when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://ip-api.com"
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Locate returns the caller's approximate latitude and longitude.
func (c *Client) Locate(ctx context.Context) (lat, lon float64, err error) {
	endpoint := fmt.Sprintf("%s/json/?fields=status,message,lat,lon", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return 0, 0, fmt.Errorf("failed to parse response: %w", err)
	}

	if response.Status != "success" {
		return 0, 0, fmt.Errorf("lookup refused: %s", response.Message)
	}

	return response.Lat, response.Lon, nil
}
