package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"skycast/models"
)

// Geocoder resolves a free-text place name to ranked location candidates.
type Geocoder interface {
	// Search returns up to limit candidates for a place name, best match
	// first. A query with no matches returns an empty slice and no error;
	// errors are reserved for transport and decoding failures.
	Search(ctx context.Context, name string, limit int) ([]models.LocationCandidate, error)
}

// Client is a Geocoder backed by the Open-Meteo geocoding API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geocoding client. baseURL defaults to the public
// Open-Meteo geocoding endpoint when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://geocoding-api.open-meteo.com"
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Search fetches location candidates for a place name. The upstream relevance
// ordering is preserved; results are never reordered locally. The caller is
// responsible for trimming and validating the name before calling.
func (c *Client) Search(ctx context.Context, name string, limit int) ([]models.LocationCandidate, error) {
	endpoint := fmt.Sprintf("%s/v1/search", c.baseURL)
	params := url.Values{}
	params.Add("name", name)
	params.Add("count", fmt.Sprintf("%d", limit))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	// An absent "results" key signals zero matches, not an error.
	var response struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Admin1    string  `json:"admin1"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	candidates := make([]models.LocationCandidate, 0, len(response.Results))
	for _, r := range response.Results {
		candidates = append(candidates, models.LocationCandidate{
			Name:      r.Name,
			Country:   r.Country,
			Admin1:    r.Admin1,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
	}
	return candidates, nil
}

var _ Geocoder = (*Client)(nil)
