package models

import "strings"

// LocationCandidate is a single geocoding match for a free-text place name.
// Candidates are transient: one is picked, the rest are discarded.
type LocationCandidate struct {
	Name      string  `json:"name"`
	Country   string  `json:"country,omitempty"`
	Admin1    string  `json:"admin1,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Label composes the display label "{name}[, admin1][, country]",
// skipping components that are absent.
func (c LocationCandidate) Label() string {
	parts := make([]string, 0, 3)
	if c.Name != "" {
		parts = append(parts, c.Name)
	}
	if c.Admin1 != "" {
		parts = append(parts, c.Admin1)
	}
	if c.Country != "" {
		parts = append(parts, c.Country)
	}
	return strings.Join(parts, ", ")
}
