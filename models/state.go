package models

import "time"

// Unit preferences for displayed values.
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

// ResolvedState is the unit of persistence and the sole renderer input:
// one successful resolution of a place to a forecast. It is replaced by the
// next successful fetch and mutated only by a unit-preference change.
type ResolvedState struct {
	ResolvedAt time.Time       `json:"resolvedAt"`
	Latitude   float64         `json:"latitude"`
	Longitude  float64         `json:"longitude"`
	Label      string          `json:"label"`
	Units      string          `json:"units"`
	Payload    ForecastPayload `json:"payload"`
}
