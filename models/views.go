package models

// CurrentView is the rendered current-conditions panel.
type CurrentView struct {
	Place       string `json:"place"`
	Temperature string `json:"temperature"` // e.g. "20.5°"
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Humidity    string `json:"humidity"` // "64%" or "-"
	Wind        string `json:"wind"`     // "12.3 km/h", "7.6 mph" or "-"
	Updated     string `json:"updated"`  // when the state was resolved
	LocalTime   string `json:"localTime"`
}

// HourCell is one entry of the hourly strip.
type HourCell struct {
	Time        string `json:"time"` // "15:04"
	Temperature string `json:"temperature"`
	Icon        string `json:"icon"`
	Precip      string `json:"precip,omitempty"` // "40% precip" or empty
}

// DayCell is one entry of the daily list.
type DayCell struct {
	Date        string `json:"date"` // "Mon Jan 2"
	Icon        string `json:"icon"`
	Max         string `json:"max"`
	Min         string `json:"min"`
	Description string `json:"description"`
}

// Rendered bundles the three view models produced from one ResolvedState.
// View models are ephemeral and recomputed on every render call.
type Rendered struct {
	Current CurrentView `json:"current"`
	Hourly  []HourCell  `json:"hourly"`
	Daily   []DayCell   `json:"daily"`
	Sunrise string      `json:"sunrise"` // first day, "15:04" or "-"
	Sunset  string      `json:"sunset"`
}
