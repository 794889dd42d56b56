// Package weathercode maps the WMO weather interpretation codes used by the
// forecast API to display text and glyphs. This table is the single source of
// truth for code lookups; nothing else in the repository duplicates it.
package weathercode

// Condition is the human description and display glyph for one weather code.
type Condition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Fallback is returned for any code not in the catalog. Unknown codes never
// produce an error.
var Fallback = Condition{Description: "Unknown", Icon: "🌈"}

var catalog = map[int]Condition{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "🌤️"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Fog", "🌫️"},
	48: {"Depositing rime fog", "🌫️"},
	51: {"Light drizzle", "🌦️"},
	53: {"Moderate drizzle", "🌦️"},
	55: {"Dense drizzle", "🌧️"},
	56: {"Light freezing drizzle", "🌧️"},
	57: {"Dense freezing drizzle", "🌧️"},
	61: {"Slight rain", "🌧️"},
	63: {"Moderate rain", "🌧️"},
	65: {"Heavy rain", "⛈️"},
	66: {"Light freezing rain", "🌧️"},
	67: {"Heavy freezing rain", "⛈️"},
	71: {"Light snow", "🌨️"},
	73: {"Moderate snow", "🌨️"},
	75: {"Heavy snow", "❄️"},
	77: {"Snow grains", "🌨️"},
	80: {"Slight rain showers", "🌦️"},
	81: {"Moderate rain showers", "🌧️"},
	82: {"Violent rain showers", "⛈️"},
	85: {"Slight snow showers", "🌨️"},
	86: {"Heavy snow showers", "❄️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm with slight hail", "⛈️"},
	99: {"Thunderstorm with heavy hail", "⛈️"},
}

// Describe returns the condition for a weather code, or Fallback when the
// code is not in the catalog.
func Describe(code int) Condition {
	if c, ok := catalog[code]; ok {
		return c
	}
	return Fallback
}
