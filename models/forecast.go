package models

// TimeLayout is the local-time ISO layout used by the forecast API for every
// timestamp in a payload ("2006-01-02T15:04"). All payload timestamps are in
// the location's local timezone, not the viewer's.
const TimeLayout = "2006-01-02T15:04"

// DateLayout is the layout of daily series dates ("2006-01-02").
const DateLayout = "2006-01-02"

// CurrentBlock holds the current observation from the forecast API.
// Temperature is Celsius, wind speed km/h. Humidity is not part of this
// block; it lives in the hourly series and is looked up by matching Time
// against HourlyBlock.Time. WindSpeed is a pointer so an omitted field is
// distinguishable from a calm 0 km/h.
type CurrentBlock struct {
	Temperature   float64  `json:"temperature"`
	WindSpeed     *float64 `json:"windspeed,omitempty"`
	WindDirection float64  `json:"winddirection"`
	WeatherCode   int      `json:"weathercode"`
	IsDay         int      `json:"is_day"`
	Time          string   `json:"time"`
}

// HourlyBlock holds the hourly series. All slices are parallel and
// index-aligned with Time.
type HourlyBlock struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature_2m"`
	RelativeHumidity         []float64 `json:"relativehumidity_2m"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
	WindSpeed                []float64 `json:"windspeed_10m"`
	WeatherCode              []int     `json:"weathercode"`
}

// DailyBlock holds the daily series. All slices are parallel and
// index-aligned with Time.
type DailyBlock struct {
	Time           []string  `json:"time"`
	TemperatureMax []float64 `json:"temperature_2m_max"`
	TemperatureMin []float64 `json:"temperature_2m_min"`
	WeatherCode    []int     `json:"weathercode"`
	Sunrise        []string  `json:"sunrise"`
	Sunset         []string  `json:"sunset"`
}

// ForecastPayload is one forecast response for a coordinate pair.
// Immutable after fetch; unit conversion happens at render time only.
type ForecastPayload struct {
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Timezone  string       `json:"timezone"`
	Current   CurrentBlock `json:"current_weather"`
	Hourly    HourlyBlock  `json:"hourly"`
	Daily     DailyBlock   `json:"daily"`
}
