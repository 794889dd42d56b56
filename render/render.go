// Package render turns a resolved state into display view models. Rendering
// is pure: the stored payload is never mutated and unit conversion happens
// here and nowhere else.
package render

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"skycast/models"
	"skycast/units"
	"skycast/weathercode"
)

const (
	maxHourly = 24
	maxDaily  = 7

	timestampLayout = "Jan 2 15:04"
	hourLayout      = "15:04"
	dayLayout       = "Mon Jan 2"
)

// Placeholder is shown for readings the payload does not carry.
const Placeholder = "-"

// Render produces the current, hourly and daily views for one state.
func Render(state models.ResolvedState) models.Rendered {
	payload := state.Payload
	imperial := state.Units == models.UnitsImperial

	currentIdx := indexOf(payload.Hourly.Time, payload.Current.Time)

	return models.Rendered{
		Current: renderCurrent(state, currentIdx, imperial),
		Hourly:  renderHourly(payload.Hourly, currentIdx, imperial),
		Daily:   renderDaily(payload.Daily, imperial),
		Sunrise: timeOfDay(payload.Daily.Sunrise),
		Sunset:  timeOfDay(payload.Daily.Sunset),
	}
}

func renderCurrent(state models.ResolvedState, currentIdx int, imperial bool) models.CurrentView {
	payload := state.Payload
	cw := payload.Current

	place := state.Label
	if place == "" {
		place = payload.Timezone
	}
	if place == "" {
		place = "Unknown"
	}

	condition := weathercode.Describe(cw.WeatherCode)

	humidity := Placeholder
	if currentIdx >= 0 && currentIdx < len(payload.Hourly.RelativeHumidity) {
		humidity = formatNumber(payload.Hourly.RelativeHumidity[currentIdx]) + "%"
	}

	// Wind comes from the current block when present, else from the hourly
	// entry matching the observation time, else stays a placeholder.
	wind := Placeholder
	windValue, haveWind := 0.0, false
	if cw.WindSpeed != nil {
		windValue, haveWind = *cw.WindSpeed, true
	} else if currentIdx >= 0 && currentIdx < len(payload.Hourly.WindSpeed) {
		windValue, haveWind = payload.Hourly.WindSpeed[currentIdx], true
	}
	if haveWind {
		if imperial {
			wind = formatNumber(units.KmhToMph(windValue)) + " mph"
		} else {
			wind = formatNumber(windValue) + " km/h"
		}
	}

	return models.CurrentView{
		Place:       place,
		Temperature: formatTemp(cw.Temperature, imperial),
		Description: condition.Description,
		Icon:        condition.Icon,
		Humidity:    humidity,
		Wind:        wind,
		Updated:     state.ResolvedAt.Format(timestampLayout),
		LocalTime:   localTimestamp(cw.Time),
	}
}

func renderHourly(hourly models.HourlyBlock, currentIdx int, imperial bool) []models.HourCell {
	start := 0
	if currentIdx >= 0 {
		start = currentIdx
	}

	cells := make([]models.HourCell, 0, maxHourly)
	for i := start; i < len(hourly.Time) && len(cells) < maxHourly; i++ {
		cell := models.HourCell{Time: timeLabel(hourly.Time[i], hourLayout)}
		if i < len(hourly.Temperature) {
			cell.Temperature = formatTemp(hourly.Temperature[i], imperial)
		}
		if i < len(hourly.WeatherCode) {
			cell.Icon = weathercode.Describe(hourly.WeatherCode[i]).Icon
		}
		if i < len(hourly.PrecipitationProbability) {
			if p := math.Round(hourly.PrecipitationProbability[i]); p > 0 {
				cell.Precip = fmt.Sprintf("%d%% precip", int(p))
			}
		}
		cells = append(cells, cell)
	}
	return cells
}

func renderDaily(daily models.DailyBlock, imperial bool) []models.DayCell {
	cells := make([]models.DayCell, 0, maxDaily)
	for i := 0; i < len(daily.Time) && len(cells) < maxDaily; i++ {
		cell := models.DayCell{Date: timeLabel(daily.Time[i], dayLayout)}
		if i < len(daily.WeatherCode) {
			condition := weathercode.Describe(daily.WeatherCode[i])
			cell.Icon = condition.Icon
			cell.Description = condition.Description
		}
		if i < len(daily.TemperatureMax) {
			cell.Max = formatTemp(daily.TemperatureMax[i], imperial)
		}
		if i < len(daily.TemperatureMin) {
			cell.Min = formatTemp(daily.TemperatureMin[i], imperial)
		}
		cells = append(cells, cell)
	}
	return cells
}

// indexOf returns the position of the current observation time in the hourly
// series, or -1 when there is no exact match.
func indexOf(times []string, want string) int {
	if want == "" {
		return -1
	}
	for i, t := range times {
		if t == want {
			return i
		}
	}
	return -1
}

func formatTemp(celsius float64, imperial bool) string {
	v := celsius
	if imperial {
		v = units.CelsiusToFahrenheit(v)
	}
	return formatNumber(v) + "°"
}

// formatNumber renders a display value rounded to one decimal, dropping a
// trailing ".0".
func formatNumber(v float64) string {
	return strconv.FormatFloat(units.Round1(v), 'f', -1, 64)
}

// timeLabel reformats a payload timestamp; on a date-only value it falls
// back to the date layout, and an unparseable value is shown as-is.
func timeLabel(value, layout string) string {
	if t, err := time.Parse(models.TimeLayout, value); err == nil {
		return t.Format(layout)
	}
	if t, err := time.Parse(models.DateLayout, value); err == nil {
		return t.Format(layout)
	}
	return value
}

func localTimestamp(value string) string {
	if t, err := time.Parse(models.TimeLayout, value); err == nil {
		return t.Format(timestampLayout)
	}
	return value
}

// timeOfDay extracts the first entry of a sunrise/sunset series as a local
// time-of-day string, or the placeholder when the series is empty.
func timeOfDay(series []string) string {
	if len(series) == 0 || series[0] == "" {
		return Placeholder
	}
	return timeLabel(series[0], hourLayout)
}
