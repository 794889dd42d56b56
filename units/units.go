// Package units holds the display-unit conversions. Payloads always carry
// metric values; conversion happens when a view is rendered, never before.
package units

import "math"

// CelsiusToFahrenheit converts a Celsius temperature to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FahrenheitToCelsius converts a Fahrenheit temperature to Celsius.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// KmhToMph converts a wind speed from km/h to mph.
func KmhToMph(v float64) float64 {
	return v * 0.621371
}

// Round1 rounds a display value to one decimal place. Every displayed
// temperature and wind value goes through this, so readings stay
// internally consistent across the current, hourly and daily views.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
