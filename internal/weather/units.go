package weather

import (
	"math"

	t "github.com/weathercast/weathercast-service/internal/types"
)

// Convert converts a canonical celsius value to the display unit. Celsius is
// identity; fahrenheit is rounded to the nearest whole degree. Conversion is
// display-time only, canonical storage stays in celsius.
func Convert(celsius float64, unit t.TemperatureUnit) float64 {
	if unit != t.UnitFahrenheit {
		return celsius
	}
	return math.Round(celsius*9/5 + 32)
}

// ConvertCurrent returns a copy of c with temperatures in the display unit.
func ConvertCurrent(c t.CurrentConditions, unit t.TemperatureUnit) t.CurrentConditions {
	c.Temperature = Convert(c.Temperature, unit)
	c.FeelsLike = Convert(c.FeelsLike, unit)
	return c
}

// ConvertDaily returns a copy of days with temperatures in the display unit.
func ConvertDaily(days []t.ForecastDay, unit t.TemperatureUnit) []t.ForecastDay {
	out := make([]t.ForecastDay, len(days))
	for i, d := range days {
		d.TempMin = Convert(d.TempMin, unit)
		d.TempMax = Convert(d.TempMax, unit)
		out[i] = d
	}
	return out
}

// ConvertHourly returns a copy of hours with temperatures in the display unit.
func ConvertHourly(hours []t.HourlyForecast, unit t.TemperatureUnit) []t.HourlyForecast {
	out := make([]t.HourlyForecast, len(hours))
	for i, h := range hours {
		h.Temperature = Convert(h.Temperature, unit)
		h.FeelsLike = Convert(h.FeelsLike, unit)
		out[i] = h
	}
	return out
}
