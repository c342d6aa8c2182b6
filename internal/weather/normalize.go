package weather

import (
	"math"
	"time"

	"github.com/weathercast/weathercast-service/internal/gateway"
	t "github.com/weathercast/weathercast-service/internal/types"
)

// CurrentFromPayload normalizes a raw current-conditions payload into the
// canonical entity. Wind speed converts m/s to km/h; temperatures stay celsius.
func CurrentFromPayload(p *gateway.CurrentPayload) t.CurrentConditions {
	var cond gateway.ConditionInfo
	if len(p.Weather.Weather) > 0 {
		cond = p.Weather.Weather[0]
	}

	current := t.CurrentConditions{
		Location: t.Location{
			Lat:     p.Location.Lat,
			Lon:     p.Location.Lon,
			Name:    p.Location.Name,
			Country: p.Location.Country,
		},
		Temperature: math.Round(p.Weather.Main.Temp),
		FeelsLike:   math.Round(p.Weather.Main.FeelsLike),
		Humidity:    p.Weather.Main.Humidity,
		WindSpeed:   kmh(p.Weather.Wind.Speed),
		WindDeg:     p.Weather.Wind.Deg,
		Pressure:    p.Weather.Main.Pressure,
		Visibility:  p.Weather.Visibility,
		Description: cond.Description,
		Icon:        cond.Icon,
		Condition:   MapCondition(cond.Id),
		Timestamp:   t.TS(time.Unix(p.Weather.Time, 0).UTC()),
		Sunrise:     t.TS(time.Unix(p.Weather.Sys.Sunrise, 0).UTC()),
		Sunset:      t.TS(time.Unix(p.Weather.Sys.Sunset, 0).UTC()),
	}

	if ap := p.AirPollution; ap != nil {
		current.AirQuality = &t.AirQuality{
			AQI:      ap.Aqi,
			Category: ap.Category,
			PM25:     ap.PM25,
			PM10:     ap.PM10,
		}
	}
	return current
}

// HourlyFromSamples normalizes raw 3-hour samples into the hourly view.
// Provider ordering is preserved, never re-sorted; only the first limit
// samples are kept. Pop scales from 0-1 to 0-100.
func HourlyFromSamples(samples []gateway.ForecastSample, limit int) []t.HourlyForecast {
	if limit > 0 && len(samples) > limit {
		samples = samples[:limit]
	}

	hourly := make([]t.HourlyForecast, 0, len(samples))
	for _, s := range samples {
		var cond gateway.ConditionInfo
		if len(s.Weather) > 0 {
			cond = s.Weather[0]
		}
		hourly = append(hourly, t.HourlyForecast{
			Time:        t.TS(time.Unix(s.Time, 0).UTC()),
			Temperature: math.Round(s.Main.Temp),
			FeelsLike:   math.Round(s.Main.FeelsLike),
			Humidity:    s.Main.Humidity,
			Description: cond.Description,
			Icon:        cond.Icon,
			Condition:   MapCondition(cond.Id),
			Pop:         math.Round(s.Pop * 100),
			WindSpeed:   kmh(s.Wind.Speed),
		})
	}
	return hourly
}

// AlertsFromPayload normalizes one-call alerts. A nil payload reads as no
// alerts; the one-call endpoint is best-effort upstream.
func AlertsFromPayload(p *gateway.OneCallPayload) []t.WeatherAlert {
	if p == nil || len(p.Data.Alerts) == 0 {
		return []t.WeatherAlert{}
	}

	alerts := make([]t.WeatherAlert, 0, len(p.Data.Alerts))
	for _, a := range p.Data.Alerts {
		alerts = append(alerts, t.WeatherAlert{
			Event:       a.Event,
			Sender:      a.SenderName,
			Start:       t.TS(time.Unix(a.Start, 0).UTC()),
			End:         t.TS(time.Unix(a.End, 0).UTC()),
			Description: a.Description,
			Tags:        a.Tags,
		})
	}
	return alerts
}

func kmh(metersPerSecond float64) float64 {
	return math.Round(metersPerSecond * 3.6)
}
