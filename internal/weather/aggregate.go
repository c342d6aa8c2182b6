package weather

import (
	"time"

	"github.com/weathercast/weathercast-service/internal/gateway"
	t "github.com/weathercast/weathercast-service/internal/types"
)

// maxForecastDays bounds the aggregated daily forecast.
const maxForecastDays = 5

// DailyFromSamples groups raw 3-hour samples into calendar-day buckets keyed
// by UTC date truncation. The first sample of a date seeds the day and owns
// its descriptive fields; later samples on the same date only widen the
// min/max range. Entries come back in first-seen order, truncated to five.
func DailyFromSamples(samples []gateway.ForecastSample) []t.ForecastDay {
	byDate := make(map[string]int)
	days := make([]t.ForecastDay, 0, maxForecastDays)

	for _, s := range samples {
		ts := time.Unix(s.Time, 0).UTC()
		dateKey := ts.Format("2006-01-02")

		if i, seen := byDate[dateKey]; seen {
			if s.Main.TempMin < days[i].TempMin {
				days[i].TempMin = s.Main.TempMin
			}
			if s.Main.TempMax > days[i].TempMax {
				days[i].TempMax = s.Main.TempMax
			}
			continue
		}

		var cond gateway.ConditionInfo
		if len(s.Weather) > 0 {
			cond = s.Weather[0]
		}
		byDate[dateKey] = len(days)
		days = append(days, t.ForecastDay{
			Date:        t.TS(ts.Truncate(24 * time.Hour)),
			TempMin:     s.Main.TempMin,
			TempMax:     s.Main.TempMax,
			Humidity:    s.Main.Humidity,
			WindSpeed:   kmh(s.Wind.Speed),
			Description: cond.Description,
			Icon:        cond.Icon,
			Condition:   MapCondition(cond.Id),
		})
	}

	if len(days) > maxForecastDays {
		days = days[:maxForecastDays]
	}
	return days
}
