package weather

import (
	t "github.com/weathercast/weathercast-service/internal/types"
)

// MapCondition maps a provider numeric weather code onto the normalized
// condition category. Total over all ints; unknown codes read as clouds.
func MapCondition(code int) t.Condition {
	switch {
	case code >= 200 && code < 300:
		return t.ConditionThunderstorm
	case code >= 300 && code < 400:
		return t.ConditionDrizzle
	case code >= 500 && code < 600:
		return t.ConditionRain
	case code >= 600 && code < 700:
		return t.ConditionSnow
	case code >= 700 && code < 800:
		return t.ConditionMist
	case code == 800:
		return t.ConditionClear
	default:
		return t.ConditionClouds
	}
}
