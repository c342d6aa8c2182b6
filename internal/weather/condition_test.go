package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weathercast/weathercast-service/internal/types"
)

func TestMapCondition_Bands(t *testing.T) {
	tests := []struct {
		name string
		code int
		want types.Condition
	}{
		{"thunderstorm lower bound", 200, types.ConditionThunderstorm},
		{"thunderstorm upper bound", 299, types.ConditionThunderstorm},
		{"drizzle lower bound", 300, types.ConditionDrizzle},
		{"drizzle upper bound", 399, types.ConditionDrizzle},
		{"rain lower bound", 500, types.ConditionRain},
		{"rain upper bound", 599, types.ConditionRain},
		{"snow lower bound", 600, types.ConditionSnow},
		{"snow upper bound", 699, types.ConditionSnow},
		{"mist lower bound", 700, types.ConditionMist},
		{"mist upper bound", 799, types.ConditionMist},
		{"exactly clear", 800, types.ConditionClear},
		{"clouds above clear", 801, types.ConditionClouds},
		{"gap below thunderstorm", 100, types.ConditionClouds},
		{"gap between drizzle and rain", 450, types.ConditionClouds},
		{"negative code", -1, types.ConditionClouds},
		{"zero", 0, types.ConditionClouds},
		{"far above all bands", 9001, types.ConditionClouds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapCondition(tt.code))
		})
	}
}
