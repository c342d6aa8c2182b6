package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weathercast/weathercast-service/internal/types"
)

func TestConvert_CelsiusIsIdentity(t *testing.T) {
	for _, v := range []float64{-40, -17.8, 0, 0.5, 21.3, 100} {
		assert.Equal(t, v, Convert(v, types.UnitCelsius))
	}
}

func TestConvert_Fahrenheit(t *testing.T) {
	tests := []struct {
		celsius float64
		want    float64
	}{
		{0, 32},
		{100, 212},
		{-40, -40},
		{21.3, 70}, // 70.34 rounds down
		{37, 99},   // 98.6 rounds up
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Convert(tt.celsius, types.UnitFahrenheit))
	}
}

func TestConvertDaily_DoesNotMutateInput(t *testing.T) {
	days := []types.ForecastDay{{TempMin: 0, TempMax: 10}}
	out := ConvertDaily(days, types.UnitFahrenheit)

	assert.Equal(t, 32.0, out[0].TempMin)
	assert.Equal(t, 50.0, out[0].TempMax)
	assert.Equal(t, 0.0, days[0].TempMin)
	assert.Equal(t, 10.0, days[0].TempMax)
}

func TestConvertHourly(t *testing.T) {
	hours := []types.HourlyForecast{{Temperature: 100, FeelsLike: 0}}
	out := ConvertHourly(hours, types.UnitFahrenheit)

	assert.Equal(t, 212.0, out[0].Temperature)
	assert.Equal(t, 32.0, out[0].FeelsLike)
}
