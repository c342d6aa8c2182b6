package types

import (
	"encoding/json"
	"strconv"
	"time"
)

// Condition is the normalized weather condition category, provider-independent.
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionClouds       Condition = "clouds"
	ConditionRain         Condition = "rain"
	ConditionDrizzle      Condition = "drizzle"
	ConditionThunderstorm Condition = "thunderstorm"
	ConditionSnow         Condition = "snow"
	ConditionMist         Condition = "mist"
	ConditionFog          Condition = "fog"
)

// TemperatureUnit selects the display unit. Canonical storage is always celsius.
type TemperatureUnit string

const (
	UnitCelsius    TemperatureUnit = "celsius"
	UnitFahrenheit TemperatureUnit = "fahrenheit"
)

// Timestamp is a time.Time that serializes as epoch milliseconds, matching the
// persisted cache entry format.
type Timestamp struct {
	time.Time
}

func TS(t time.Time) Timestamp {
	return Timestamp{t}
}

func FromMillis(ms int64) Timestamp {
	return Timestamp{time.UnixMilli(ms).UTC()}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	ms, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

type Location struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
}

type AirQuality struct {
	AQI      int     `json:"aqi"`
	Category string  `json:"category"`
	PM25     float64 `json:"pm2_5"`
	PM10     float64 `json:"pm10"`
}

type CurrentConditions struct {
	Location    Location    `json:"location"`
	Temperature float64     `json:"temperature"`
	FeelsLike   float64     `json:"feelsLike"`
	Humidity    float64     `json:"humidity"`
	WindSpeed   float64     `json:"windSpeed"`
	WindDeg     int         `json:"windDeg"`
	Pressure    float64     `json:"pressure"`
	Visibility  int         `json:"visibility"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Condition   Condition   `json:"condition"`
	Timestamp   Timestamp   `json:"timestamp"`
	Sunrise     Timestamp   `json:"sunrise"`
	Sunset      Timestamp   `json:"sunset"`
	AirQuality  *AirQuality `json:"airQuality,omitempty"`
}

type ForecastDay struct {
	Date        Timestamp `json:"date"`
	TempMin     float64   `json:"tempMin"`
	TempMax     float64   `json:"tempMax"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Condition   Condition `json:"condition"`
}

type HourlyForecast struct {
	Time        Timestamp `json:"time"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feelsLike"`
	Humidity    float64   `json:"humidity"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Condition   Condition `json:"condition"`
	Pop         float64   `json:"pop"`
	WindSpeed   float64   `json:"windSpeed"`
}

type WeatherAlert struct {
	Event       string    `json:"event"`
	Sender      string    `json:"sender"`
	Start       Timestamp `json:"start"`
	End         Timestamp `json:"end"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
}

// CachedSnapshot is the full consolidated result persisted after every
// successful fetch and consulted as an offline fallback.
type CachedSnapshot struct {
	Current  CurrentConditions `json:"current"`
	Daily    []ForecastDay     `json:"daily"`
	Hourly   []HourlyForecast  `json:"hourly"`
	Alerts   []WeatherAlert    `json:"alerts"`
	CachedAt Timestamp         `json:"cachedAt"`
}

// Preferences are the independently persisted user settings.
type Preferences struct {
	Unit     TemperatureUnit `json:"unit"`
	LastCity string          `json:"lastCity,omitempty"`
}

type SavedCity struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

func (s CachedSnapshot) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *CachedSnapshot) UnmarshalBinary(b []byte) error {
	return json.Unmarshal(b, s)
}
