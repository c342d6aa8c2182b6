package gateway

// Raw provider-shaped payloads returned by the gateway. These shapes never
// escape the fetch pipeline; normalization into canonical entities happens
// immediately after decode.

type GeoLocation struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
}

type ConditionInfo struct {
	Id          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type MainReadings struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Humidity  float64 `json:"humidity"`
	Pressure  float64 `json:"pressure"`
}

type WindReadings struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

type SunTimes struct {
	Sunrise int64 `json:"sunrise"`
	Sunset  int64 `json:"sunset"`
}

type AirPollution struct {
	Aqi      int     `json:"aqi"`
	Category string  `json:"category"`
	PM25     float64 `json:"pm2_5"`
	PM10     float64 `json:"pm10"`
}

type CurrentBody struct {
	Weather    []ConditionInfo `json:"weather"`
	Main       MainReadings    `json:"main"`
	Wind       WindReadings    `json:"wind"`
	Visibility int             `json:"visibility"`
	Time       int64           `json:"dt"`
	Sys        SunTimes        `json:"sys"`
	Name       string          `json:"name"`
}

type CurrentPayload struct {
	Location     GeoLocation   `json:"location"`
	Weather      CurrentBody   `json:"weather"`
	AirPollution *AirPollution `json:"airPollution"`
}

type ForecastSample struct {
	Time    int64           `json:"dt"`
	Main    MainReadings    `json:"main"`
	Weather []ConditionInfo `json:"weather"`
	Wind    WindReadings    `json:"wind"`
	Pop     float64         `json:"pop"`
}

type ForecastBody struct {
	List []ForecastSample `json:"list"`
}

type ForecastPayload struct {
	Location GeoLocation  `json:"location"`
	Forecast ForecastBody `json:"forecast"`
}

type AlertInfo struct {
	SenderName  string   `json:"sender_name"`
	Event       string   `json:"event"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type OneCallBody struct {
	Alerts []AlertInfo `json:"alerts"`
}

type OneCallPayload struct {
	Location  GeoLocation `json:"location"`
	Data      OneCallBody `json:"data"`
	HasAlerts bool        `json:"hasAlerts"`
}
