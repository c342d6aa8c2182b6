package weathercast

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	t "github.com/weathercast/weathercast-service/internal/types"
	"github.com/weathercast/weathercast-service/internal/weather"
)

type weatherResponse struct {
	Current   t.CurrentConditions `json:"current"`
	Daily     []t.ForecastDay     `json:"daily"`
	Hourly    []t.HourlyForecast  `json:"hourly"`
	Alerts    []t.WeatherAlert    `json:"alerts"`
	Units     t.TemperatureUnit   `json:"units"`
	FromCache bool                `json:"fromCache"`
	CachedAt  *t.Timestamp        `json:"cachedAt,omitempty"`
}

type errorResponse struct {
	Error *t.WeatherError `json:"error"`
}

func (s *Service) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/weather", s.WeatherHandler)
	mux.HandleFunc("/cities", s.CitiesHandler)
	mux.HandleFunc("/prefs", s.PrefsHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok")
	})

	s.Logger.Infow("starting http server", "addr", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

func (s *Service) WeatherHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	intent := FetchIntent{City: r.URL.Query().Get("city")}
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr == nil && lonErr == nil {
		intent.Lat, intent.Lon = &lat, &lon
	}

	res, err := s.Fetch(r.Context(), intent)
	if err != nil {
		s.writeError(w, err)
		return
	}

	unit := s.displayUnit(r)
	resp := weatherResponse{
		Current:   weather.ConvertCurrent(res.Current, unit),
		Daily:     weather.ConvertDaily(res.Daily, unit),
		Hourly:    weather.ConvertHourly(res.Hourly, unit),
		Alerts:    res.Alerts,
		Units:     unit,
		FromCache: res.FromCache,
		CachedAt:  res.CachedAt,
	}
	s.writeResponse(w, resp)
}

func (s *Service) CitiesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeResponse(w, s.cities.List(r.Context()))
	case http.MethodPost:
		var city t.SavedCity
		if err := json.NewDecoder(r.Body).Decode(&city); err != nil {
			s.writeError(w, t.NewError(t.CodeInvalidInput, false, "invalid city payload"))
			return
		}
		updated, err := s.cities.Save(r.Context(), city)
		if err != nil {
			s.writeError(w, t.NewError(t.CodeInvalidInput, false, "%s", err.Error()))
			return
		}
		s.writeResponse(w, updated)
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			s.writeError(w, t.NewError(t.CodeInvalidInput, false, "missing 'id' query parameter"))
			return
		}
		updated, err := s.cities.Remove(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, updated)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Service) PrefsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeResponse(w, s.prefs.Load(r.Context()))
	case http.MethodPut:
		var p t.Preferences
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			s.writeError(w, t.NewError(t.CodeInvalidInput, false, "invalid preferences payload"))
			return
		}
		if err := s.prefs.Save(r.Context(), p); err != nil {
			s.writeError(w, t.NewError(t.CodeInvalidInput, false, "%s", err.Error()))
			return
		}
		s.writeResponse(w, p)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// displayUnit resolves the unit for this request: explicit query parameter
// first, persisted preference otherwise.
func (s *Service) displayUnit(r *http.Request) t.TemperatureUnit {
	switch t.TemperatureUnit(r.URL.Query().Get("units")) {
	case t.UnitCelsius:
		return t.UnitCelsius
	case t.UnitFahrenheit:
		return t.UnitFahrenheit
	}
	return s.prefs.Load(r.Context()).Unit
}

func (s *Service) writeError(w http.ResponseWriter, err error) {
	var werr *t.WeatherError
	if !errors.As(err, &werr) {
		werr = t.NewError(t.CodeUnknown, true, "internal error")
	}
	bodyBytes, _ := json.Marshal(errorResponse{Error: werr})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForCode(werr.Code))
	io.WriteString(w, string(bodyBytes[:]))
}

func (s *Service) writeResponse(w http.ResponseWriter, resp any) {
	bodyBytes, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, string(bodyBytes[:]))
}

func statusForCode(code t.ErrorCode) int {
	switch code {
	case t.CodeInvalidInput:
		return http.StatusBadRequest
	case t.CodeAPIKeyInvalid:
		return http.StatusUnauthorized
	case t.CodeLocationDenied:
		return http.StatusForbidden
	case t.CodeCityNotFound:
		return http.StatusNotFound
	case t.CodeRateLimit:
		return http.StatusTooManyRequests
	case t.CodeNetworkError:
		return http.StatusServiceUnavailable
	case t.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
