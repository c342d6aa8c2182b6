package weathercast

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weathercast/weathercast-service/internal/types"
)

func TestWeatherHandler_ConvertsAtDisplayTime(t *testing.T) {
	h := newHarness(t, healthyGateway())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/weather?city=London&units=fahrenheit", nil)
	h.svc.WeatherHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp weatherResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, types.UnitFahrenheit, resp.Units)
	assert.Equal(t, 54.0, resp.Current.Temperature, "12C rounds to 54F")
	assert.False(t, resp.FromCache)

	// The same fetch served in celsius carries the canonical value.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/weather?city=London&units=celsius", nil)
	h.svc.WeatherHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 12.0, resp.Current.Temperature)
}

func TestWeatherHandler_UsesPersistedUnitPreference(t *testing.T) {
	h := newHarness(t, healthyGateway())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/prefs",
		strings.NewReader(`{"unit":"fahrenheit"}`))
	h.svc.PrefsHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/weather?city=London", nil)
	h.svc.WeatherHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp weatherResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, types.UnitFahrenheit, resp.Units)
}

func TestWeatherHandler_ErrorBody(t *testing.T) {
	h := newHarness(t, healthyGateway())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/weather?city=", nil)
	h.svc.WeatherHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, types.CodeInvalidInput, resp.Error.Code)
	assert.False(t, resp.Error.Retryable)
}

func TestCitiesHandler_Lifecycle(t *testing.T) {
	h := newHarness(t, healthyGateway())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cities",
		strings.NewReader(`{"name":"London","country":"GB","lat":51.51,"lon":-0.13}`))
	h.svc.CitiesHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []types.SavedCity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.NotEmpty(t, list[0].ID)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/cities?id="+list[0].ID, nil)
	h.svc.CitiesHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestCitiesHandler_RejectsInvalidPayload(t *testing.T) {
	h := newHarness(t, healthyGateway())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cities", strings.NewReader("{not json"))
	h.svc.CitiesHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPrefsHandler_RejectsUnknownUnit(t *testing.T) {
	h := newHarness(t, healthyGateway())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/prefs", strings.NewReader(`{"unit":"kelvin"}`))
	h.svc.PrefsHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusForCode(t *testing.T) {
	cases := []struct {
		code types.ErrorCode
		want int
	}{
		{types.CodeInvalidInput, http.StatusBadRequest},
		{types.CodeAPIKeyInvalid, http.StatusUnauthorized},
		{types.CodeLocationDenied, http.StatusForbidden},
		{types.CodeCityNotFound, http.StatusNotFound},
		{types.CodeRateLimit, http.StatusTooManyRequests},
		{types.CodeNetworkError, http.StatusServiceUnavailable},
		{types.CodeTimeout, http.StatusGatewayTimeout},
		{types.CodeServerError, http.StatusInternalServerError},
		{types.CodeUnknown, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusForCode(tc.code), string(tc.code))
	}
}
