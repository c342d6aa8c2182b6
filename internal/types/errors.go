package types

import "fmt"

// ErrorCode classifies a fetch failure. Classification happens once at the
// gateway boundary and is passed through unchanged.
type ErrorCode string

const (
	CodeNetworkError   ErrorCode = "NETWORK_ERROR"
	CodeCityNotFound   ErrorCode = "CITY_NOT_FOUND"
	CodeRateLimit      ErrorCode = "RATE_LIMIT"
	CodeAPIKeyInvalid  ErrorCode = "API_KEY_INVALID"
	CodeServerError    ErrorCode = "SERVER_ERROR"
	CodeTimeout        ErrorCode = "TIMEOUT"
	CodeLocationDenied ErrorCode = "LOCATION_DENIED"
	CodeInvalidInput   ErrorCode = "INVALID_INPUT"
	CodeUnknown        ErrorCode = "UNKNOWN"
)

// WeatherError carries a classified failure across the fetch pipeline.
type WeatherError struct {
	Message   string    `json:"message"`
	Code      ErrorCode `json:"code"`
	Retryable bool      `json:"retryable"`
}

func (e *WeatherError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, retryable bool, format string, args ...any) *WeatherError {
	return &WeatherError{
		Message:   fmt.Sprintf(format, args...),
		Code:      code,
		Retryable: retryable,
	}
}
