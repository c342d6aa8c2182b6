package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	t "github.com/weathercast/weathercast-service/internal/types"
	"golang.org/x/time/rate"
)

// RequestType selects which upstream payload the gateway resolves.
const (
	TypeCurrent  = "current"
	TypeForecast = "forecast"
	TypeOneCall  = "onecall"
)

// Request is the typed request accepted by the upstream gateway. Exactly one
// of City or (Lat, Lon) must be present.
type Request struct {
	City string   `json:"city,omitempty"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
	Type string   `json:"type"`
}

type ClientOption func(*Client)

type Client struct {
	baseUrl   string
	authToken string
	hc        *http.Client
	limiter   *rate.Limiter
}

func BaseUrlOption(baseUrl string) ClientOption {
	return func(c *Client) {
		c.baseUrl = baseUrl
	}
}

func AuthTokenOption(token string) ClientOption {
	return func(c *Client) {
		c.authToken = token
	}
}

func HTTPClientOption(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.hc = hc
	}
}

// RateLimitOption bounds outbound request rate so a burst of user fetches
// cannot hammer the upstream.
func RateLimitOption(rps float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func New(opts ...ClientOption) *Client {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	if c.baseUrl == "" {
		panic("Missing baseUrl in gateway client")
	}
	if c.hc == nil {
		c.hc = &http.Client{Timeout: 15 * time.Second}
	}
	return c
}

// Current resolves the location and returns the raw current-conditions payload.
func (c *Client) Current(ctx context.Context, req Request) (*CurrentPayload, error) {
	req.Type = TypeCurrent
	var payload CurrentPayload
	if err := c.do(ctx, req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Forecast returns the raw 5-day/3-hour forecast payload.
func (c *Client) Forecast(ctx context.Context, req Request) (*ForecastPayload, error) {
	req.Type = TypeForecast
	var payload ForecastPayload
	if err := c.do(ctx, req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// OneCall returns the one-call payload carrying alerts. The upstream may not
// have the endpoint available; callers treat any failure here as "no alerts".
func (c *Client) OneCall(ctx context.Context, req Request) (*OneCallPayload, error) {
	req.Type = TypeOneCall
	var payload OneCallPayload
	if err := c.do(ctx, req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) do(ctx context.Context, req Request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return classifyTransport(err)
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return t.NewError(t.CodeUnknown, false, "error marshalling gateway request: %s", err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl, bytes.NewReader(body))
	if err != nil {
		return t.NewError(t.CodeUnknown, false, "error building gateway request: %s", err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyFailure(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return t.NewError(t.CodeUnknown, true, "error unmarshalling %s response from gateway: %s", req.Type, err.Error())
	}
	return nil
}

// errorEnvelope is the gateway's failure shape.
type errorEnvelope struct {
	Error *t.WeatherError `json:"error"`
}

// classifyFailure passes an upstream error envelope through unchanged, falling
// back to a status-based classification when the body carries no envelope.
func classifyFailure(status int, body []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil && envelope.Error.Code != "" {
		return envelope.Error
	}
	switch {
	case status == http.StatusUnauthorized:
		return t.NewError(t.CodeAPIKeyInvalid, false, "invalid API key")
	case status == http.StatusNotFound:
		return t.NewError(t.CodeCityNotFound, false, "location not found")
	case status == http.StatusTooManyRequests:
		return t.NewError(t.CodeRateLimit, true, "too many requests")
	case status == http.StatusBadRequest:
		return t.NewError(t.CodeInvalidInput, false, "invalid request")
	case status >= 500:
		return t.NewError(t.CodeServerError, true, "gateway returned status %d", status)
	default:
		return t.NewError(t.CodeUnknown, true, "unexpected gateway status %d", status)
	}
}

func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return t.NewError(t.CodeTimeout, true, "gateway request timed out: %s", err.Error())
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return t.NewError(t.CodeTimeout, true, "gateway request timed out: %s", err.Error())
	}
	return t.NewError(t.CodeNetworkError, true, "network error reaching gateway: %s", err.Error())
}
