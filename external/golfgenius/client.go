package golfgenius

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/resilience"
	"github.com/go-playground/validator/v10"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL    = "https://www.golfgenius.com"
	defaultTimeout    = 30 * time.Second
	apiKeyPlaceholder = "{api_key}"
	maxResponseBytes  = 8 << 20
	bodyPreviewLimit  = 240
)

var errGolfGeniusTransient = crerr.New("golf genius transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Retry      resilience.RetryPolicy
	// RequestsPerSecond paces outgoing attempts. Zero disables pacing.
	RequestsPerSecond float64
	Logger            *logging.Logger
	CircuitBreaker    resilience.BreakerConfig
	// Sleep replaces the backoff wait, mainly for tests.
	Sleep   func(ctx context.Context, d time.Duration) error
	OnRetry func(RetryEvent)
}

// RetryEvent describes one scheduled retry.
type RetryEvent struct {
	Endpoint string
	Method   string
	Attempt  int
	Wait     time.Duration
	Status   int
	Err      error
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	retry      resilience.RetryPolicy
	limiter    *rate.Limiter
	logger     *logging.Logger
	breaker    *resilience.Breaker
	flight     singleflight.Group
	validate   *validator.Validate
	sleep      func(ctx context.Context, d time.Duration) error
	onRetry    func(RetryEvent)
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = resilience.Sleep
	}

	retry := cfg.Retry
	if retry == (resilience.RetryPolicy{}) {
		retry = resilience.DefaultRetryPolicy()
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		retry:      resilience.NormalizeRetryPolicy(retry),
		limiter:    limiter,
		logger:     logger.Named("golfgenius"),
		breaker:    resilience.NewBreaker("golfgenius", cfg.CircuitBreaker, isTransient, logger),
		validate:   validator.New(),
		sleep:      sleep,
		onRetry:    cfg.OnRetry,
	}
}

// getJSON fetches endpoint and decodes the body into T, validating it against T's tags.
func getJSON[T any](ctx context.Context, c *Client, endpoint string, query url.Values) (T, error) {
	var out T
	raw, err := c.request(ctx, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return out, err
	}
	return decodeJSON[T](c, endpoint, raw)
}

func sendJSON[T any](ctx context.Context, c *Client, method, endpoint string, body any) (T, error) {
	var out T
	raw, err := c.request(ctx, method, endpoint, nil, body)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	return decodeJSON[T](c, endpoint, raw)
}

func decodeJSON[T any](c *Client, endpoint string, raw []byte) (T, error) {
	var out T
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return out, &Error{
			Kind:     KindValidation,
			Endpoint: endpoint,
			Issues:   issuesFromValidation(err),
			Payload:  raw,
			Err:      err,
		}
	}
	if err := c.validatePayload(out); err != nil {
		return out, &Error{
			Kind:     KindValidation,
			Endpoint: endpoint,
			Issues:   issuesFromValidation(err),
			Payload:  raw,
			Err:      err,
		}
	}
	return out, nil
}

func (c *Client) validatePayload(v any) error {
	switch reflect.Indirect(reflect.ValueOf(v)).Kind() {
	case reflect.Slice, reflect.Array:
		return c.validate.Var(v, "dive")
	case reflect.Struct:
		return c.validate.Struct(v)
	default:
		return nil
	}
}

// request runs one provider call through the breaker and the retry loop.
// Identical concurrent GETs share a single round trip.
func (c *Client) request(ctx context.Context, method, endpoint string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		encoded, err := sonic.Marshal(body)
		if err != nil {
			return nil, crerr.Wrapf(err, "encode request body endpoint=%s", endpoint)
		}
		payload = encoded
	}

	fullURL := c.buildURL(endpoint, query)
	run := func(ctx context.Context) (any, error) {
		return c.breaker.Execute(func() (any, error) {
			return c.execute(ctx, method, endpoint, fullURL, payload)
		})
	}

	var (
		out any
		err error
	)
	if method == http.MethodGet {
		// The shared call outlives any single waiter; each waiter honours its own ctx.
		shared := context.WithoutCancel(ctx)
		ch := c.flight.DoChan(method+" "+fullURL, func() (any, error) { return run(shared) })
		select {
		case res := <-ch:
			out, err = res.Val, res.Err
		case <-ctx.Done():
			return nil, &Error{Kind: KindAPI, Endpoint: endpoint, Err: ctx.Err()}
		}
	} else {
		out, err = run(ctx)
	}
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "golf genius circuit breaker rejected request", "endpoint", endpoint, "state", c.breaker.State())
			return nil, &Error{Kind: KindAPI, Endpoint: endpoint, Err: err}
		}
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) execute(ctx context.Context, method, endpoint, fullURL string, payload []byte) ([]byte, error) {
	attempts := c.retry.Attempts()
	var (
		lastStatus     int
		lastRetryAfter time.Duration
		lastErr        error
	)

	for attempt := 0; attempt < attempts; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, &Error{Kind: KindAPI, Endpoint: endpoint, Err: err}
			}
		}

		resp, raw, err := c.do(ctx, method, fullURL, payload)
		var retryAfter time.Duration
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, &Error{Kind: KindAPI, Endpoint: endpoint, Err: ctx.Err()}
			}
			lastStatus = 0
			lastErr = crerr.Mark(crerr.Newf("send request: %s", c.redact(err.Error())), errGolfGeniusTransient)
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return raw, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			retryAfter = parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())
			lastStatus = resp.StatusCode
			lastRetryAfter = retryAfter
			lastErr = crerr.Mark(crerr.Newf("rate limited body=%s", abbreviate(string(raw), bodyPreviewLimit)), errGolfGeniusTransient)
		case resp.StatusCode == http.StatusUnauthorized:
			return nil, &Error{
				Kind:       KindAuth,
				Endpoint:   endpoint,
				Status:     resp.StatusCode,
				StatusText: http.StatusText(resp.StatusCode),
				Body:       strings.TrimSpace(c.redact(string(raw))),
			}
		default:
			apiErr := &Error{
				Kind:       KindAPI,
				Endpoint:   endpoint,
				Status:     resp.StatusCode,
				StatusText: http.StatusText(resp.StatusCode),
				Body:       strings.TrimSpace(c.redact(string(raw))),
			}
			if resp.StatusCode >= http.StatusInternalServerError {
				apiErr.Err = crerr.Mark(crerr.Newf("provider status=%d", resp.StatusCode), errGolfGeniusTransient)
			}
			return nil, apiErr
		}

		if attempt == attempts-1 {
			break
		}
		wait := c.retry.Delay(attempt, retryAfter)
		c.logger.WarnContext(ctx, "golf genius request failed, retrying",
			"endpoint", endpoint,
			"method", method,
			"attempt", attempt+1,
			"status", lastStatus,
			"wait", wait.String(),
			"error", lastErr,
		)
		if c.onRetry != nil {
			c.onRetry(RetryEvent{Endpoint: endpoint, Method: method, Attempt: attempt + 1, Wait: wait, Status: lastStatus, Err: lastErr})
		}
		if err := c.sleep(ctx, wait); err != nil {
			return nil, &Error{Kind: KindAPI, Endpoint: endpoint, Err: err}
		}
	}

	if lastStatus == http.StatusTooManyRequests {
		c.logger.WarnContext(ctx, "golf genius rate limit retries exhausted", "endpoint", endpoint, "attempts", attempts)
		return nil, &Error{
			Kind:       KindRateLimit,
			Endpoint:   endpoint,
			Status:     lastStatus,
			StatusText: http.StatusText(lastStatus),
			RetryAfter: lastRetryAfter,
			Err:        lastErr,
		}
	}
	c.logger.WarnContext(ctx, "golf genius request failed", "endpoint", endpoint, "attempts", attempts, "error", lastErr)
	return nil, &Error{Kind: KindAPI, Endpoint: endpoint, Err: lastErr}
}

func (c *Client) do(ctx context.Context, method, fullURL string, payload []byte) (*http.Response, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, nil, crerr.Wrap(err, "read response body")
	}
	return resp, raw, nil
}

func (c *Client) buildURL(endpoint string, query url.Values) string {
	path := strings.ReplaceAll(endpoint, apiKeyPlaceholder, url.PathEscape(c.apiKey))

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	if !strings.HasPrefix(path, "/") {
		_ = buf.WriteByte('/')
	}
	_, _ = buf.WriteString(path)
	if encoded := query.Encode(); encoded != "" {
		_ = buf.WriteByte('?')
		_, _ = buf.WriteString(encoded)
	}
	return buf.String()
}

func (c *Client) redact(value string) string {
	if c.apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, c.apiKey, "REDACTED")
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	return crerr.Is(err, errGolfGeniusTransient)
}

// parseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

func abbreviate(text string, limit int) string {
	text = strings.TrimSpace(text)
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
