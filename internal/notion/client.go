package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/salmonumbrella/notion-sdk-go/internal/debug"
	ctxerrors "github.com/salmonumbrella/notion-sdk-go/internal/errors"
	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

const (
	DefaultBaseURL   = "https://api.notion.com"
	DefaultVersion   = "2021-05-13"
	DefaultUserAgent = "notion-sdk-go"
	defaultTimeout   = 60 * time.Second
	maxRetries       = 3
	baseDelay        = 1 * time.Second

	// Circuit breaker defaults
	defaultCircuitBreakerThreshold       = 5
	defaultCircuitBreakerRecoveryTimeout = 30 * time.Second
)

// ErrCircuitOpen is returned when the circuit breaker is open
var ErrCircuitOpen = errors.New("circuit breaker is open - too many consecutive API failures")

// circuitBreaker stops sending requests after repeated server failures
type circuitBreaker struct {
	mu              sync.Mutex
	failures        int
	lastFailure     time.Time
	open            bool
	threshold       int
	recoveryTimeout time.Duration
	enabled         bool
}

func (cb *circuitBreaker) recordSuccess() {
	if !cb.enabled {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.open {
		slog.Info("circuit breaker recovered", "component", "circuit_breaker")
	}
	cb.failures = 0
	cb.open = false
}

// recordFailure returns true if the circuit just opened
func (cb *circuitBreaker) recordFailure() bool {
	if !cb.enabled {
		return false
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = time.Now()
	if cb.failures >= cb.threshold && !cb.open {
		cb.open = true
		slog.Warn("circuit breaker opened", "component", "circuit_breaker", "failures", cb.failures)
		return true
	}
	return false
}

// isOpen half-opens the circuit once the recovery timeout has passed
func (cb *circuitBreaker) isOpen() bool {
	if !cb.enabled {
		return false
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if !cb.open {
		return false
	}
	if time.Since(cb.lastFailure) > cb.recoveryTimeout {
		cb.open = false
		cb.failures = 0
		slog.Debug("circuit breaker half-open, attempting recovery", "component", "circuit_breaker")
		return false
	}
	return true
}

// Client is the Notion API client. Responses are decoded into internal/model
// entities; decode failures surface as *model.DecodeError, HTTP failures as
// *APIError.
type Client struct {
	httpClient     *http.Client
	token          string
	baseURL        string
	version        string
	userAgent      string
	disableAuth    bool
	maxRetries     int
	retryDelay     time.Duration
	circuitBreaker *circuitBreaker
	rateLimiter    *RateLimitTracker
}

// NewClient creates a new Notion API client with the given token
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		token:      token,
		baseURL:    normalizeBaseURL(DefaultBaseURL),
		version:    DefaultVersion,
		userAgent:  DefaultUserAgent,
		maxRetries: maxRetries,
		retryDelay: baseDelay,
		circuitBreaker: &circuitBreaker{
			threshold:       defaultCircuitBreakerThreshold,
			recoveryTimeout: defaultCircuitBreakerRecoveryTimeout,
		},
		rateLimiter: NewRateLimitTracker(),
	}
}

// normalizeBaseURL makes sure the API root ends in /v1.
func normalizeBaseURL(base string) string {
	base = strings.TrimRight(base, "/")
	if !strings.HasSuffix(base, "/v1") {
		base += "/v1"
	}
	return base
}

// WithHTTPClient sets a custom HTTP client
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

// WithBaseURL sets the API root. "/v1" is appended when missing.
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.baseURL = normalizeBaseURL(baseURL)
	}
	return c
}

// WithVersion sets the Notion-Version header.
func (c *Client) WithVersion(version string) *Client {
	if version != "" {
		c.version = version
	}
	return c
}

// WithUserAgent sets the User-Agent header.
func (c *Client) WithUserAgent(ua string) *Client {
	if ua != "" {
		c.userAgent = ua
	}
	return c
}

// WithTimeout sets the per-request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.httpClient.Timeout = d
	}
	return c
}

// WithAuthHeaderDisabled disables sending the default Authorization header.
func (c *Client) WithAuthHeaderDisabled() *Client {
	c.disableAuth = true
	return c
}

// WithMaxRetries sets the maximum number of retries for transient errors.
func (c *Client) WithMaxRetries(n int) *Client {
	c.maxRetries = n
	return c
}

// WithRetryDelay sets the initial backoff interval.
func (c *Client) WithRetryDelay(d time.Duration) *Client {
	c.retryDelay = d
	return c
}

// WithCircuitBreaker enables circuit breaker with custom threshold and recovery timeout
func (c *Client) WithCircuitBreaker(threshold int, recoveryTimeout time.Duration) *Client {
	c.circuitBreaker.enabled = true
	c.circuitBreaker.threshold = threshold
	c.circuitBreaker.recoveryTimeout = recoveryTimeout
	return c
}

// EnableCircuitBreaker enables circuit breaker with default settings
func (c *Client) EnableCircuitBreaker() *Client {
	c.circuitBreaker.enabled = true
	return c
}

// WithDebug enables debug mode for HTTP request/response logging
func (c *Client) WithDebug() *Client {
	return c.WithDebugOutput(os.Stderr)
}

// WithDebugOutput logs requests and responses to w.
func (c *Client) WithDebugOutput(w io.Writer) *Client {
	c.httpClient.Transport = debug.NewDebugTransport(c.httpClient.Transport, w)
	return c
}

// BaseURL returns the API root including /v1.
func (c *Client) BaseURL() string { return c.baseURL }

// Version returns the Notion-Version sent with every request.
func (c *Client) Version() string { return c.version }

// do performs one API operation with retries and returns the parsed body.
func (c *Client) do(ctx context.Context, ep Endpoint, path string, query url.Values, body any) (model.Raw, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	if c.circuitBreaker.isOpen() {
		return nil, ctxerrors.WrapContext(ep.Method, reqURL, 0, ErrCircuitOpen)
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	policy := &retryPolicy{BackOff: c.newBackOff()}
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(max(c.maxRetries, 0))), ctx)

	var raw model.Raw
	attempt := 0
	op := func() error {
		attempt++
		var err error
		raw, err = c.doOnce(ctx, ep.Method, reqURL, payload)
		policy.lastErr = err
		if err == nil {
			return nil
		}
		if shouldRetry(ep, err) {
			return err
		}
		return backoff.Permanent(err)
	}
	notify := func(err error, delay time.Duration) {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			slog.Debug("rate limited, waiting before retry",
				"method", ep.Method,
				"path", path,
				"attempt", attempt,
				"delay", delay.String(),
				"retry_after", apiErr.RetryAfter.String())
			return
		}
		slog.Debug("retrying request",
			"method", ep.Method,
			"path", path,
			"attempt", attempt,
			"delay", delay.String())
	}

	if err := backoff.RetryNotify(op, b, notify); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 500 {
			c.circuitBreaker.recordFailure()
		}
		return nil, ctxerrors.WrapContext(ep.Method, reqURL, getStatusCode(err), err)
	}

	c.circuitBreaker.recordSuccess()
	return raw, nil
}

func (c *Client) newBackOff() backoff.BackOff {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = c.retryDelay
	expo.Multiplier = 2
	expo.RandomizationFactor = 0.25
	expo.MaxElapsedTime = 0
	return expo
}

// retryPolicy prefers the server's Retry-After over the exponential delay.
type retryPolicy struct {
	backoff.BackOff
	lastErr error
}

func (p *retryPolicy) NextBackOff() time.Duration {
	next := p.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	var apiErr *APIError
	if errors.As(p.lastErr, &apiErr) && apiErr.RetryAfter > 0 {
		return apiErr.RetryAfter
	}
	return next
}

// shouldRetry retries 429 everywhere and 5xx on idempotent endpoints.
func shouldRetry(ep Endpoint, err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return apiErr.StatusCode >= 500 && ep.Idempotent
}

func (c *Client) doOnce(ctx context.Context, method, reqURL string, payload []byte) (model.Raw, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if !c.disableAuth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Err: err}
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.rateLimiter.Update(resp)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, &TimeoutError{Err: err}
		}
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, newAPIError(resp, data)
	}

	raw, err := model.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return raw, nil
}

// newAPIError keeps the structured body only when it carries a known code.
func newAPIError(resp *http.Response, data []byte) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Body:       string(data),
		Header:     resp.Header.Clone(),
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}
	var errResp ErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && IsAPIErrorCode(string(errResp.Code)) {
		if errResp.Status == 0 {
			errResp.Status = resp.StatusCode
		}
		apiErr.Response = &errResp
	}
	return apiErr
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// parseRetryAfter parses the Retry-After header value
// Returns the duration to wait, or 0 if not parseable
func parseRetryAfter(retryAfter string) time.Duration {
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(retryAfter); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}

	return 0
}

// getStatusCode extracts the HTTP status code from an error if it's an APIError
func getStatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetRateLimitInfo returns the current rate limit information
// Returns nil if no API requests have been made yet
func (c *Client) GetRateLimitInfo() *RateLimitInfo {
	return c.rateLimiter.Get()
}

// decodeResponse runs dec over raw, naming what failed to decode.
func decodeResponse[T any](raw model.Raw, what string, dec model.Decoder[T]) (T, error) {
	v, err := dec(raw)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to decode %s: %w", what, err)
	}
	return v, nil
}
