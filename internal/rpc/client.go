// Package rpc implements a rate-limited JSON-RPC client with retries and endpoint rotation.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"go.uber.org/zap"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultMaxAttempts     = 4
	defaultInitialInterval = 250 * time.Millisecond
	defaultMaxInterval     = 5 * time.Second
	maxResponseSize        = 256 << 20
)

// Config describes how to reach one network's nodes.
type Config struct {
	Endpoints       []string
	RPS             float64
	Timeout         time.Duration
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

type endpoint struct {
	url      string
	redacted string
	user     string
	password string
	auth     bool
}

// Client calls one network's JSON-RPC endpoints.
type Client struct {
	endpoints []endpoint
	next      atomic.Uint64
	ids       atomic.Uint64

	limiter     *Limiter
	httpClient  *http.Client
	metrics     Metrics
	logger      *zap.Logger
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// NewClient validates cfg and builds a client.
func NewClient(cfg Config, metrics Metrics, logger *zap.Logger) (*Client, error) {
	if metrics == nil {
		return nil, errors.New("rpc client metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(cfg.Endpoints) == 0 {
		return nil, errors.New("at least one rpc endpoint is required")
	}
	if cfg.RPS <= 0 {
		return nil, errors.New("rps must be positive")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = defaultInitialInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = defaultMaxInterval
	}

	endpoints := make([]endpoint, 0, len(cfg.Endpoints))
	for _, raw := range cfg.Endpoints {
		ep, err := parseEndpoint(raw)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, ep)
	}

	initial, maxInterval := cfg.InitialInterval, cfg.MaxInterval
	return &Client{
		endpoints:   endpoints,
		limiter:     NewLimiter(cfg.RPS),
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		metrics:     metrics,
		logger:      logger,
		maxAttempts: cfg.MaxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxInterval
			b.MaxElapsedTime = 0
			return b
		},
	}, nil
}

func parseEndpoint(raw string) (endpoint, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return endpoint{}, fmt.Errorf("parse rpc endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return endpoint{}, fmt.Errorf("rpc endpoint %s: unsupported scheme %q", u.Redacted(), u.Scheme)
	}
	ep := endpoint{redacted: u.Redacted()}
	if u.User != nil {
		ep.auth = true
		ep.user = u.User.Username()
		ep.password, _ = u.User.Password()
		u.User = nil
	}
	ep.url = u.String()
	return ep, nil
}

// Call invokes method with params and returns the raw result.
// Transport failures, timeouts, HTTP 429 and 5xx are retried with exponential backoff,
// rotating endpoints between attempts; exhausting the attempts returns *model.TransientFetchError.
// Node error objects are returned as *Error and malformed responses as *model.ProtocolError.
func (c *Client) Call(ctx context.Context, method string, params ...any) (result json.RawMessage, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe(method, err, started)
	}()

	if params == nil {
		params = []any{}
	}

	attempts := 0
	operation := func() error {
		attempts++
		ep := c.current()
		res, callErr := c.do(ctx, ep, method, params)
		if callErr == nil {
			result = res
			return nil
		}
		var retry *retryableError
		if errors.As(callErr, &retry) {
			if len(c.endpoints) > 1 {
				c.next.Add(1)
			}
			return callErr
		}
		return backoff.Permanent(callErr)
	}
	notify := func(err error, d time.Duration) {
		c.metrics.ObserveRetry(method)
		c.logger.Debug("rpc attempt failed, retrying",
			zap.String("method", method),
			zap.Int("attempt", attempts),
			zap.Duration("sleep", d),
			zap.Error(err),
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(c.maxAttempts-1)), ctx)
	if err = backoff.RetryNotify(operation, policy, notify); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var retry *retryableError
		if errors.As(err, &retry) {
			return nil, &model.TransientFetchError{Op: method, Attempts: attempts, Err: retry.err}
		}
		return nil, err
	}
	return result, nil
}

func (c *Client) current() endpoint {
	return c.endpoints[c.next.Load()%uint64(len(c.endpoints))]
}

func (c *Client) do(ctx context.Context, ep endpoint, method string, params []any) (json.RawMessage, error) {
	wait, err := c.limiter.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if wait > 0 {
		c.metrics.ObserveThrottle(wait)
	}

	id := c.ids.Add(1)
	body, err := json.Marshal(request{JSONRPC: "2.0", ID: id, Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("marshal request %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if ep.auth {
		req.SetBasicAuth(ep.user, ep.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, retryable(fmt.Errorf("post %s to %s: %w", method, ep.redacted, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, retryable(fmt.Errorf("read %s response from %s: %w", method, ep.redacted, err))
	}

	var decoded response
	decodeErr := json.Unmarshal(raw, &decoded)

	// Throttling and gateway statuses are retried even when the body carries an error object.
	if throttledOrUnavailable(resp.StatusCode) {
		if decodeErr == nil && decoded.Error != nil {
			return nil, retryable(fmt.Errorf("%s at %s: http status %d: %v", method, ep.redacted, resp.StatusCode, decoded.Error))
		}
		return nil, retryable(fmt.Errorf("%s at %s: http status %d", method, ep.redacted, resp.StatusCode))
	}

	// bitcoind reports node errors as HTTP 500 or 404 with a JSON-RPC body.
	if decodeErr == nil && decoded.Error != nil {
		return nil, decoded.Error
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, retryable(fmt.Errorf("%s at %s: http status %d", method, ep.redacted, resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, model.NewProtocolError(method, fmt.Errorf("http status %d", resp.StatusCode))
	}
	if decodeErr != nil {
		return nil, model.NewProtocolError(method, fmt.Errorf("decode response: %w", decodeErr))
	}
	if string(decoded.ID) != strconv.FormatUint(id, 10) {
		return nil, model.NewProtocolError(method, fmt.Errorf("response id %s does not match request id %d", decoded.ID, id))
	}
	if len(decoded.Result) == 0 {
		return json.RawMessage("null"), nil
	}
	return decoded.Result, nil
}

func throttledOrUnavailable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }

func (e *retryableError) Unwrap() error { return e.err }

func retryable(err error) error {
	return &retryableError{err: err}
}

// IsNull reports whether a result is the JSON null literal.
func IsNull(result json.RawMessage) bool {
	return len(bytes.TrimSpace(result)) == 0 || bytes.Equal(bytes.TrimSpace(result), []byte("null"))
}

// CodeOf returns the JSON-RPC error code of err if it carries one.
func CodeOf(err error) (int, bool) {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr.Code, true
	}
	return 0, false
}
