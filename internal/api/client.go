// Package api is the REST client for the remote healthcare platform. Every
// request from every view goes through the same pipeline: bearer header
// injection, transient-failure retry, and centralized response
// interception, so credential expiry is handled in exactly one place.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"careportal/internal/common"
	"careportal/internal/logging"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// TokenSource supplies the current bearer credential, or "" when the
// session is anonymous. The session manager satisfies this.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	log            logging.Logger
	onUnauthorized func(ctx context.Context)
	maxRetries     uint64
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests, custom
// timeouts).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithUnauthorizedHook registers the callback invoked once per rejected
// credential, before ErrorUnauthorized is returned to the caller.
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithMaxRetries overrides how many times transient failures are retried.
func WithMaxRetries(n uint64) Option {
	return func(c *Client) { c.maxRetries = n }
}

func NewClient(baseURL string, tokens TokenSource, log logging.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Timeout: 15 * time.Second},
		tokens:     tokens,
		log:        log,
		maxRetries: 2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody is the platform's error payload; both field names occur in the
// wild.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorBody) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// doJSON sends a JSON request and decodes the JSON response into out (which
// may be nil). Transport errors and 5xx responses are retried with capped
// exponential backoff before surfacing as common.ErrUnavailable.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(250*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return c.send(ctx, req, out)
	})
}

// send runs one attempt: header injection, the HTTP round trip, and the
// response interceptor. Errors wrapped with retry.RetryableError are the
// only ones retried by doJSON.
func (c *Client) send(ctx context.Context, req *http.Request, out any) error {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}
	req.Header.Set(common.RequestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		return retry.RetryableError(fmt.Errorf("%w: %v", common.ErrUnavailable, err))
	}
	defer resp.Body.Close()

	return c.intercept(ctx, req, resp, out)
}

// intercept maps the response status to the client's sentinel errors. This
// is the single place credential rejection is detected.
func (c *Client) intercept(ctx context.Context, req *http.Request, resp *http.Response, out any) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil

	case resp.StatusCode == http.StatusUnauthorized:
		c.log.Warn(ctx, "credential rejected", "method", req.Method, "path", req.URL.Path)
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return common.ErrorUnauthorized

	// The platform reports free-tier limits as 402 or, for rate-limited
	// resources like chat, as 429.
	case resp.StatusCode == http.StatusPaymentRequired,
		resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", common.ErrPlanLimit, readErrorText(resp.Body))

	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, common.ErrorNotFound)

	case resp.StatusCode >= 500:
		return retry.RetryableError(fmt.Errorf("%w: status %d", common.ErrUnavailable, resp.StatusCode))

	default:
		return fmt.Errorf("%s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, readErrorText(resp.Body))
	}
}

func readErrorText(r io.Reader) string {
	var eb errorBody
	if err := json.NewDecoder(r).Decode(&eb); err != nil {
		return ""
	}
	return eb.text()
}
