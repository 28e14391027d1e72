// Package backend is the typed HTTP client for the Mustafa backend REST API.
//
// All business logic (credential verification, photo storage, KPI
// aggregation, AI answers) lives behind this client; the console only shapes
// requests and translates failures into domain errors. Endpoints and wire
// shapes mirror the backend exactly, including its Portuguese field names.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mustafa-app/console/internal/domain"
	"github.com/mustafa-app/console/internal/metrics"
)

// DefaultTimeout bounds every backend call. The backend answers from its own
// database; anything slower than this is treated as unavailable.
const DefaultTimeout = 30 * time.Second

// Client talks to the Mustafa backend.
//
// The zero Client is not usable; construct with New. Clients are safe for
// concurrent use. WithToken derives request-scoped clients cheaply, so one
// base Client per process is the intended usage.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a backend client rooted at baseURL (e.g. "http://backend:8000").
func New(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy of the client whose requests carry the source's
// bearer token. The copy shares the parent's connection pool; only the
// credential-injecting transport differs.
func (c *Client) WithToken(source TokenSource) *Client {
	derived := *c
	httpCopy := *c.http
	httpCopy.Transport = &authTransport{source: source, base: c.http.Transport}
	derived.http = &httpCopy
	return &derived
}

// =============================================================================
// Request Plumbing
// =============================================================================

// endpointLabel collapses numeric path segments so metrics stay low-cardinality.
func endpointLabel(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if _, err := strconv.Atoi(part); err == nil && part != "" {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

// doJSON executes a request and decodes a JSON response body into out.
// Pass nil out to discard the body. Returns domain errors on failure.
func (c *Client) doJSON(ctx context.Context, op, method, path string, query url.Values, body io.Reader, contentType string, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return domain.Internal(err, op, "Failed to build request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequests.WithLabelValues(endpointLabel(path), "error").Inc()
		c.logger.Warn("backend unreachable", "op", op, "path", path, "error", err)
		return domain.Unavailable(err, op, "Could not reach the backend")
	}
	defer resp.Body.Close()

	metrics.BackendRequests.WithLabelValues(endpointLabel(path), strconv.Itoa(resp.StatusCode)).Inc()
	metrics.BackendRequestDuration.WithLabelValues(endpointLabel(path)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(op, resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.Internal(err, op, "Failed to decode backend response")
	}
	return nil
}

// postJSON marshals v and POSTs it as application/json.
func (c *Client) postJSON(ctx context.Context, op, path string, v interface{}, out interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return domain.Internal(err, op, "Failed to encode request")
	}
	return c.doJSON(ctx, op, http.MethodPost, path, nil, bytes.NewReader(payload), "application/json", out)
}

// putJSON marshals v and PUTs it as application/json.
func (c *Client) putJSON(ctx context.Context, op, path string, v interface{}, out interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return domain.Internal(err, op, "Failed to encode request")
	}
	return c.doJSON(ctx, op, http.MethodPut, path, nil, bytes.NewReader(payload), "application/json", out)
}

// =============================================================================
// Error Translation
// =============================================================================

// apiError is the backend's error envelope. `detail` is usually a string;
// validation failures (422) carry a list of field errors instead.
type apiError struct {
	Detail json.RawMessage `json:"detail"`
}

// detailMessage flattens the backend's detail payload into one line.
func (e apiError) detailMessage() string {
	if len(e.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return s
	}

	// Validation errors arrive as [{"loc": [...], "msg": "...", ...}, ...].
	var items []struct {
		Loc []interface{} `json:"loc"`
		Msg string        `json:"msg"`
	}
	if err := json.Unmarshal(e.Detail, &items); err == nil && len(items) > 0 {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			field := ""
			if n := len(item.Loc); n > 0 {
				field = fmt.Sprintf("%v: ", item.Loc[n-1])
			}
			msgs = append(msgs, field+item.Msg)
		}
		return strings.Join(msgs, "; ")
	}

	return string(e.Detail)
}

// decodeError maps a non-2xx backend response to a domain error.
//
// Validation detail is kept verbatim so forms can show the backend's message;
// auth failures get a fixed generic message so nothing the backend says about
// credentials leaks through.
func (c *Client) decodeError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var apiErr apiError
	_ = json.Unmarshal(body, &apiErr)
	detail := apiErr.detailMessage()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.Unauthorized(op, "Invalid or expired credentials")
	case http.StatusForbidden:
		return domain.Forbidden(op, "You don't have permission to do that")
	case http.StatusNotFound:
		if detail == "" {
			detail = "The requested resource was not found"
		}
		return domain.Errorf(domain.ENOTFOUND, op, "%s", detail)
	case http.StatusConflict:
		if detail == "" {
			detail = "The resource already exists"
		}
		return domain.Conflict(op, detail)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if detail == "" {
			detail = "The backend rejected the request"
		}
		return domain.Invalid(op, detail)
	case http.StatusRequestEntityTooLarge:
		return domain.Errorf(domain.ETOOLARGE, op, "The file is too large")
	case http.StatusTooManyRequests:
		return domain.RateLimit(op)
	default:
		err := fmt.Errorf("backend returned status %d", resp.StatusCode)
		c.logger.Warn("backend error", "op", op, "status", resp.StatusCode, "detail", detail)
		return domain.Unavailable(err, op, "The backend failed to process the request")
	}
}
