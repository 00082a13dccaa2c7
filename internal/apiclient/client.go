// Package apiclient issues JSON requests against the betting API and turns
// every failure mode into a *RequestError value instead of aborting.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

const snippetLimit = 200

// Kind classifies a failed request.
type Kind string

const (
	KindTransport Kind = "transport"
	KindStatus    Kind = "status"
	KindDecode    Kind = "decode"
)

// RequestError describes a request that did not produce the expected result.
type RequestError struct {
	Kind     Kind
	Method   string
	Endpoint string
	Expected int
	Status   int // 0 when no response was received
	Snippet  string
	Err      error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Err)
	case KindDecode:
		return fmt.Sprintf("%s %s: invalid JSON response (expected status %d, got %d): %s", e.Method, e.Endpoint, e.Expected, e.Status, e.Snippet)
	default:
		return fmt.Sprintf("%s %s: expected status %d, got %d: %s", e.Method, e.Endpoint, e.Expected, e.Status, e.Snippet)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

// IsKind reports whether err is a *RequestError of the given kind.
func IsKind(err error, kind Kind) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Kind == kind
}

// Request describes one API call. Endpoint is relative to the API root,
// e.g. "bets/place" or "matches?status=upcoming".
type Request struct {
	Method         string
	Endpoint       string
	Body           interface{}
	Token          string
	ExpectedStatus int // defaults to 200
}

// Response is a received HTTP response with its body fully read.
type Response struct {
	Status int
	Body   []byte
	// JSON is the decoded body: map[string]interface{}, []interface{}, or a
	// scalar. An empty body decodes to an empty object.
	JSON interface{}
}

// Client talks to one API root.
type Client struct {
	apiURL string
	http   *http.Client
	logger *slog.Logger
}

// New creates a Client for apiURL (base URL plus API prefix).
func New(apiURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		apiURL: strings.TrimRight(apiURL, "/"),
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// URL returns the absolute URL for an endpoint.
func (c *Client) URL(endpoint string) string {
	return c.apiURL + "/" + strings.TrimLeft(endpoint, "/")
}

// Do executes req. On a status mismatch the response is returned together
// with a KindStatus error so callers can still inspect the body.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	expected := req.ExpectedStatus
	if expected == 0 {
		expected = http.StatusOK
	}
	fail := func(kind Kind, status int, snippet string, err error) *RequestError {
		return &RequestError{
			Kind:     kind,
			Method:   req.Method,
			Endpoint: req.Endpoint,
			Expected: expected,
			Status:   status,
			Snippet:  snippet,
			Err:      err,
		}
	}

	var body io.Reader
	if req.Body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req.Body); err != nil {
			return nil, fail(KindTransport, 0, "", fmt.Errorf("encode body: %w", err))
		}
		body = &buf
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.URL(req.Endpoint), body)
	if err != nil {
		return nil, fail(KindTransport, 0, "", fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Debug("api request failed", "method", req.Method, "endpoint", req.Endpoint, "error", err)
		return nil, fail(KindTransport, 0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fail(KindTransport, resp.StatusCode, "", fmt.Errorf("read body: %w", err))
	}

	c.logger.Debug("api request",
		"method", req.Method,
		"endpoint", req.Endpoint,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	out := &Response{Status: resp.StatusCode, Body: raw}
	var decodeErr error
	if len(bytes.TrimSpace(raw)) == 0 {
		out.JSON = map[string]interface{}{}
	} else if decodeErr = json.Unmarshal(raw, &out.JSON); decodeErr != nil {
		out.JSON = nil
	}

	// A status mismatch is reported as such even when the body is not JSON.
	if resp.StatusCode != expected {
		return out, fail(KindStatus, resp.StatusCode, Snippet(raw), decodeErr)
	}
	if decodeErr != nil {
		return out, fail(KindDecode, resp.StatusCode, Snippet(raw), decodeErr)
	}
	return out, nil
}

// Get issues an authenticated GET expecting 200.
func (c *Client) Get(ctx context.Context, endpoint, token string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Endpoint: endpoint, Token: token})
}

// Post issues a POST with a JSON body expecting 200.
func (c *Client) Post(ctx context.Context, endpoint string, body interface{}, token string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Endpoint: endpoint, Body: body, Token: token})
}

// Decode re-decodes the raw body into dst.
func (r *Response) Decode(dst interface{}) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(r.Body, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Has reports whether the body is a JSON object containing every field.
func (r *Response) Has(fields ...string) bool {
	obj, ok := r.JSON.(map[string]interface{})
	if !ok {
		return false
	}
	for _, f := range fields {
		if _, ok := obj[f]; !ok {
			return false
		}
	}
	return true
}

// Missing returns the fields absent from a JSON object body.
func (r *Response) Missing(fields ...string) []string {
	obj, _ := r.JSON.(map[string]interface{})
	var missing []string
	for _, f := range fields {
		if _, ok := obj[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// Snippet trims a body to a loggable prefix.
func Snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= snippetLimit {
		return s
	}
	n := snippetLimit
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return strings.ToValidUTF8(s[:n], "") + "..."
}
