// Package api implements the HTTP client for the Inkpress REST backend.
//
// The client owns request plumbing only: base-URL handling, bearer-token
// attachment, request IDs, timeouts, and normalization of error responses.
// Deciding what a failure means for the session is the caller's job.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avesnin/inkpress-cli/internal/logging"
)

// DefaultTimeout bounds every request so a hung backend cannot leave an
// operation in flight forever.
const DefaultTimeout = 15 * time.Second

// TokenSource yields the current bearer token, or "" when anonymous.
// It is consulted on every authenticated call, never cached, so a rotated
// or cleared token is picked up on the next request.
type TokenSource func(ctx context.Context) (string, error)

type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// NewClient builds a Client for the backend at baseURL. tokens may be nil
// for a client that only performs anonymous calls. A non-positive timeout
// selects DefaultTimeout.
func NewClient(baseURL string, tokens TokenSource, log logging.Logger, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

func (c *Client) currentToken(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", nil
	}
	return c.tokens(ctx)
}

// call issues one request and decodes the JSON response body into out
// (skipped when out is nil or the response has no body, e.g. 204).
// token is attached as a bearer credential when non-empty.
func (c *Client) call(ctx context.Context, method, path string, q url.Values, contentType string, body io.Reader, token string, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := normalizeError(resp.StatusCode, data)
		c.log.Debug(ctx, "api error", "method", method, "path", path, "status", apiErr.Status, "msg", apiErr.Message)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorBody covers the shapes backend error payloads come in. Field priority
// on extraction is fixed: detail first, then message.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func normalizeError(status int, body []byte) *Error {
	msg := fmt.Sprintf("request failed with status %d", status)
	if len(body) > 0 {
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil {
			switch {
			case eb.Detail != "":
				msg = eb.Detail
			case eb.Message != "":
				msg = eb.Message
			}
		}
	}
	return &Error{Status: status, Message: msg}
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(b), nil
}
