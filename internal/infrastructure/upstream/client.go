package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is the shared HTTP plumbing for every upstream call: one
// outbound request per operation, a bounded timeout, the source channel
// header, and an optional bearer credential. No retries, no caching.
type Client struct {
	lookup *http.Client
	submit *http.Client
	source string
}

// NewClient creates a client with separate timeouts for lookups and
// submissions. Submissions get the longer budget because upstream
// processing is heavier.
func NewClient(lookupTimeout, submitTimeout time.Duration, source string) *Client {
	return &Client{
		lookup: &http.Client{Timeout: lookupTimeout},
		submit: &http.Client{Timeout: submitTimeout},
		source: source,
	}
}

// Error carries the best-effort message extracted from an upstream
// error body along with the HTTP status, when one was received.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream returned %d", e.Status)
}

// MessageOr returns the upstream message if one was extracted from err,
// otherwise the fallback.
func MessageOr(err error, fallback string) string {
	if ue, ok := err.(*Error); ok && ue.Message != "" {
		return ue.Message
	}
	return fallback
}

// PostJSON issues one POST within the lookup budget.
func (c *Client) PostJSON(ctx context.Context, endpoint string, body any, bearer string, out any) error {
	return c.do(ctx, c.lookup, http.MethodPost, endpoint, body, bearer, out)
}

// SubmitJSON issues one POST within the submission budget.
func (c *Client) SubmitJSON(ctx context.Context, endpoint string, body any, bearer string, out any) error {
	return c.do(ctx, c.submit, http.MethodPost, endpoint, body, bearer, out)
}

// GetJSON issues one GET within the lookup budget, with params encoded
// into the query string.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params url.Values, bearer string, out any) error {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}
	return c.do(ctx, c.lookup, http.MethodGet, endpoint, nil, bearer, out)
}

func (c *Client) do(ctx context.Context, client *http.Client, method, endpoint string, body any, bearer string, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-source-for", c.source)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: extractMessage(raw)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil
}

// extractMessage pulls a human-readable message out of an upstream
// error body. Bodies vary per endpoint; an unparseable body yields "".
func extractMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
