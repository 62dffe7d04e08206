package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// APIError represents a non-200 response from the catalog API.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog api status %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// DecodeError represents a 200 response whose body failed JSON decoding.
// The raw body is preserved for diagnostics. Decode failures are never
// retried; a malformed payload does not heal with repetition.
type DecodeError struct {
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v (body %q)", e.Err, truncate(e.Body, 256))
}

func (e *DecodeError) Unwrap() error { return e.Err }

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

// doRequest performs a single GET against path with the given query.
// The API key is appended to the query string.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" {
		query.Set("apiKey", c.apiKey)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	return body, nil
}

// doWithCooldown performs a GET, waiting a fixed cooldown and reissuing the
// identical request after a connection-level failure (timeout, reset, DNS).
// HTTP status errors are returned immediately; they are data, not faults.
// A maxRetries of 0 retries until the context is cancelled.
func (c *Client) doWithCooldown(ctx context.Context, path string, query url.Values) ([]byte, error) {
	var lastErr error

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			c.logger.Warn("transient fetch failure, cooling down",
				"path", path,
				"attempt", attempt,
				"cooldown", c.retryCooldown,
				"err", lastErr,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryCooldown):
			}
		}

		body, err := c.doRequest(ctx, path, query)
		if err == nil {
			return body, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}

		lastErr = err
		if c.maxRetries > 0 && attempt >= c.maxRetries {
			return nil, fmt.Errorf("retries exhausted after %d attempts: %w", attempt+1, lastErr)
		}
	}
}

// get performs a GET with transient-failure retry and decodes the response.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	body, err := c.doWithCooldown(ctx, path, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return &DecodeError{Body: body, Err: err}
	}

	return nil
}
