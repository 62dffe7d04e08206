package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// dropConnections returns a handler that abruptly closes the connection for
// the first n requests, then delegates to next. This simulates
// connection-level failures (resets), as opposed to HTTP error statuses.
func dropConnections(t *testing.T, n int, calls *atomic.Int32, next http.HandlerFunc) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= int32(n) {
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("response writer does not support hijacking")
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				t.Fatalf("hijack: %v", err)
			}
			conn.Close()
			return
		}
		next(w, r)
	}
}

func TestGetRetriesTransientFailures(t *testing.T) {
	const failures = 3
	var calls atomic.Int32

	server := httptest.NewServer(dropConnections(t, failures, &calls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"count": 7})
	}))
	defer server.Close()

	c := NewClient(server.URL, "", WithRetries(0, 5*time.Millisecond))

	var resp TickersResponse
	if err := c.get(context.Background(), "/v2/reference/tickers", nil, &resp); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if resp.Count != 7 {
		t.Errorf("Count = %d, want 7", resp.Count)
	}
	if got := calls.Load(); got != failures+1 {
		t.Errorf("request count = %d, want %d", got, failures+1)
	}
}

func TestGetExhaustsRetryCeiling(t *testing.T) {
	var calls atomic.Int32

	// Always drop the connection.
	server := httptest.NewServer(dropConnections(t, 1<<30, &calls, nil))
	defer server.Close()

	c := NewClient(server.URL, "", WithRetries(2, time.Millisecond))

	var resp TickersResponse
	err := c.get(context.Background(), "/v2/reference/tickers", nil, &resp)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "retries exhausted") {
		t.Errorf("error = %v, want retries exhausted", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("request count = %d, want 3 (1 attempt + 2 retries)", got)
	}
}

func TestGetDoesNotRetryStatusErrors(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL, "", WithRetries(0, time.Millisecond))

	var resp APICompany
	err := c.get(context.Background(), "/v1/meta/symbols/NOPE/company", nil, &resp)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusNotFound)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("request count = %d, want 1 (status errors are not retried)", got)
	}
}

func TestGetSurfacesDecodeErrorWithBody(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("<html>gateway speaking html</html>"))
	}))
	defer server.Close()

	c := NewClient(server.URL, "", WithRetries(0, time.Millisecond))

	var resp TickersResponse
	err := c.get(context.Background(), "/v2/reference/tickers", nil, &resp)

	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
	if !strings.Contains(string(decErr.Body), "gateway speaking html") {
		t.Errorf("Body = %q, want raw response preserved", decErr.Body)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("request count = %d, want 1 (decode failures are not retried)", got)
	}
}

func TestGetHonorsContextDuringCooldown(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(dropConnections(t, 1<<30, &calls, nil))
	defer server.Close()

	// Long cooldown, unlimited retries: cancellation is the only way out.
	c := NewClient(server.URL, "", WithRetries(0, time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	var resp TickersResponse
	err := c.get(ctx, "/v2/reference/tickers", nil, &resp)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("get blocked %v, want prompt abort on cancellation", elapsed)
	}
}

func TestDoRequestSendsAPIKey(t *testing.T) {
	var gotKey atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey.Store(r.URL.Query().Get("apiKey"))
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	c := NewClient(server.URL, "sekrit")

	var resp TickersResponse
	if err := c.get(context.Background(), "/v2/reference/tickers", nil, &resp); err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if got, _ := gotKey.Load().(string); got != "sekrit" {
		t.Errorf("apiKey = %q, want %q", got, "sekrit")
	}
}
