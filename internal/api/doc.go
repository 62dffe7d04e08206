// Package api provides the client for the remote ticker catalog API.
//
// Endpoints:
//   - GET /v2/reference/tickers: paginated catalog of tradable instruments
//   - GET /v1/meta/symbols/{symbol}/company: per-symbol descriptive metadata
//
// The API key is sent as the apiKey query parameter on every request.
package api
