// Package http provides the internal HTTP API.
//
// The server exposes:
//   - GET /health: liveness probe, always 200 "OK"
//   - POST /internal/broadcast: bearer-gated trigger, 204 or 401
//   - GET /metrics: Prometheus metrics
package http
