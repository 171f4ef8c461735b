// Package prometheus records internal API metrics: broadcast outcomes,
// health probes and request latency.
package prometheus
