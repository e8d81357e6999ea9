// Package app bootstraps termlink.
//
// NewApplication loads config.yaml (see package config), applies command
// line overrides, validates the result, opens the configured store and wires
// the executor, annotator, recency tracker, dashboard engine and HTTP server.
// The same Application backs every CLI command: serve uses Run, while
// one-shot commands such as dashboard render reach for Services directly.
//
// Run blocks until the context is cancelled or the process receives SIGINT
// or SIGTERM, then drains in-flight requests within the configured
// shutdown timeout. When started by systemd with Type=notify the unit is
// marked ready once the listener is bound.
package app
