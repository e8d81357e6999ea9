// Package server exposes the wrapped tool over HTTP.
//
// Every command the tool understands becomes a URL: GET /run/<command>
// renders a page with an input form and the annotated output, and the page
// script POSTs to the same URL to fetch further output without reloading.
// Links inside the output carry the command they run in data-command so a
// single delegated click handler can intercept them.
//
// The server also hosts dashboards: user-authored tables whose cells are
// filled from the JSON output of source commands. Definitions are edited in
// the browser and kept in the store alongside the recent-commands weights.
//
// Routes:
//
//	GET  /                        program link and recent commands
//	GET  /run, /run/*             command page
//	POST /run, /run/*             annotated output fragment
//	GET  /raw/*                   plain text output
//	GET  /dashboard               dashboard list
//	GET  /dashboard/edit[/{name}] dashboard editor
//	POST /dashboard               save a dashboard
//	GET  /dashboard/{name}        rendered dashboard
//	GET  /healthz                 liveness
package server
