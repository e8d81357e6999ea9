// Package config loads termlink's configuration.
//
// Configuration lives in a single directory, ~/.config/termlink by default
// or the directory given with --config-path. The directory holds config.yaml
// and, for the file storage backend, the data directory.
//
// Defaults are applied first and config.yaml is decoded on top, so a file
// only needs the settings it changes:
//
//	server:
//	  host: localhost
//	  port: 8080
//	tool:
//	  path: /usr/local/bin/nb
//	  timeout: 30s
//	storage:
//	  backend: bolt
//	recent:
//	  boost: 4
//	  decay: 1
//	dashboards:
//	  sourcePrefix: "stream show "
//	  sourceSuffix: " --format json"
//
// Command line flags override whatever was loaded. Validate reports every
// invalid field at once.
package config
