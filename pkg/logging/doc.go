// Package logging provides subsystem-tagged structured logging for termlink.
//
// The package wraps Go's log/slog with a small set of package-level helpers so
// that every component logs the same way: a subsystem name, a printf-style
// message and, for errors, the error itself.
//
// # Initialization
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	// or JSON lines for log shippers
//	logging.Init(logging.LevelDebug, os.Stderr, logging.FormatJSON)
//
// # Logging
//
//	logging.Info("Bootstrap", "Listening on %s", addr)
//	logging.Debug("Executor", "Output of %q: %s", command, output)
//	logging.Error("Store", err, "Failed to write key %s", key)
//
// The *Ctx variants additionally attach the request id stored in the context
// by WithRequestID, which the HTTP layer sets for every request.
//
// # Subsystems
//
//   - **Bootstrap**: application initialization and shutdown
//   - **ConfigLoader**: configuration loading and validation
//   - **Executor**: wrapped tool invocations
//   - **Annotator**: output annotation
//   - **Dashboard**: dashboard resolution and rendering
//   - **Store**: key-value persistence
//   - **Recent**: recency tracking
//   - **Server**: HTTP request handling
//
// # Thread Safety
//
// All functions are safe for concurrent use. Init may be called again to
// replace the logger; in-flight calls use whichever logger they observed.
package logging
