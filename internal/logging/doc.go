// Package logging provides structured logging for userdeck.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used by the gateway, the controllers and the fake API server.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: HTTP exchanges, state transitions, dropped late responses
//   - Info: Startup, configuration sources, server lifecycle
//   - Warn: Failed loads and deletes (already surfaced to the user)
//   - Error: Unexpected failures
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Users loaded",
//	    zap.Int("count", len(users)),
//	    zap.String("base_url", client.BaseURL),
//	)
//
// # Configuration
//
// Logging is silent unless USERDECK_LOG_LEVEL is set. Because the TUI owns
// the terminal, point USERDECK_LOG_FILE at a file when debugging it:
//
//	USERDECK_LOG_LEVEL=debug USERDECK_LOG_FILE=/tmp/userdeck.log userdeck
//
// Initialize once at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
