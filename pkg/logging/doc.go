// Package logging provides structured logging configuration for stringd.
//
// This package wraps log/slog so every component logs the same way.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatJSON,
//	})
//
//	logger.Info("server started", "addr", ":8080")
//
// # Request scope
//
// The HTTP middleware stores a request-scoped logger (carrying the
// request_id attribute) in the request context. Handlers retrieve it with
// FromContext, which falls back to a no-op logger.
//
// # Integration
//
// Components should accept a *slog.Logger in their constructor or via an
// option. If no logger is provided, use logging.Nop().
package logging
