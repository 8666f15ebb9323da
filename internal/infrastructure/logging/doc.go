// Package logging is a thin layer over log/slog that gives every component
// the same structured output.
//
// The format (json or text), destination (stdout or stderr) and minimum
// level come from the logging section of config.yaml:
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stdout"
//
// All entries carry service and version attributes. Components derive their
// own loggers with With:
//
//	logger := logging.New(cfg.Logging, version)
//	apiLog := logger.With("component", "api")
//	apiLog.Info("listening", "addr", addr)
//
// Secrets (tokens, broker passwords, lock PINs) must never appear in log
// fields.
package logging
