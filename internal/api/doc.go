// Package api implements the HTTP REST API and WebSocket server for Hearth Core.
//
// This package provides:
//   - REST endpoints for device, hub, and dwelling operations
//   - WebSocket hub for real-time event broadcasts
//   - Audit trail queries
//   - Middleware stack (request ID, logging, recovery, CORS)
//
// # Architecture
//
// The API server sits between user interfaces (mobile apps, web admin) and
// the registry. Mutations go straight to the registry; committed events flow
// back out through the WebSocket hub, which the registry treats as one of its
// event sinks.
//
// # Graceful Degradation
//
// The server operates without MQTT or InfluxDB — those are optional sinks
// wired in main, not API dependencies. Only the metrics endpoint reports
// their connection state when present.
package api
