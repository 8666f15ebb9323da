// Package registry provides the top-level owner of all Hearth entities.
//
// The registry is the only component permitted to create and delete devices,
// the hub, and dwellings. Hubs and dwellings hold non-owning references;
// the authoritative collections live here.
//
// # Architecture
//
//	┌──────────────────────────────────────────────────────────┐
//	│                        Registry                          │
//	│                                                          │
//	│  devices (insertion ordered)   main hub    dwellings     │
//	│        │                          │            │         │
//	│        ▼                          ▼            ▼         │
//	│  device.Device               hub.Hub    dwelling.Dwelling│
//	└──────────────────────────────────────────────────────────┘
//	         │ events.Event after each committed mutation
//	         ▼
//	  audit trail / MQTT / telemetry / WebSocket sinks
//
// # Single-Hub Constraint
//
// At most one hub exists per registry. CreateHub is idempotent: a second call
// returns the existing hub's ID without creating another.
//
// # Error Model
//
// Expected failures surface as sentinel errors checked with errors.Is
// (ErrDeviceNotFound, ErrDevicePaired, hub.ErrAlreadyPaired, ...). Nothing in
// this package panics on an expected failure path.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Every state-changing operation
// runs under one mutex per Registry instance: pairing touches a device and
// the hub's map together, and a partial update must never be observable.
package registry
