// Package events defines the registry event stream consumed by the audit
// trail, the MQTT publisher, the telemetry writer, and the WebSocket hub.
//
// Events are emitted after a mutation has committed; delivery is best-effort
// and never affects the outcome of the operation that produced the event.
package events

import (
	"context"
	"time"
)

// Entity identifies the kind of entity an event concerns.
type Entity string

// Entity constants.
const (
	EntityDevice   Entity = "device"
	EntityHub      Entity = "hub"
	EntityDwelling Entity = "dwelling"
)

// Type identifies what happened.
type Type string

// Event type constants.
const (
	DeviceCreated     Type = "device.created"
	DeviceDeleted     Type = "device.deleted"
	DeviceModified    Type = "device.modified"
	DevicePaired      Type = "device.paired"
	DeviceUnpaired    Type = "device.unpaired"
	DeviceUnlocked    Type = "device.unlocked"
	DeviceTemperature Type = "device.temperature"
	HubCreated        Type = "hub.created"
	HubInstalled      Type = "hub.installed"
	HubRemoved        Type = "hub.removed"
	DwellingCreated   Type = "dwelling.created"
	DwellingOccupancy Type = "dwelling.occupancy"
)

// Event is a single registry event.
type Event struct {
	Type     Type           `json:"type"`
	Entity   Entity         `json:"entity"`
	EntityID string         `json:"entity_id"`
	At       time.Time      `json:"at"`
	Details  map[string]any `json:"details,omitempty"`
}

// New creates an event stamped with the current time.
func New(typ Type, entity Entity, entityID string, details map[string]any) Event {
	return Event{
		Type:     typ,
		Entity:   entity,
		EntityID: entityID,
		At:       time.Now().UTC(),
		Details:  details,
	}
}

// Sink receives registry events. Implementations must not block for extended
// periods and must swallow their own failures; the registry ignores sink
// errors by contract.
type Sink interface {
	Publish(ctx context.Context, ev Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, ev Event)

// Publish calls f.
func (f SinkFunc) Publish(ctx context.Context, ev Event) { f(ctx, ev) }
