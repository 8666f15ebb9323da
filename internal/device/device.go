package device

import "time"

// State holds a point-in-time view of a device's variant-specific state as a
// JSON-ready map.
//
// Examples:
//   - Switch: {"power": "off"}
//   - Dimmer: {"power": "on", "brightness": 75}
//   - Lock: {"state": "locked", "is_armed": true}
//   - Thermostat: {"current_temperature": 72.0, "target_temperature": 68.0,
//     "mode": "heat", "is_running": true}
type State map[string]any

// Snapshot is the serialisable view of a device: identity, pairing status,
// and the variant state.
type Snapshot struct {
	DeviceID  string    `json:"device_id"`
	Name      string    `json:"name"`
	Type      Type      `json:"device_type"`
	CreatedAt time.Time `json:"created_at"`
	Paired    bool      `json:"is_paired"`
	HubID     *string   `json:"hub_id"`
	State     State     `json:"state"`
}

// Device is the sealed interface implemented by every variant.
//
// Bind and Release are pairing bookkeeping for the hub; they must not be
// called from anywhere else. True ownership of devices lives in the registry's
// collections — the hub holds non-owning references only.
type Device interface {
	// ID returns the opaque unique identifier assigned at creation.
	ID() string

	// Name returns the display name.
	Name() string

	// Type returns the variant tag.
	Type() Type

	// CreatedAt returns the creation timestamp.
	CreatedAt() time.Time

	// Paired reports whether the device is currently owned by a hub.
	Paired() bool

	// HubID returns the owning hub's identifier, if paired.
	HubID() (string, bool)

	// State returns the variant state snapshot.
	State() State

	// Apply applies a typed update. It returns true iff at least one
	// provided field was validly applied. Invalid field values are
	// silently ignored; an update of the wrong kind is a no-op.
	Apply(Update) bool

	// Snapshot returns the full serialisable view of the device.
	Snapshot() Snapshot

	// Bind marks the device as paired to the given hub. It fails (returns
	// false, no mutation) when the device is already paired. Hub use only.
	Bind(hubID string) bool

	// Release clears the pairing fields. Hub use only.
	Release()
}

// meta carries the identity and pairing fields shared by all variants.
type meta struct {
	id        string
	name      string
	typ       Type
	createdAt time.Time
	paired    bool
	hubID     string
}

func newMeta(id, name string, typ Type) meta {
	return meta{
		id:        id,
		name:      name,
		typ:       typ,
		createdAt: time.Now().UTC(),
	}
}

func (m *meta) ID() string           { return m.id }
func (m *meta) Name() string         { return m.name }
func (m *meta) Type() Type           { return m.typ }
func (m *meta) CreatedAt() time.Time { return m.createdAt }
func (m *meta) Paired() bool         { return m.paired }

func (m *meta) HubID() (string, bool) {
	if !m.paired {
		return "", false
	}
	return m.hubID, true
}

func (m *meta) Bind(hubID string) bool {
	if m.paired {
		return false
	}
	m.paired = true
	m.hubID = hubID
	return true
}

func (m *meta) Release() {
	m.paired = false
	m.hubID = ""
}

// snapshot assembles the shared portion of a Snapshot around a variant state.
func (m *meta) snapshot(state State) Snapshot {
	s := Snapshot{
		DeviceID:  m.id,
		Name:      m.name,
		Type:      m.typ,
		CreatedAt: m.createdAt,
		Paired:    m.paired,
		State:     state,
	}
	if m.paired {
		hubID := m.hubID
		s.HubID = &hubID
	}
	return s
}
