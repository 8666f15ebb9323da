package hub

import (
	"time"

	"github.com/calverly/hearth-core/internal/device"
)

// Hub coordinates paired devices. It is not safe for concurrent use on its
// own; the registry serialises all access under its own lock.
type Hub struct {
	id        string
	name      string
	createdAt time.Time

	// dwellingID is a non-owning back-reference to the installing dwelling.
	// Empty means not installed. Mutated only by the dwelling's install and
	// remove operations.
	dwellingID string

	// devices maps device ID to a non-owning reference. order preserves
	// pairing insertion order for stable listings.
	devices map[string]device.Device
	order   []string
}

// New creates an empty hub.
func New(id, name string) *Hub {
	return &Hub{
		id:        id,
		name:      name,
		createdAt: time.Now().UTC(),
		devices:   make(map[string]device.Device),
	}
}

// ID returns the hub's unique identifier.
func (h *Hub) ID() string { return h.id }

// Name returns the hub's display name.
func (h *Hub) Name() string { return h.name }

// CreatedAt returns the creation timestamp.
func (h *Hub) CreatedAt() time.Time { return h.createdAt }

// DwellingID returns the installing dwelling's identifier, if installed.
func (h *Hub) DwellingID() (string, bool) {
	if h.dwellingID == "" {
		return "", false
	}
	return h.dwellingID, true
}

// Installed reports whether the hub is installed in a dwelling.
func (h *Hub) Installed() bool { return h.dwellingID != "" }

// SetDwelling records the installing dwelling. Dwelling use only.
func (h *Hub) SetDwelling(dwellingID string) { h.dwellingID = dwellingID }

// ClearDwelling clears the installation back-reference. Dwelling use only.
func (h *Hub) ClearDwelling() { h.dwellingID = "" }

// Pair pairs a device to this hub. It fails with ErrAlreadyPaired — and
// mutates nothing — when the device is already owned by any hub. Both the
// device's pairing fields and the hub's map change together; a partial
// update is never observable.
func (h *Hub) Pair(d device.Device) error {
	if !d.Bind(h.id) {
		return ErrAlreadyPaired
	}
	h.devices[d.ID()] = d
	h.order = append(h.order, d.ID())
	return nil
}

// Remove unpairs a device. It fails with ErrNotPaired when the device is not
// currently paired to this hub.
func (h *Hub) Remove(deviceID string) error {
	d, ok := h.devices[deviceID]
	if !ok {
		return ErrNotPaired
	}

	d.Release()
	delete(h.devices, deviceID)
	for i, id := range h.order {
		if id == deviceID {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	return nil
}

// DeviceState returns the state of a paired device.
func (h *Hub) DeviceState(deviceID string) (device.State, error) {
	d, ok := h.devices[deviceID]
	if !ok {
		return nil, ErrNotPaired
	}
	return d.State(), nil
}

// Devices returns snapshots of all paired devices in pairing order.
func (h *Hub) Devices() []device.Snapshot {
	snapshots := make([]device.Snapshot, 0, len(h.order))
	for _, id := range h.order {
		snapshots = append(snapshots, h.devices[id].Snapshot())
	}
	return snapshots
}

// DeviceCount returns the number of paired devices.
func (h *Hub) DeviceCount() int { return len(h.devices) }

// Summary is the serialisable view of a hub.
type Summary struct {
	HubID             string    `json:"hub_id"`
	Name              string    `json:"name"`
	CreatedAt         time.Time `json:"created_at"`
	DwellingID        *string   `json:"dwelling_id"`
	PairedDeviceCount int       `json:"paired_devices_count"`
}

// Summary returns the serialisable view of the hub.
func (h *Hub) Summary() Summary {
	s := Summary{
		HubID:             h.id,
		Name:              h.name,
		CreatedAt:         h.createdAt,
		PairedDeviceCount: len(h.devices),
	}
	if h.dwellingID != "" {
		dwellingID := h.dwellingID
		s.DwellingID = &dwellingID
	}
	return s
}
