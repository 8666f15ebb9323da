package registry

import (
	"context"
	"sync"

	"github.com/calverly/hearth-core/internal/device"
	"github.com/calverly/hearth-core/internal/dwelling"
	"github.com/calverly/hearth-core/internal/events"
	"github.com/calverly/hearth-core/internal/hub"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry owns the authoritative entity collections and orchestrates all
// cross-entity operations. All public methods are thread-safe.
type Registry struct {
	mu sync.RWMutex

	devices     map[string]device.Device
	deviceOrder []string

	mainHub *hub.Hub

	dwellings     map[string]*dwelling.Dwelling
	dwellingOrder []string

	sinks  []events.Sink
	logger Logger
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		devices:   make(map[string]device.Device),
		dwellings: make(map[string]*dwelling.Dwelling),
		logger:    noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// AddSink registers an event sink. Sinks receive every committed mutation;
// their failures never affect the operation that produced the event.
// Not safe to call concurrently with registry operations; register sinks
// during startup.
func (r *Registry) AddSink(sink events.Sink) {
	r.sinks = append(r.sinks, sink)
}

// emit delivers an event to all sinks. Called after the mutation has
// committed and the lock has been released.
func (r *Registry) emit(ctx context.Context, ev events.Event) {
	for _, sink := range r.sinks {
		sink.Publish(ctx, ev)
	}
}

// ---------------------------------------------------------------------------
// Devices

// CreateDevice creates a device of the given type. The type string is
// matched case-insensitively; unknown types fail with device.ErrInvalidType.
// Returns the generated device ID.
func (r *Registry) CreateDevice(ctx context.Context, typ, name string, opts device.CreateOptions) (string, error) {
	id := device.GenerateID()

	d, err := device.New(typ, id, name, opts)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.devices[id] = d
	r.deviceOrder = append(r.deviceOrder, id)
	r.mu.Unlock()

	r.logger.Info("device created", "id", id, "type", d.Type(), "name", name)
	r.emit(ctx, events.New(events.DeviceCreated, events.EntityDevice, id, map[string]any{
		"device_type": d.Type(),
		"name":        name,
	}))
	return id, nil
}

// DeleteDevice removes a device from the registry. A paired device cannot be
// deleted; it must be unpaired first.
func (r *Registry) DeleteDevice(ctx context.Context, id string) error {
	r.mu.Lock()
	d, ok := r.devices[id]
	if !ok {
		r.mu.Unlock()
		return ErrDeviceNotFound
	}
	if d.Paired() {
		r.mu.Unlock()
		return ErrDevicePaired
	}

	delete(r.devices, id)
	for i, devID := range r.deviceOrder {
		if devID == id {
			r.deviceOrder = append(r.deviceOrder[:i], r.deviceOrder[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	r.logger.Info("device deleted", "id", id)
	r.emit(ctx, events.New(events.DeviceDeleted, events.EntityDevice, id, nil))
	return nil
}

// DeviceInfo returns the full snapshot of a device.
func (r *Registry) DeviceInfo(id string) (device.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[id]
	if !ok {
		return device.Snapshot{}, ErrDeviceNotFound
	}
	return d.Snapshot(), nil
}

// ModifyDevice applies a typed update to a device. The boolean reports
// whether at least one field was validly applied; invalid field values are
// silently ignored per the device contract.
func (r *Registry) ModifyDevice(ctx context.Context, id string, upd device.Update) (bool, error) {
	r.mu.Lock()
	d, ok := r.devices[id]
	if !ok {
		r.mu.Unlock()
		return false, ErrDeviceNotFound
	}
	applied := d.Apply(upd)
	var state device.State
	if applied {
		state = d.State()
	}
	r.mu.Unlock()

	if applied {
		r.logger.Debug("device modified", "id", id)
		r.emit(ctx, events.New(events.DeviceModified, events.EntityDevice, id, map[string]any{
			"state": state,
		}))
	}
	return applied, nil
}

// ListDevices returns snapshots of all devices in creation order.
func (r *Registry) ListDevices() []device.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshots := make([]device.Snapshot, 0, len(r.deviceOrder))
	for _, id := range r.deviceOrder {
		snapshots = append(snapshots, r.devices[id].Snapshot())
	}
	return snapshots
}

// DeviceCount returns the number of registered devices.
func (r *Registry) DeviceCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}

// UnlockDevice attempts to unlock a lock with the candidate pin. The boolean
// reports whether the pin matched; a mismatch leaves the lock untouched.
func (r *Registry) UnlockDevice(ctx context.Context, id, pin string) (bool, error) {
	r.mu.Lock()
	d, ok := r.devices[id]
	if !ok {
		r.mu.Unlock()
		return false, ErrDeviceNotFound
	}
	l, ok := d.(*device.Lock)
	if !ok {
		r.mu.Unlock()
		return false, ErrNotLock
	}
	unlocked := l.UnlockWithPIN(pin)
	r.mu.Unlock()

	if unlocked {
		r.logger.Info("lock opened by pin", "id", id)
		r.emit(ctx, events.New(events.DeviceUnlocked, events.EntityDevice, id, nil))
	} else {
		r.logger.Warn("pin rejected", "id", id)
	}
	return unlocked, nil
}

// SetCurrentTemperature records a temperature reading on a thermostat. This
// is the sensor-side write path; the target temperature moves through
// ModifyDevice instead.
func (r *Registry) SetCurrentTemperature(ctx context.Context, id string, temp float64) error {
	r.mu.Lock()
	d, ok := r.devices[id]
	if !ok {
		r.mu.Unlock()
		return ErrDeviceNotFound
	}
	th, ok := d.(*device.Thermostat)
	if !ok {
		r.mu.Unlock()
		return ErrNotThermostat
	}
	th.SetCurrentTemperature(temp)
	r.mu.Unlock()

	r.logger.Debug("temperature recorded", "id", id, "temp", temp)
	r.emit(ctx, events.New(events.DeviceTemperature, events.EntityDevice, id, map[string]any{
		"temperature": temp,
	}))
	return nil
}

// ---------------------------------------------------------------------------
// Hub

// CreateHub creates the main hub, or returns the existing hub's ID if one
// already exists. The single-hub constraint lives here, not inside Hub.
func (r *Registry) CreateHub(ctx context.Context, name string) string {
	r.mu.Lock()
	if r.mainHub != nil {
		id := r.mainHub.ID()
		r.mu.Unlock()
		return id
	}

	id := device.GenerateID()
	r.mainHub = hub.New(id, name)
	r.mu.Unlock()

	r.logger.Info("hub created", "id", id, "name", name)
	r.emit(ctx, events.New(events.HubCreated, events.EntityHub, id, map[string]any{
		"name": name,
	}))
	return id
}

// HubID returns the main hub's ID if one exists.
func (r *Registry) HubID() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.mainHub == nil {
		return "", false
	}
	return r.mainHub.ID(), true
}

// HubInfo returns the main hub's summary.
func (r *Registry) HubInfo() (hub.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.mainHub == nil {
		return hub.Summary{}, ErrNoHub
	}
	return r.mainHub.Summary(), nil
}

// PairDevice pairs a registered device to the main hub.
func (r *Registry) PairDevice(ctx context.Context, id string) error {
	r.mu.Lock()
	if r.mainHub == nil {
		r.mu.Unlock()
		return ErrNoHub
	}
	d, ok := r.devices[id]
	if !ok {
		r.mu.Unlock()
		return ErrDeviceNotFound
	}
	err := r.mainHub.Pair(d)
	hubID := r.mainHub.ID()
	r.mu.Unlock()

	if err != nil {
		return err
	}

	r.logger.Info("device paired", "id", id, "hub", hubID)
	r.emit(ctx, events.New(events.DevicePaired, events.EntityDevice, id, map[string]any{
		"hub_id": hubID,
	}))
	return nil
}

// UnpairDevice removes a device from the main hub. The device stays in the
// registry and becomes deletable.
func (r *Registry) UnpairDevice(ctx context.Context, id string) error {
	r.mu.Lock()
	if r.mainHub == nil {
		r.mu.Unlock()
		return ErrNoHub
	}
	err := r.mainHub.Remove(id)
	r.mu.Unlock()

	if err != nil {
		return err
	}

	r.logger.Info("device unpaired", "id", id)
	r.emit(ctx, events.New(events.DeviceUnpaired, events.EntityDevice, id, nil))
	return nil
}

// HubDeviceState returns the state of a device as seen through the main hub.
func (r *Registry) HubDeviceState(id string) (device.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.mainHub == nil {
		return nil, ErrNoHub
	}
	return r.mainHub.DeviceState(id)
}

// ListHubDevices returns snapshots of devices paired to the main hub in
// pairing order. Empty when no hub exists.
func (r *Registry) ListHubDevices() []device.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.mainHub == nil {
		return []device.Snapshot{}
	}
	return r.mainHub.Devices()
}

// ---------------------------------------------------------------------------
// Dwellings

// CreateDwelling creates a dwelling and returns its generated ID.
func (r *Registry) CreateDwelling(ctx context.Context, name, address string) string {
	id := device.GenerateID()
	dw := dwelling.New(id, name, address)

	r.mu.Lock()
	r.dwellings[id] = dw
	r.dwellingOrder = append(r.dwellingOrder, id)
	r.mu.Unlock()

	r.logger.Info("dwelling created", "id", id, "name", name)
	r.emit(ctx, events.New(events.DwellingCreated, events.EntityDwelling, id, map[string]any{
		"name":    name,
		"address": address,
	}))
	return id
}

// SetDwellingOccupied sets a dwelling's occupancy flag.
func (r *Registry) SetDwellingOccupied(ctx context.Context, id string, occupied bool) error {
	r.mu.Lock()
	dw, ok := r.dwellings[id]
	if !ok {
		r.mu.Unlock()
		return ErrDwellingNotFound
	}
	dw.SetOccupied(occupied)
	r.mu.Unlock()

	r.logger.Debug("occupancy changed", "id", id, "occupied", occupied)
	r.emit(ctx, events.New(events.DwellingOccupancy, events.EntityDwelling, id, map[string]any{
		"is_occupied": occupied,
	}))
	return nil
}

// InstallHub installs the main hub in a dwelling.
func (r *Registry) InstallHub(ctx context.Context, dwellingID string) error {
	r.mu.Lock()
	dw, ok := r.dwellings[dwellingID]
	if !ok {
		r.mu.Unlock()
		return ErrDwellingNotFound
	}
	if r.mainHub == nil {
		r.mu.Unlock()
		return ErrNoHub
	}
	err := dw.InstallHub(r.mainHub)
	var hubID string
	if err == nil {
		hubID = r.mainHub.ID()
	}
	r.mu.Unlock()

	if err != nil {
		return err
	}

	r.logger.Info("hub installed", "hub", hubID, "dwelling", dwellingID)
	r.emit(ctx, events.New(events.HubInstalled, events.EntityHub, hubID, map[string]any{
		"dwelling_id": dwellingID,
	}))
	return nil
}

// RemoveHub uninstalls the main hub from a dwelling.
func (r *Registry) RemoveHub(ctx context.Context, dwellingID string) error {
	r.mu.Lock()
	dw, ok := r.dwellings[dwellingID]
	if !ok {
		r.mu.Unlock()
		return ErrDwellingNotFound
	}
	if r.mainHub == nil {
		r.mu.Unlock()
		return ErrNoHub
	}
	hubID := r.mainHub.ID()
	err := dw.RemoveHub(hubID)
	r.mu.Unlock()

	if err != nil {
		return err
	}

	r.logger.Info("hub removed", "hub", hubID, "dwelling", dwellingID)
	r.emit(ctx, events.New(events.HubRemoved, events.EntityHub, hubID, map[string]any{
		"dwelling_id": dwellingID,
	}))
	return nil
}

// DwellingInfo returns a dwelling's summary.
func (r *Registry) DwellingInfo(id string) (dwelling.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dw, ok := r.dwellings[id]
	if !ok {
		return dwelling.Summary{}, ErrDwellingNotFound
	}
	return dw.Summary(), nil
}

// ListDwellings returns summaries of all dwellings in creation order.
func (r *Registry) ListDwellings() []dwelling.Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]dwelling.Summary, 0, len(r.dwellingOrder))
	for _, id := range r.dwellingOrder {
		summaries = append(summaries, r.dwellings[id].Summary())
	}
	return summaries
}
