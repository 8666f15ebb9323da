package registry

import (
	"github.com/calverly/hearth-core/internal/device"
)

// DevicesByType returns snapshots of all devices of the given type. The type
// string is matched case-insensitively; an unrecognised type yields an empty
// result rather than an error.
func (r *Registry) DevicesByType(typ string) []device.Snapshot {
	parsed, err := device.ParseType(typ)
	if err != nil {
		return []device.Snapshot{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshots := make([]device.Snapshot, 0)
	for _, id := range r.deviceOrder {
		if d := r.devices[id]; d.Type() == parsed {
			snapshots = append(snapshots, d.Snapshot())
		}
	}
	return snapshots
}

// PairedDevices returns snapshots of all devices currently paired to a hub.
func (r *Registry) PairedDevices() []device.Snapshot {
	return r.filterDevices(func(d device.Device) bool { return d.Paired() })
}

// UnpairedDevices returns snapshots of all devices not paired to a hub.
func (r *Registry) UnpairedDevices() []device.Snapshot {
	return r.filterDevices(func(d device.Device) bool { return !d.Paired() })
}

// filterDevices returns snapshots of devices matching the predicate, in
// creation order.
func (r *Registry) filterDevices(keep func(device.Device) bool) []device.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshots := make([]device.Snapshot, 0)
	for _, id := range r.deviceOrder {
		if d := r.devices[id]; keep(d) {
			snapshots = append(snapshots, d.Snapshot())
		}
	}
	return snapshots
}

// Stats returns registry statistics for monitoring.
type Stats struct {
	TotalDevices   int                 `json:"total_devices"`
	PairedDevices  int                 `json:"paired_devices"`
	ByType         map[device.Type]int `json:"by_type"`
	HubExists      bool                `json:"hub_exists"`
	TotalDwellings int                 `json:"total_dwellings"`
}

// GetStats returns current registry statistics.
func (r *Registry) GetStats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		TotalDevices:   len(r.devices),
		ByType:         make(map[device.Type]int),
		HubExists:      r.mainHub != nil,
		TotalDwellings: len(r.dwellings),
	}

	for _, d := range r.devices {
		stats.ByType[d.Type()]++
		if d.Paired() {
			stats.PairedDevices++
		}
	}

	return stats
}
