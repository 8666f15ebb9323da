package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/calverly/hearth-core/internal/device"
)

// handleListDevices returns all devices, with optional query filters.
//
// Query parameters:
//   - type: filter by device type (switch, dimmer, lock, thermostat)
//   - paired: filter by pairing status ("true" or "false")
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		devices := s.registry.DevicesByType(typeStr)
		writeJSON(w, http.StatusOK, map[string]any{"devices": devices, "count": len(devices)})
		return
	}

	if pairedStr := r.URL.Query().Get("paired"); pairedStr != "" {
		paired, err := strconv.ParseBool(pairedStr)
		if err != nil {
			writeBadRequest(w, "paired must be true or false")
			return
		}
		var devices []device.Snapshot
		if paired {
			devices = s.registry.PairedDevices()
		} else {
			devices = s.registry.UnpairedDevices()
		}
		writeJSON(w, http.StatusOK, map[string]any{"devices": devices, "count": len(devices)})
		return
	}

	devices := s.registry.ListDevices()
	writeJSON(w, http.StatusOK, map[string]any{"devices": devices, "count": len(devices)})
}

// handleGetDevice returns a single device by ID.
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snap, err := s.registry.DeviceInfo(id)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// createDeviceRequest is the body for POST /devices.
type createDeviceRequest struct {
	Type string `json:"device_type"`
	Name string `json:"name"`
	PIN  string `json:"pin,omitempty"`
}

// handleCreateDevice creates a new device of the requested variant.
func (s *Server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var req createDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	id, err := s.registry.CreateDevice(r.Context(), req.Type, req.Name, device.CreateOptions{PIN: req.PIN})
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	snap, err := s.registry.DeviceInfo(id)
	if err != nil {
		writeInternalError(w, "failed to read created device")
		return
	}

	writeJSON(w, http.StatusCreated, snap)
}

// handleDeleteDevice removes a device by ID. Paired devices cannot be
// deleted; unpair first.
func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.registry.DeleteDevice(r.Context(), id); err != nil {
		writeRegistryError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleDeviceStats returns registry statistics.
func (s *Server) handleDeviceStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.GetStats())
}

// handleGetDeviceState returns the current state of a device.
func (s *Server) handleGetDeviceState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snap, err := s.registry.DeviceInfo(id)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"device_id": snap.DeviceID,
		"state":     snap.State,
	})
}

// stateUpdateRequest is the body for PATCH /devices/{id}/state. It is the
// union of all variant update fields; the device's type decides which subset
// is read. Unrecognised enum values are dropped rather than rejected, so a
// request carrying only invalid values applies nothing and reports
// applied=false.
type stateUpdateRequest struct {
	Power      *string  `json:"power,omitempty"`
	Brightness *int     `json:"brightness,omitempty"`
	State      *string  `json:"state,omitempty"`
	PIN        *string  `json:"pin,omitempty"`
	Armed      *bool    `json:"is_armed,omitempty"`
	TargetTemp *float64 `json:"target_temperature,omitempty"`
	Mode       *string  `json:"mode,omitempty"`
}

// handleUpdateDeviceState applies a partial state update to a device.
func (s *Server) handleUpdateDeviceState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snap, err := s.registry.DeviceInfo(id)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var req stateUpdateRequest
	if err := dec.Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	upd := req.toUpdate(snap.Type)

	applied, err := s.registry.ModifyDevice(r.Context(), id, upd)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	snap, err = s.registry.DeviceInfo(id)
	if err != nil {
		writeInternalError(w, "failed to read device state")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"device_id": snap.DeviceID,
		"applied":   applied,
		"state":     snap.State,
	})
}

// toUpdate converts the request body into the typed update matching the
// device variant. Enum fields that fail to parse are left nil.
func (req stateUpdateRequest) toUpdate(typ device.Type) device.Update {
	switch typ {
	case device.TypeSwitch:
		upd := device.SwitchUpdate{}
		if req.Power != nil {
			if p, ok := device.ParsePower(*req.Power); ok {
				upd.Power = &p
			}
		}
		return upd
	case device.TypeDimmer:
		upd := device.DimmerUpdate{Brightness: req.Brightness}
		if req.Power != nil {
			if p, ok := device.ParsePower(*req.Power); ok {
				upd.Power = &p
			}
		}
		return upd
	case device.TypeLock:
		upd := device.LockUpdate{PIN: req.PIN, Armed: req.Armed}
		if req.State != nil {
			if ls, ok := device.ParseLockState(*req.State); ok {
				upd.State = &ls
			}
		}
		return upd
	case device.TypeThermostat:
		upd := device.ThermostatUpdate{TargetTemp: req.TargetTemp}
		if req.Mode != nil {
			if m, ok := device.ParseMode(*req.Mode); ok {
				upd.Mode = &m
			}
		}
		return upd
	}
	// Unreachable: DeviceInfo only returns known variants.
	return device.SwitchUpdate{}
}

// unlockRequest is the body for POST /devices/{id}/unlock.
type unlockRequest struct {
	PIN string `json:"pin"`
}

// handleUnlockDevice attempts a pin-verified unlock of a lock device.
// A wrong pin is not an error; the response reports unlocked=false and the
// lock state is untouched.
func (s *Server) handleUnlockDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	unlocked, err := s.registry.UnlockDevice(r.Context(), id, req.PIN)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"device_id": id,
		"unlocked":  unlocked,
	})
}

// temperatureRequest is the body for PUT /devices/{id}/temperature.
type temperatureRequest struct {
	Temperature *float64 `json:"temperature"`
}

// handleSetTemperature records a current-temperature reading on a
// thermostat, as a sensor feed would.
func (s *Server) handleSetTemperature(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req temperatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Temperature == nil {
		writeBadRequest(w, "temperature field is required")
		return
	}

	if err := s.registry.SetCurrentTemperature(r.Context(), id, *req.Temperature); err != nil {
		writeRegistryError(w, err)
		return
	}

	snap, err := s.registry.DeviceInfo(id)
	if err != nil {
		writeInternalError(w, "failed to read device state")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"device_id": snap.DeviceID,
		"state":     snap.State,
	})
}
