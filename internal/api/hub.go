package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calverly/hearth-core/internal/hub"
)

// createHubRequest is the body for POST /hub.
type createHubRequest struct {
	Name string `json:"name"`
}

// handleCreateHub creates the main hub. The operation is idempotent: if a
// hub already exists its summary is returned with 200 and the supplied name
// is ignored.
func (s *Server) handleCreateHub(w http.ResponseWriter, r *http.Request) {
	var req createHubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	_, existed := s.registry.HubID()
	s.registry.CreateHub(r.Context(), req.Name)

	summary, err := s.registry.HubInfo()
	if err != nil {
		writeInternalError(w, "failed to read hub")
		return
	}

	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	writeJSON(w, status, summary)
}

// handleGetHub returns the main hub's summary.
func (s *Server) handleGetHub(w http.ResponseWriter, _ *http.Request) {
	summary, err := s.registry.HubInfo()
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleListHubDevices returns all devices paired to the hub, in pairing
// order.
func (s *Server) handleListHubDevices(w http.ResponseWriter, _ *http.Request) {
	if _, ok := s.registry.HubID(); !ok {
		writeNotFound(w, "no hub exists")
		return
	}
	devices := s.registry.ListHubDevices()
	writeJSON(w, http.StatusOK, map[string]any{"devices": devices, "count": len(devices)})
}

// handlePairDevice pairs a device to the hub.
func (s *Server) handlePairDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.registry.PairDevice(r.Context(), id); err != nil {
		writeRegistryError(w, err)
		return
	}

	snap, err := s.registry.DeviceInfo(id)
	if err != nil {
		writeInternalError(w, "failed to read paired device")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleUnpairDevice unpairs a device from the hub.
func (s *Server) handleUnpairDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.registry.UnpairDevice(r.Context(), id); err != nil {
		writeRegistryError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleHubDeviceState returns a paired device's state, looked up through
// the hub rather than the registry's own collection. A device the hub does
// not know is a failed lookup, so it maps to 404 here rather than the
// conflict ErrNotPaired carries elsewhere.
func (s *Server) handleHubDeviceState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	state, err := s.registry.HubDeviceState(id)
	if err != nil {
		if errors.Is(err, hub.ErrNotPaired) {
			writeNotFound(w, err.Error())
			return
		}
		writeRegistryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"device_id": id,
		"state":     state,
	})
}
