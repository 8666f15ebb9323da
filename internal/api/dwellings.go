package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleListDwellings returns all dwellings in creation order.
func (s *Server) handleListDwellings(w http.ResponseWriter, _ *http.Request) {
	dwellings := s.registry.ListDwellings()
	writeJSON(w, http.StatusOK, map[string]any{"dwellings": dwellings, "count": len(dwellings)})
}

// createDwellingRequest is the body for POST /dwellings.
type createDwellingRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// handleCreateDwelling creates a new dwelling.
func (s *Server) handleCreateDwelling(w http.ResponseWriter, r *http.Request) {
	var req createDwellingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	id := s.registry.CreateDwelling(r.Context(), req.Name, req.Address)

	summary, err := s.registry.DwellingInfo(id)
	if err != nil {
		writeInternalError(w, "failed to read created dwelling")
		return
	}
	writeJSON(w, http.StatusCreated, summary)
}

// handleGetDwelling returns a single dwelling by ID.
func (s *Server) handleGetDwelling(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	summary, err := s.registry.DwellingInfo(id)
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// occupancyRequest is the body for PUT /dwellings/{id}/occupancy.
type occupancyRequest struct {
	Occupied *bool `json:"is_occupied"`
}

// handleSetOccupancy sets a dwelling's occupancy flag.
func (s *Server) handleSetOccupancy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req occupancyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Occupied == nil {
		writeBadRequest(w, "is_occupied field is required")
		return
	}

	if err := s.registry.SetDwellingOccupied(r.Context(), id, *req.Occupied); err != nil {
		writeRegistryError(w, err)
		return
	}

	summary, err := s.registry.DwellingInfo(id)
	if err != nil {
		writeInternalError(w, "failed to read dwelling")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleInstallHub installs the main hub in a dwelling.
func (s *Server) handleInstallHub(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.registry.InstallHub(r.Context(), id); err != nil {
		writeRegistryError(w, err)
		return
	}

	summary, err := s.registry.DwellingInfo(id)
	if err != nil {
		writeInternalError(w, "failed to read dwelling")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleRemoveHub uninstalls the main hub from a dwelling.
func (s *Server) handleRemoveHub(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.registry.RemoveHub(r.Context(), id); err != nil {
		writeRegistryError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
