package api

import (
	"net/http"
	"strconv"

	"github.com/calverly/hearth-core/internal/audit"
)

// handleListAudit returns pages of the audit trail, newest first. Filters
// come in as query parameters: event_type, entity_type, entity_id, plus
// limit (default 50, capped at 200) and offset for paging. Unparseable
// limit/offset values fall back to the defaults.
func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	intParam := func(name string) int {
		n, _ := strconv.Atoi(q.Get(name))
		return n
	}

	result, err := s.audit.List(r.Context(), audit.Filter{
		EventType:  q.Get("event_type"),
		EntityType: q.Get("entity_type"),
		EntityID:   q.Get("entity_id"),
		Limit:      intParam("limit"),
		Offset:     intParam("offset"),
	})
	if err != nil {
		s.logger.Error("listing audit entries", "error", err)
		writeInternalError(w, "failed to list audit entries")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
