package http

import (
	"net/http"

	"github.com/MKhiriev/crimewatch-access/internal/utils"
	"github.com/MKhiriev/crimewatch-access/models"
)

// listSessions returns the open sessions, or the most recent ones with
// ?state=recent.
func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.gate(w, r, models.ActionViewAudit); !ok {
		return
	}

	var (
		sessions []models.Session
		err      error
	)
	if r.URL.Query().Get("state") == "recent" {
		limit, lerr := limitParam(r)
		if lerr != nil {
			h.writeError(w, r, "*Handler.listSessions", lerr)
			return
		}
		sessions, err = h.services.Sessions.ListRecent(r.Context(), limit)
	} else {
		sessions, err = h.services.Sessions.ListOpen(r.Context())
	}
	if err != nil {
		h.writeError(w, r, "*Handler.listSessions", err)
		return
	}

	utils.WriteJSON(w, sessions, http.StatusOK)
}
