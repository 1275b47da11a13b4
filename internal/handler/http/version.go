package http

import (
	"net/http"

	"github.com/MKhiriev/crimewatch-access/internal/utils"
)

// getVersion is public: it carries no account data, only the build version
// and the accounting settings in force.
func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfo.Info(r.Context()), http.StatusOK)
}
