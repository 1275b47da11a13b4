package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/crimewatch-access/internal/utils"
	"github.com/MKhiriev/crimewatch-access/models"
)

func (h *Handler) listSettings(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.gate(w, r, models.ActionManageSettings); !ok {
		return
	}

	settings, err := h.services.Settings.All(r.Context())
	if err != nil {
		h.writeError(w, r, "*Handler.listSettings", err)
		return
	}
	utils.WriteJSON(w, settings, http.StatusOK)
}

// updateSetting changes one value. The settings service checks the role
// and audits the change itself.
func (h *Handler) updateSetting(w http.ResponseWriter, r *http.Request) {
	var req models.SettingUpdateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "*Handler.updateSetting", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	principal, _ := utils.GetPrincipalFromContext(r.Context())
	setting, err := h.services.Settings.Update(r.Context(), principal, chi.URLParam(r, "key"), req.Value)
	if err != nil {
		h.writeError(w, r, "*Handler.updateSetting", err)
		return
	}
	utils.WriteJSON(w, setting, http.StatusOK)
}
