package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/crimewatch-access/internal/service"
	"github.com/MKhiriev/crimewatch-access/internal/utils"
	"github.com/MKhiriev/crimewatch-access/models"
)

// checkAndConsume exposes the quota ledger. The decision body is returned
// for every outcome; the status is 200, 429 or 403.
func (h *Handler) checkAndConsume(w http.ResponseWriter, r *http.Request) {
	action, ok := models.ParseAction(chi.URLParam(r, "action"))
	if !ok {
		h.writeError(w, r, "*Handler.checkAndConsume", fmt.Errorf("%w: unknown action %q", ErrInvalidParameter, chi.URLParam(r, "action")))
		return
	}

	principal, _ := utils.GetPrincipalFromContext(r.Context())
	decision, err := h.services.Quota.CheckAndConsume(r.Context(), principal, action)
	if err != nil {
		h.writeError(w, r, "*Handler.checkAndConsume", err)
		return
	}

	status := http.StatusForbidden
	switch decision.Outcome {
	case models.QuotaAllowed:
		status = http.StatusOK
	case models.QuotaExceeded:
		status = http.StatusTooManyRequests
	}
	utils.WriteJSON(w, decision, status)
}

// gate runs action through the quota ledger on behalf of the caller and
// writes the error response when it is not allowed.
func (h *Handler) gate(w http.ResponseWriter, r *http.Request, action models.Action) (models.Principal, bool) {
	principal, _ := utils.GetPrincipalFromContext(r.Context())

	decision, err := h.services.Quota.CheckAndConsume(r.Context(), principal, action)
	if err != nil {
		h.writeError(w, r, "*Handler.gate", err)
		return principal, false
	}

	switch decision.Outcome {
	case models.QuotaAllowed:
		return principal, true
	case models.QuotaExceeded:
		h.writeError(w, r, "*Handler.gate", service.ErrQuotaExceeded)
	default:
		h.writeError(w, r, "*Handler.gate", service.ErrForbidden)
	}
	return principal, false
}
