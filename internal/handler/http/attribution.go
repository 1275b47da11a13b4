package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/crimewatch-access/internal/utils"
	"github.com/MKhiriev/crimewatch-access/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 1000
)

func (h *Handler) recordPrediction(w http.ResponseWriter, r *http.Request) {
	var forecast models.Forecast
	if err := utils.DecodeJSON(r, &forecast); err != nil {
		h.writeError(w, r, "*Handler.recordPrediction", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	principal, _ := utils.GetPrincipalFromContext(r.Context())
	id, err := h.services.Attribution.RecordPrediction(r.Context(), principal, sessionOf(r), forecast)
	if err != nil {
		h.writeError(w, r, "*Handler.recordPrediction", err)
		return
	}

	utils.WriteJSON(w, models.IDResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) recordReport(w http.ResponseWriter, r *http.Request) {
	var artifact models.ReportArtifact
	if err := utils.DecodeJSON(r, &artifact); err != nil {
		h.writeError(w, r, "*Handler.recordReport", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	principal, _ := utils.GetPrincipalFromContext(r.Context())
	id, err := h.services.Attribution.RecordReport(r.Context(), principal, sessionOf(r), artifact)
	if err != nil {
		h.writeError(w, r, "*Handler.recordReport", err)
		return
	}

	utils.WriteJSON(w, models.IDResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) listPredictions(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.gate(w, r, models.ActionViewAudit); !ok {
		return
	}

	limit, err := limitParam(r)
	if err != nil {
		h.writeError(w, r, "*Handler.listPredictions", err)
		return
	}

	records, err := h.services.Attribution.ListPredictions(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, "*Handler.listPredictions", err)
		return
	}
	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.gate(w, r, models.ActionViewAudit); !ok {
		return
	}

	limit, err := limitParam(r)
	if err != nil {
		h.writeError(w, r, "*Handler.listReports", err)
		return
	}

	records, err := h.services.Attribution.ListReports(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, "*Handler.listReports", err)
		return
	}
	utils.WriteJSON(w, records, http.StatusOK)
}

// sessionOf returns the session id carried by the request token.
func sessionOf(r *http.Request) *int64 {
	id, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok || id == 0 {
		return nil
	}
	return &id
}

func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > maxListLimit {
		return 0, fmt.Errorf("%w: limit must be in 1..%d", ErrInvalidParameter, maxListLimit)
	}
	return limit, nil
}
