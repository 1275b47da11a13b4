package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/utils"
	"github.com/MKhiriev/crimewatch-access/models"
)

// listAudit returns audit entries in timestamp order.
//
// Query parameters: user_id, username, action, from and to (RFC 3339,
// half-open range), limit and newest=true for most-recent-first.
func (h *Handler) listAudit(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.gate(w, r, models.ActionViewAudit); !ok {
		return
	}

	filter, err := auditFilterFromQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, r, "*Handler.listAudit", err)
		return
	}

	entries, err := h.services.Audit.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, "*Handler.listAudit", err)
		return
	}
	utils.WriteJSON(w, entries, http.StatusOK)
}

func auditFilterFromQuery(q url.Values) (models.AuditFilter, error) {
	filter := models.AuditFilter{
		Username: q.Get("username"),
		Action:   q.Get("action"),
	}

	if raw := q.Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.AuditFilter{}, fmt.Errorf("%w: user_id: %w", ErrInvalidParameter, err)
		}
		filter.UserID = &id
	}

	for name, dst := range map[string]*time.Time{"from": &filter.From, "to": &filter.To} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return models.AuditFilter{}, fmt.Errorf("%w: %s: %w", ErrInvalidParameter, name, err)
		}
		*dst = ts
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.AuditFilter{}, fmt.Errorf("%w: limit: %w", ErrInvalidParameter, err)
		}
		filter.Limit = limit
	}

	if raw := q.Get("newest"); raw != "" {
		newest, err := strconv.ParseBool(raw)
		if err != nil {
			return models.AuditFilter{}, fmt.Errorf("%w: newest: %w", ErrInvalidParameter, err)
		}
		filter.Newest = newest
	}

	return filter, nil
}
