package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/crimewatch-access/internal/utils"
	"github.com/MKhiriev/crimewatch-access/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	principal, _ := utils.GetPrincipalFromContext(r.Context())

	users, err := h.services.Credentials.ListUsers(r.Context(), principal)
	if err != nil {
		h.writeError(w, r, "*Handler.listUsers", err)
		return
	}
	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var newUser models.NewUser
	if err := utils.DecodeJSON(r, &newUser); err != nil {
		h.writeError(w, r, "*Handler.createUser", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	principal, _ := utils.GetPrincipalFromContext(r.Context())
	user, err := h.services.Credentials.CreateUser(r.Context(), principal, newUser)
	if err != nil {
		h.writeError(w, r, "*Handler.createUser", err)
		return
	}
	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		h.writeError(w, r, "*Handler.changePassword", err)
		return
	}

	var req models.PasswordChangeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "*Handler.changePassword", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	principal, _ := utils.GetPrincipalFromContext(r.Context())
	if err := h.services.Credentials.ChangePassword(r.Context(), principal, userID, req.Password); err != nil {
		h.writeError(w, r, "*Handler.changePassword", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) changeRole(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		h.writeError(w, r, "*Handler.changeRole", err)
		return
	}

	var req models.RoleChangeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "*Handler.changeRole", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	principal, _ := utils.GetPrincipalFromContext(r.Context())
	if err := h.services.Credentials.ChangeRole(r.Context(), principal, userID, req.Role); err != nil {
		h.writeError(w, r, "*Handler.changeRole", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		h.writeError(w, r, "*Handler.setActive", err)
		return
	}

	var req models.ActiveChangeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "*Handler.setActive", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	principal, _ := utils.GetPrincipalFromContext(r.Context())
	if err := h.services.Credentials.SetActive(r.Context(), principal, userID, req.Active); err != nil {
		h.writeError(w, r, "*Handler.setActive", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func userIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: user id", ErrInvalidParameter)
	}
	return id, nil
}
