package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/service"
	"github.com/MKhiriev/crimewatch-access/internal/utils"
	"github.com/MKhiriev/crimewatch-access/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, "*Handler.login", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}
	if req.Username == "" || req.Password == "" {
		h.writeError(w, r, "*Handler.login", service.ErrInvalidDataProvided)
		return
	}

	user, err := h.services.Credentials.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		// an unknown username is reported like a wrong password
		if errors.Is(err, service.ErrUserNotFound) {
			err = service.ErrBadCredential
		}
		h.writeError(w, r, "*Handler.login", err)
		return
	}

	h.startSession(w, r, user.Principal())
}

func (h *Handler) guest(w http.ResponseWriter, r *http.Request) {
	h.startSession(w, r, h.services.Credentials.Guest())
}

// startSession opens a session for principal and answers with its token.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, principal models.Principal) {
	ctx := r.Context()

	session, err := h.services.Sessions.Open(ctx, principal)
	if err != nil {
		h.writeError(w, r, "*Handler.startSession", err)
		return
	}

	token, err := h.services.Tokens.CreateToken(ctx, principal, session.ID)
	if err != nil {
		h.writeError(w, r, "*Handler.startSession", err)
		return
	}

	logger.FromRequest(r).Info().
		Str("username", principal.Username).
		Int64("session_id", session.ID).
		Msg("session started")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{
		Token:     token.SignedString,
		SessionID: session.ID,
		Principal: principal,
	}, http.StatusOK)
}

// logout closes the session bound to the token. The token itself stays
// verifiable until it expires; a second logout answers 409.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, "*Handler.logout", ErrInvalidAuthorizationHeader)
		return
	}

	session, err := h.services.Sessions.Close(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, r, "*Handler.logout", err)
		return
	}

	utils.WriteJSON(w, session, http.StatusOK)
}
