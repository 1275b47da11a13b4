package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/service"
	"github.com/MKhiriev/crimewatch-access/internal/utils"
	"github.com/MKhiriev/crimewatch-access/models"
)

// auth requires a valid session token whose session is still open and
// belongs to the token's principal. Once the session is closed its token
// is rejected.
//
// On success the principal and the session id carried by the token are put
// into the request context, and the request logger is tagged with the
// username. The role in the token is informational only: every privileged
// call below re-reads it from storage.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.writeError(w, r, "*Handler.auth", ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			h.writeError(w, r, "*Handler.auth", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		ctx := r.Context()
		token, err := h.services.Tokens.ParseToken(ctx, tokenString)
		if err != nil {
			h.writeError(w, r, "*Handler.auth", err)
			return
		}

		principal, err := token.Principal()
		if err != nil {
			h.writeError(w, r, "*Handler.auth", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		sess, err := h.services.Sessions.Get(ctx, token.SessionID)
		if errors.Is(err, service.ErrSessionNotFound) {
			h.writeError(w, r, "*Handler.auth", fmt.Errorf("%w: %v", service.ErrTokenIsExpiredOrInvalid, err))
			return
		}
		if err != nil {
			h.writeError(w, r, "*Handler.auth", err)
			return
		}
		if sess.State() != models.SessionOpen {
			h.writeError(w, r, "*Handler.auth", fmt.Errorf("%w: %v", service.ErrTokenIsExpiredOrInvalid, service.ErrSessionAlreadyClosed))
			return
		}
		if !sameUser(sess.UserID, principal.UserID) {
			h.writeError(w, r, "*Handler.auth", fmt.Errorf("%w: session %d is not held by %s", service.ErrTokenIsExpiredOrInvalid, sess.ID, principal.Username))
			return
		}

		l := logger.FromRequest(r).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("username", principal.Username).Int64("session_id", token.SessionID)
		})

		ctx = utils.WithPrincipal(l.WithContext(ctx), principal, token.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sameUser(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
