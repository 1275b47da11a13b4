package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/service"
	"github.com/MKhiriev/crimewatch-access/internal/utils"
)

type apiError struct {
	status int
	code   string
}

var errorStatusMap = map[error]apiError{
	ErrEmptyAuthorizationHeader:        {http.StatusUnauthorized, "unauthorized"},
	ErrInvalidAuthorizationHeader:      {http.StatusUnauthorized, "unauthorized"},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, "unauthorized"},
	service.ErrBadCredential:           {http.StatusUnauthorized, "bad_credential"},

	service.ErrUserInactive: {http.StatusForbidden, "user_inactive"},
	service.ErrForbidden:    {http.StatusForbidden, "forbidden"},

	service.ErrUserNotFound:    {http.StatusNotFound, "user_not_found"},
	service.ErrSessionNotFound: {http.StatusNotFound, "session_not_found"},
	service.ErrUnknownSetting:  {http.StatusNotFound, "unknown_setting"},
	errRouteNotFound:           {http.StatusNotFound, "not_found"},

	errMethodNotAllowed: {http.StatusMethodNotAllowed, "method_not_allowed"},

	service.ErrSessionAlreadyClosed: {http.StatusConflict, "session_already_closed"},
	service.ErrUsernameTaken:        {http.StatusConflict, "username_taken"},

	service.ErrInvalidDataProvided: {http.StatusBadRequest, "invalid_data"},
	service.ErrInvalidSettingValue: {http.StatusBadRequest, "invalid_setting_value"},
	ErrInvalidJSON:                 {http.StatusBadRequest, "invalid_json"},
	ErrInvalidParameter:            {http.StatusBadRequest, "invalid_parameter"},

	service.ErrArtifactMissing: {http.StatusUnprocessableEntity, "artifact_missing"},

	service.ErrQuotaExceeded: {http.StatusTooManyRequests, "quota_exceeded"},
}

var errInternal = apiError{http.StatusInternalServerError, "internal_error"}

func statusFromError(err error) apiError {
	for target, e := range errorStatusMap {
		if errors.Is(err, target) {
			return e
		}
	}
	return errInternal
}

// writeError logs err and writes the JSON error envelope. Messages of
// internal errors are not exposed.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	e := statusFromError(err)

	log := logger.FromRequest(r)
	message := err.Error()
	if e.status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Msg("request failed")
		message = http.StatusText(e.status)
	} else {
		log.Info().Str("func", funcName).Str("error", e.code).Msg(message)
	}

	utils.WriteError(w, e.status, e.code, message)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, "*Handler.notFound", errRouteNotFound)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, "*Handler.methodNotAllowed", errMethodNotAllowed)
}
