package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/crimewatch-access/internal/service"
	"github.com/MKhiriev/crimewatch-access/models"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusUnprocessableEntity: ErrUnprocessable,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
}

// codeErrors maps the "error" field of the response envelope back to the
// service sentinel it was produced from.
var codeErrors = map[string]error{
	"bad_credential":         service.ErrBadCredential,
	"user_inactive":          service.ErrUserInactive,
	"forbidden":              service.ErrForbidden,
	"quota_exceeded":         service.ErrQuotaExceeded,
	"user_not_found":         service.ErrUserNotFound,
	"session_not_found":      service.ErrSessionNotFound,
	"session_already_closed": service.ErrSessionAlreadyClosed,
	"username_taken":         service.ErrUsernameTaken,
	"unknown_setting":        service.ErrUnknownSetting,
	"invalid_setting_value":  service.ErrInvalidSettingValue,
	"invalid_data":           service.ErrInvalidDataProvided,
	"artifact_missing":       service.ErrArtifactMissing,
	"internal_error":         service.ErrStorage,
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	var envelope models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil && envelope.Error != "" {
		body = envelope.Message
	}
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	statusErr, ok := statusErrors[resp.StatusCode()]
	if !ok {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}

	if codeErr, ok := codeErrors[envelope.Error]; ok {
		return fmt.Errorf("%w: %w: %s", statusErr, codeErr, body)
	}
	return fmt.Errorf("%w: %s", statusErr, body)
}
