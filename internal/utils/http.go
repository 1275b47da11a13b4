package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/crimewatch-access/models"
)

// WriteJSON serializes data to JSON and writes it with statusCode.
//
// If marshaling fails, it responds with 500 Internal Server Error and
// returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes the JSON error envelope used by every failing endpoint:
//
//	{"error": "quota_exceeded", "message": "daily quota exceeded"}
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, models.ErrorResponse{Error: code, Message: message}, statusCode)
}

// DecodeJSON reads one JSON value from r's body into v. Unknown fields are
// rejected.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}
