// Package response writes the API's success and error envelopes.
//
// Success responses are {"message": ..., "data": ...}; error responses
// carry the canonical {title, detail, instance, code, link} payload
// from the apierror package.
package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/authgate/authgate-go/internal/apierror"
)

// Envelope is the success response shape.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// validationPayload extends the error payload with per-field violations.
type validationPayload struct {
	apierror.Payload
	Errors map[string][]string `json:"errors"`
}

// Message writes a message-only success envelope.
func Message(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Envelope{Message: msg})
}

// Expanded writes a success envelope with a data payload.
func Expanded(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, Envelope{Message: msg, Data: data})
}

// Error writes a canonical error payload for the given kind.
func Error(w http.ResponseWriter, r *http.Request, status int, kind apierror.Kind, detail string) {
	writeJSON(w, status, apierror.New(kind, detail, InstancePath(r)))
}

// ValidationError writes a 422 payload listing the failing fields.
func ValidationError(w http.ResponseWriter, r *http.Request, fields map[string][]string) {
	payload := validationPayload{
		Payload: apierror.New(apierror.Validation, "The given data was invalid.", InstancePath(r)),
		Errors:  fields,
	}
	writeJSON(w, http.StatusUnprocessableEntity, payload)
}

// InstancePath returns the request path without the leading slash, the
// form used for the error payload's instance field.
func InstancePath(r *http.Request) string {
	return strings.TrimPrefix(r.URL.Path, "/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
