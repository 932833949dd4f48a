package handler

import (
	"encoding/json"
	"net/http"
)

// envelope is the wire shape of every response: a success flag, a
// human-readable message, and either the payload fields (merged at the top
// level under their entity names) or an error detail.
type envelope map[string]any

// errorDetail carries the machine-readable error kind alongside the message.
type errorDetail struct {
	Code string `json:"code"`
}

// writeSuccess writes a success envelope with the given payload fields.
// fields may be nil for operations that return no entity.
func writeSuccess(w http.ResponseWriter, status int, message string, fields envelope) {
	body := envelope{"success": true, "message": message}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// writeError writes a failure envelope with the given error code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{
		"success": false,
		"message": message,
		"error":   errorDetail{Code: code},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
