// Package httpjson holds the JSON request/response helpers shared by the
// HTTP handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"
)

const maxBodyBytes = 1 << 20

// ErrBadBody is returned by Decode for missing or malformed request bodies.
var ErrBadBody = errors.New("invalid request body")

// Write serializes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error body: {"error": message}.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, map[string]string{"error": message})
}

// FieldError writes a JSON error body carrying the offending field:
// {"error": message, "field": field}.
func FieldError(w http.ResponseWriter, status int, field, message string) {
	Write(w, status, map[string]string{"error": message, "field": field})
}

// Decode reads the request body into v, rejecting bodies over 1 MiB.
func Decode(r *http.Request, v any) error {
	if r.Body == nil {
		return ErrBadBody
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return ErrBadBody
	}
	return nil
}
