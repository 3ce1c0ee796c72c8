// Package response writes the API's wire-level JSON shapes: bare payloads,
// {data} and {data, meta} envelopes for reads, and {message} bodies for
// errors and confirmations.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type messageBody struct {
	Message string `json:"message"`
}

type validationBody struct {
	Message string `json:"message"`
	Errors  any    `json:"errors"`
}

type dataBody struct {
	Data any `json:"data"`
}

type dataMetaBody struct {
	Data any `json:"data"`
	Meta any `json:"meta"`
}

// JSON writes an arbitrary payload with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Data writes a {"data": ...} envelope.
func Data(w http.ResponseWriter, status int, data any) {
	JSON(w, status, dataBody{Data: data})
}

// DataWithMeta writes a {"data": ..., "meta": ...} envelope for list
// endpoints.
func DataWithMeta(w http.ResponseWriter, status int, data, meta any) {
	JSON(w, status, dataMetaBody{Data: data, Meta: meta})
}

// Message writes a {"message": ...} confirmation body.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, messageBody{Message: message})
}

// Err writes a {"message": ...} error body.
func Err(w http.ResponseWriter, status int, message string) {
	Message(w, status, message)
}

// ValidationErr writes a 400 with the field-level error list.
func ValidationErr(w http.ResponseWriter, errs any) {
	JSON(w, http.StatusBadRequest, validationBody{
		Message: "Validation failed",
		Errors:  errs,
	})
}
