package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"restaurant-pos/internal/domain"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeProblem emits the simplified problem+json error shape: machine
// readable type, HTTP title, status and a human detail.
func writeProblem(w http.ResponseWriter, code int, typ, detail string) {
	writeJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}

// mapError translates the core error taxonomy to an HTTP status and a
// machine-readable error code.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrAlreadyPaid):
		return http.StatusConflict, "already_paid"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, "invalid_transition"
	case errors.Is(err, domain.ErrAmountMismatch):
		return http.StatusUnprocessableEntity, "amount_mismatch"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func respondError(w http.ResponseWriter, err error) {
	code, typ := mapError(err)
	writeProblem(w, code, typ, err.Error())
}
