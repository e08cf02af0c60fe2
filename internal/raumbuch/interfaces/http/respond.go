package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"elektro-raumbuch/internal/raumbuch/domain"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: code, Message: message})
}

// respondServiceError maps service errors onto HTTP statuses. Unknown
// errors from a write path are treated as validation failures.
func respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}
	respondError(w, http.StatusBadRequest, "bad_request", err.Error())
}

func respondReadError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}
	respondError(w, http.StatusInternalServerError, "internal", "query failed")
}

func decodeJSON(r *http.Request, dest any) error {
	return json.NewDecoder(r.Body).Decode(dest)
}
