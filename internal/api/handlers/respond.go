package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/wonny/forensic-wacc/internal/wacc"
)

// ErrorResponse is the JSON body for failed requests
type ErrorResponse struct {
	Error    string    `json:"error"`
	Kind     wacc.Kind `json:"kind,omitempty"`
	Variable string    `json:"variable,omitempty"`
	Value    *float64  `json:"value,omitempty"`
}

// maxBodyBytes caps request bodies (batch requests included)
const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondSolverError maps solver error kinds to HTTP status codes
// invalid_input → 400, not_identifiable / inconsistent_inputs → 422
func respondSolverError(w http.ResponseWriter, err error) {
	var se *wacc.Error
	if !errors.As(err, &se) {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	body := ErrorResponse{
		Error:    se.Error(),
		Kind:     se.Kind,
		Variable: string(se.Variable),
	}
	if se.HasValue {
		v := se.Value
		body.Value = &v
	}

	status := http.StatusUnprocessableEntity
	if se.Kind == wacc.KindInvalidInput {
		status = http.StatusBadRequest
	}
	respondJSON(w, status, body)
}

// decodeJSON decodes a request body strictly (unknown fields rejected)
func decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
