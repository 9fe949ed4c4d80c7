package handler

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"github.com/amehta/tripmates/internal/domain"
)

// validate is the shared request validator. Rules live in `validate`
// struct tags on the request types.
var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON decodes the request body into T and runs the validator over
// it. Both failure modes map to domain.ErrValidation so handlers can
// treat them uniformly.
func decodeJSON[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("%w: malformed request body", domain.ErrValidation)
	}
	if err := validate.Struct(v); err != nil {
		var invalid validator.ValidationErrors
		if ok := asValidationErrors(err, &invalid); ok && len(invalid) > 0 {
			return v, fmt.Errorf("%w: invalid field %q", domain.ErrValidation, invalid[0].Field())
		}
		return v, fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	return v, nil
}

// asValidationErrors is a typed wrapper around errors.As kept separate so
// decodeJSON reads linearly.
func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if ve, ok := err.(validator.ValidationErrors); ok {
		*target = ve
		return true
	}
	return false
}

// writeJSON serializes v and writes it with the given status code.
// Encoding failures at this point can only be programming errors, so the
// status line has already gone out and the body is best-effort.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
