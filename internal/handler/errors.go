package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/amehta/tripmates/internal/domain"
)

// errorResponse is the uniform failure body: {"error": "..."}.
// The client depends on this exact field name.
type errorResponse struct {
	Error string `json:"error"`
}

// personalityRequiredMsg is surfaced verbatim — the client shows it to
// the user as the call to action.
const personalityRequiredMsg = "You must complete the personality test before booking."

// respondError maps domain sentinel errors onto HTTP statuses. Anything
// unrecognized is logged and surfaced as a generic 500 without leaking
// internal detail.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: unwrapMessage(err)})
	case errors.Is(err, domain.ErrPersonalityRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: personalityRequiredMsg})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "access denied, admins only"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: unwrapMessage(err)})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: unwrapMessage(err)})
	default:
		slog.ErrorContext(r.Context(), "unexpected handler error", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// notFound writes a 404 with a handler-supplied message — the handler is
// the layer that knows what was being looked up.
func notFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: message})
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel
// error, e.g. "service.PlaceService: validation error: title is required"
// becomes "title is required". When there is no detail after the sentinel
// the sentinel text itself is returned.
func unwrapMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error(),
		domain.ErrNotFound.Error(),
		domain.ErrConflict.Error(),
	} {
		if i := strings.LastIndex(msg, sentinel+": "); i >= 0 {
			return msg[i+len(sentinel)+2:]
		}
	}
	// Strip "layer.Type.Method: " prefixes, keeping the final clause.
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
