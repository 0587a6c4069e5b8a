package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
	"github.com/machingclee/scriptdeck/internal/cqrs"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

// statusFor maps domain and runtime errors to HTTP status codes. Unknown
// errors are internal: handler errors already rolled the transaction back,
// so nothing partial leaked.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrFolderNotFound),
		errors.Is(err, domain.ErrScriptNotFound),
		errors.Is(err, domain.ErrWorkspaceNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, cqrs.ErrNoHandler):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyPinned),
		errors.Is(err, domain.ErrSameFolder):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptyBody),
		errors.Is(err, domain.ErrEmptyModel):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
