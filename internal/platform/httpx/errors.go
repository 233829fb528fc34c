package httpx

import (
	"errors"
	"net/http"

	"github.com/atlas-console/atlas-console/internal/shared"
)

// RespondError maps domain errors to HTTP responses. Status codes follow the
// reference behavior: conflicts and bad credentials are 400, invalid or
// expired tokens are 403.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation),
		errors.Is(err, shared.ErrInvalidCredentials),
		errors.Is(err, shared.ErrDuplicateEmail):
		Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrUnauthenticated):
		Message(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, shared.ErrTokenInvalid),
		errors.Is(err, shared.ErrForbidden):
		Message(w, http.StatusForbidden, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Message(w, http.StatusNotFound, err.Error())
	default:
		Message(w, http.StatusInternalServerError, "internal server error")
	}
}
