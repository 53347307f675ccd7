// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/restock/pkg/httpx"
	restockdomain "github.com/ghuser/restock/services/restock/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors, whose
// message is never sent to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		httpx.JSONError(w, status, http.StatusText(status))
		return
	}

	var derr *restockdomain.Error
	if errors.As(err, &derr) && derr.Field != "" {
		httpx.JSON(w, status, map[string]any{
			"error":  derr.Message,
			"fields": map[string]string{derr.Field: derr.Message},
		})
		return
	}
	httpx.JSONError(w, status, err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, restockdomain.ErrSessionNotFound),
		errors.Is(err, restockdomain.ErrProductNotFound),
		errors.Is(err, restockdomain.ErrSupplierNotFound),
		errors.Is(err, restockdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, restockdomain.ErrCrossTenant):
		return http.StatusForbidden // 403
	case errors.Is(err, restockdomain.ErrDuplicateProduct),
		errors.Is(err, restockdomain.ErrSessionClosed),
		errors.Is(err, restockdomain.ErrInvalidState),
		errors.Is(err, restockdomain.ErrEmptySession),
		errors.Is(err, restockdomain.ErrSessionConflict):
		return http.StatusConflict // 409
	case errors.Is(err, restockdomain.ErrValidation):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
