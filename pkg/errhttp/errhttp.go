// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"context"
	"errors"
	"net/http"

	"github.com/ghuser/bomlabel/pkg/httpx"
	labeldomain "github.com/ghuser/bomlabel/services/label/domain"
)

// WriteSafeError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
// With isProduction set, 5xx responses carry only the status text.
func WriteSafeError(w http.ResponseWriter, err error, isProduction bool) {
	status := mapErrorToStatus(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, isProduction))
}

// Status returns the HTTP status code WriteSafeError would use for err.
func Status(err error) int {
	return mapErrorToStatus(err)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, labeldomain.ErrItemNotFound),
		errors.Is(err, labeldomain.ErrLabelNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, labeldomain.ErrInvalidItemCode),
		errors.Is(err, labeldomain.ErrInvalidRootKind),
		errors.Is(err, labeldomain.ErrZeroTotalQuantity),
		errors.Is(err, labeldomain.ErrCyclicTree):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, labeldomain.ErrInvalidItemData),
		errors.Is(err, labeldomain.ErrUpstream):
		return http.StatusBadGateway // 502
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout // 504
	default:
		return http.StatusInternalServerError // 500
	}
}
