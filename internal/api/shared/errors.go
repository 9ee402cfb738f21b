package shared

import (
	"net/http"

	"github.com/phrazzld/mesto-api/internal/domain"
)

// MapErrorToStatusCode returns the HTTP status for err's kind. Errors outside
// the domain taxonomy are internal.
func MapErrorToStatusCode(err error) int {
	switch domain.KindOf(err) {
	case domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for err. Internal
// errors always yield a generic message.
func GetSafeErrorMessage(err error) string {
	return domain.SafeMessage(err)
}
