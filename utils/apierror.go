package utils

import "net/http"

// Error kinds surfaced by the booking core. The string values are part
// of the client contract and mirror the payloads the PWA expects.
const (
	ErrInvalidQuery            = "invalid_query"
	ErrInvalidData             = "invalid_data"
	ErrInvalidCredentials      = "invalid_credentials"
	ErrLoginError              = "login_error"
	ErrUserExists              = "user_exists"
	ErrUnauthorized            = "unauthorized"
	ErrResourceNotFound        = "resource_not_found"
	ErrReservationTimeConflict = "reservation_time_conflict"
	ErrDateInThePast           = "date_in_the_past"
	ErrInternalServer          = "internal_server_error"
)

// APIError is a domain failure carrying the error kind and the HTTP
// status the transport layer should answer with.
type APIError struct {
	Status int
	Code   string
	Data   map[string]any
}

func (e *APIError) Error() string {
	return e.Code
}

// statusByCode maps error kinds to HTTP statuses per the API contract:
// validation failures and conflicts are 400, authorization failures 401,
// missing resources 404, everything unexpected 500.
var statusByCode = map[string]int{
	ErrInvalidQuery:            http.StatusBadRequest,
	ErrInvalidData:             http.StatusBadRequest,
	ErrInvalidCredentials:      http.StatusBadRequest,
	ErrLoginError:              http.StatusBadRequest,
	ErrUserExists:              http.StatusBadRequest,
	ErrUnauthorized:            http.StatusUnauthorized,
	ErrResourceNotFound:        http.StatusNotFound,
	ErrReservationTimeConflict: http.StatusBadRequest,
	ErrDateInThePast:           http.StatusBadRequest,
	ErrInternalServer:          http.StatusInternalServerError,
}

// NewAPIError builds an APIError for the given kind.
func NewAPIError(code string, data map[string]any) *APIError {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &APIError{Status: status, Code: code, Data: data}
}
