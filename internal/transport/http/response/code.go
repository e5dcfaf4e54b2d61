package response

import "net/http"

// Error kinds exposed to clients in the "error" field.
const (
	KindDuplicateEmail     = "DuplicateEmail"
	KindInvalidCredentials = "InvalidCredentials"
	KindInvalidInput       = "InvalidInput"
	KindUnauthorized       = "Unauthorized"
	KindForbidden          = "Forbidden"
	KindNotFound           = "NotFound"
	KindTooManyRequests    = "TooManyRequests"
	KindTimeout            = "Timeout"
	KindInternal           = "InternalError"
)

// KindMsgMap holds the default human-readable message per kind.
var KindMsgMap = map[string]string{
	KindDuplicateEmail:     "email already exists",
	KindInvalidCredentials: "invalid credentials",
	KindInvalidInput:       "invalid input",
	KindUnauthorized:       "unauthorized",
	KindForbidden:          "forbidden",
	KindNotFound:           "not found",
	KindTooManyRequests:    "too many requests",
	KindTimeout:            "request timed out",
	KindInternal:           "internal server error",
}

// KindStatus is the HTTP status each kind is served with.
var KindStatus = map[string]int{
	KindDuplicateEmail:     http.StatusBadRequest,
	KindInvalidCredentials: http.StatusBadRequest,
	KindInvalidInput:       http.StatusBadRequest,
	KindUnauthorized:       http.StatusUnauthorized,
	KindForbidden:          http.StatusForbidden,
	KindNotFound:           http.StatusNotFound,
	KindTooManyRequests:    http.StatusTooManyRequests,
	KindTimeout:            http.StatusGatewayTimeout,
	KindInternal:           http.StatusInternalServerError,
}
