package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrTokenExpired
	ErrForbidden
	ErrCredentialExists
	ErrInvalidPassword
	ErrTooManyRequest
	ErrNoFileUploaded
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:          "success",
	ErrInternal:         "error internal",
	ErrNotFound:         "data not found",
	ErrInvalidRequest:   "invalid request",
	ErrUnauthorize:      "unauthorize request",
	ErrTokenExpired:     "token expired",
	ErrForbidden:        "access denied",
	ErrCredentialExists: "email already exists",
	ErrInvalidPassword:  "password invalid",
	ErrTooManyRequest:   "too many requests, try again later",
	ErrNoFileUploaded:   "no file uploaded",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:          http.StatusOK,
	ErrInternal:         http.StatusInternalServerError,
	ErrNotFound:         http.StatusNotFound,
	ErrInvalidRequest:   http.StatusBadRequest,
	ErrUnauthorize:      http.StatusUnauthorized,
	ErrTokenExpired:     http.StatusUnauthorized,
	ErrForbidden:        http.StatusForbidden,
	ErrCredentialExists: http.StatusBadRequest,
	ErrInvalidPassword:  http.StatusBadRequest,
	ErrTooManyRequest:   http.StatusTooManyRequests,
	ErrNoFileUploaded:   http.StatusBadRequest,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:          "0000",
	ErrInternal:         "0001",
	ErrNotFound:         "0002",
	ErrInvalidRequest:   "0003",
	ErrUnauthorize:      "0004",
	ErrTokenExpired:     "0005",
	ErrForbidden:        "0006",
	ErrCredentialExists: "0007",
	ErrInvalidPassword:  "0008",
	ErrTooManyRequest:   "0009",
	ErrNoFileUploaded:   "0010",
}
