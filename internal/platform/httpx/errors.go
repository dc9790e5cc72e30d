// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the payload loading layer.
var (
	ErrBadUpstream = errors.New("upstream payload invalid")
	ErrUnavailable = errors.New("upstream unavailable")
)

// StatusOf maps a domain error to its HTTP status code.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadUpstream):
		return http.StatusBadGateway
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	switch status {
	case http.StatusInternalServerError:
		Problem(w, status, "Internal Error", "")
	case http.StatusBadGateway:
		Problem(w, status, "Bad Upstream Payload", err.Error())
	case http.StatusServiceUnavailable:
		Problem(w, status, "Unavailable", err.Error())
	default:
		Problem(w, status, http.StatusText(status), err.Error())
	}
}
