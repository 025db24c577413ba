package http

import (
	"errors"
	"net/http"

	"github.com/brunotrento11/Teste-sub000/internal/executor/service"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnknownJob), errors.Is(err, service.ErrAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrJobLocked):
		return http.StatusConflict
	case errors.Is(err, service.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
