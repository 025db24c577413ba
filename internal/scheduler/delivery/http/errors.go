package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/brunotrento11/Teste-sub000/internal/scheduler/dto"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/service"

	"github.com/labstack/echo/v4"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyAcknowledged):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c echo.Context, err error) error {
	return c.JSON(statusFor(err), dto.ErrorResponse{Error: err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}

func paramID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
