// Package response renders the wire shape { success, payload?, message? } and
// maps service error kinds onto HTTP statuses.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odekodu/ecobnb-api/util/apperr"
)

type Body struct {
	Success bool   `json:"success"`
	Payload any    `json:"payload,omitempty"`
	Message string `json:"message,omitempty"`
}

func JSON(c echo.Context, status int, payload any) error {
	return c.JSON(status, Body{Success: true, Payload: payload})
}

func Message(c echo.Context, status int, msg string) error {
	return c.JSON(status, Body{Success: true, Message: msg})
}

func Error(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	msg := "internal error"
	switch apperr.KindOf(err) {
	case apperr.NotFound:
		status, msg = http.StatusNotFound, err.Error()
	case apperr.Unauthorized:
		status, msg = http.StatusUnauthorized, err.Error()
	case apperr.BadRequest:
		status, msg = http.StatusBadRequest, err.Error()
	case apperr.Conflict:
		status, msg = http.StatusConflict, err.Error()
	}
	return c.JSON(status, Body{Success: false, Message: msg})
}
