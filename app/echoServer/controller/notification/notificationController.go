package notification

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/odekodu/ecobnb-api/app/echoServer/response"
	ns "github.com/odekodu/ecobnb-api/service/notification"
)

type Controller struct {
	Svc ns.Service
	Log *slog.Logger
}

// GET /v1/notifications
func (h *Controller) List(c echo.Context) error {
	limit := intQuery(c, "limit")
	offset := intQuery(c, "offset")
	asc := c.QueryParam("sort") == "asc"

	list, err := h.Svc.List(c.Request().Context(), limit, offset, asc)
	if err != nil {
		h.Log.Error("notification list", "err", err)
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, list)
}

// GET /v1/notifications/:id
func (h *Controller) Get(c echo.Context) error {
	n, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, n)
}

func intQuery(c echo.Context, name string) int {
	v := c.QueryParam(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
