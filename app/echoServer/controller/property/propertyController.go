package property

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/odekodu/ecobnb-api/app/echoServer/jwtx"
	"github.com/odekodu/ecobnb-api/app/echoServer/response"
	"github.com/odekodu/ecobnb-api/model"
	ps "github.com/odekodu/ecobnb-api/service/property"
)

type Controller struct {
	Svc ps.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/properties
func (h *Controller) Create(c echo.Context) error {
	var req model.CreatePropertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	owner, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	p, err := h.Svc.Create(c.Request().Context(), req, owner)
	if err != nil {
		h.Log.Error("property create", "err", err)
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusCreated, p)
}

// GET /v1/properties
func (h *Controller) List(c echo.Context) error {
	q := ps.ListQuery{
		Query:  c.QueryParam("query"),
		Limit:  intQuery(c, "limit"),
		Offset: intQuery(c, "offset"),
		Asc:    c.QueryParam("sort") == "asc",
	}
	props, err := h.Svc.List(c.Request().Context(), q)
	if err != nil {
		h.Log.Error("property list", "err", err)
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, props)
}

// GET /v1/properties/:id
func (h *Controller) Get(c echo.Context) error {
	p, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, p)
}

// PATCH /v1/properties/:id
func (h *Controller) Update(c echo.Context) error {
	var req model.UpdatePropertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	owner, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	p, err := h.Svc.Update(c.Request().Context(), c.Param("id"), req, owner)
	if err != nil {
		h.Log.Error("property update", "err", err, "property", c.Param("id"))
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, p)
}

// DELETE /v1/properties/:id
func (h *Controller) Remove(c echo.Context) error {
	owner, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	if err := h.Svc.Remove(c.Request().Context(), c.Param("id"), owner); err != nil {
		h.Log.Error("property remove", "err", err, "property", c.Param("id"))
		return response.Error(c, err)
	}
	return response.Message(c, http.StatusOK, "removed")
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
