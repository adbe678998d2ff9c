package transaction

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/odekodu/ecobnb-api/app/echoServer/response"
	"github.com/odekodu/ecobnb-api/model"
	ts "github.com/odekodu/ecobnb-api/service/transaction"
)

type Controller struct {
	Svc ts.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/transactions
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateTransactionReq
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

	t, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		h.Log.Error("transaction create", "err", err)
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusCreated, t)
}

// GET /v1/transactions
func (h *Controller) List(c echo.Context) error {
	q := ts.ListQuery{
		MinDate:      timeQuery(c, "minDate"),
		MaxDate:      timeQuery(c, "maxDate"),
		MinAmount:    floatQuery(c, "minAmount"),
		MaxAmount:    floatQuery(c, "maxAmount"),
		Transactable: model.Transactable(c.QueryParam("transactable")),
		Item:         c.QueryParam("item"),
		Limit:        intQuery(c, "limit"),
		Offset:       intQuery(c, "offset"),
		Asc:          c.QueryParam("sort") == "asc",
	}
	txns, err := h.Svc.List(c.Request().Context(), q)
	if err != nil {
		h.Log.Error("transaction list", "err", err)
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, txns)
}

// GET /v1/transactions/:id
func (h *Controller) Get(c echo.Context) error {
	t, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, t)
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

func floatQuery(c echo.Context, name string) *float64 {
	v := c.QueryParam(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// timeQuery accepts unix milliseconds, matching the wire format of the filters.
func timeQuery(c echo.Context, name string) *time.Time {
	v := c.QueryParam(name)
	if v == "" {
		return nil
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	t := time.UnixMilli(ms)
	return &t
}
