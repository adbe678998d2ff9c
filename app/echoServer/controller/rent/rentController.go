package rent

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/odekodu/ecobnb-api/app/echoServer/jwtx"
	"github.com/odekodu/ecobnb-api/app/echoServer/response"
	"github.com/odekodu/ecobnb-api/model"
	rs "github.com/odekodu/ecobnb-api/service/rent"
)

var transitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ecobnb_rent_transitions_total",
		Help: "Rent workflow actions by name and outcome",
	},
	[]string{"action", "outcome"},
)

func countTransition(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	transitionsTotal.WithLabelValues(action, outcome).Inc()
}

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/rents
func (h *Controller) Request(c echo.Context) error {
	var req model.CreateRentReq
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
	occupant, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	rent, err := h.Svc.Request(c.Request().Context(), req, occupant)
	countTransition("request", err)
	if err != nil {
		h.Log.Error("rent request", "err", err)
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusCreated, rent)
}

// GET /v1/rents
func (h *Controller) List(c echo.Context) error {
	q := rs.ListQuery{
		Limit:    intQuery(c, "limit"),
		Offset:   intQuery(c, "offset"),
		Asc:      c.QueryParam("sort") == "asc",
		Occupant: c.QueryParam("occupant"),
		Property: c.QueryParam("property"),
	}
	rents, err := h.Svc.List(c.Request().Context(), q)
	if err != nil {
		h.Log.Error("rent list", "err", err)
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, rents)
}

// GET /v1/rents/:id
func (h *Controller) Get(c echo.Context) error {
	rent, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, rent)
}

// PATCH /v1/rents/:id/approve
func (h *Controller) Approve(c echo.Context) error {
	return h.transition(c, "approve", h.Svc.Approve)
}

// PATCH /v1/rents/:id/reject
func (h *Controller) Reject(c echo.Context) error {
	return h.transition(c, "reject", h.Svc.Reject)
}

// PATCH /v1/rents/:id/paying
func (h *Controller) Paying(c echo.Context) error {
	return h.transition(c, "paying", h.Svc.Paying)
}

// PATCH /v1/rents/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	return h.transition(c, "cancel", h.Svc.Cancel)
}

// PATCH /v1/rents/:id/cancel-rent-payment
func (h *Controller) CancelPayment(c echo.Context) error {
	return h.transition(c, "cancel_payment", h.Svc.CancelPayment)
}

// PATCH /v1/rents/:id/pay
func (h *Controller) Pay(c echo.Context) error {
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
	user, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	rent, err := h.Svc.Pay(c.Request().Context(), c.Param("id"), user, req)
	countTransition("pay", err)
	if err != nil {
		h.Log.Error("rent pay", "err", err, "rent", c.Param("id"))
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, rent)
}

func (h *Controller) transition(c echo.Context, action string, fn func(ctx context.Context, id, user string) (*model.Rent, error)) error {
	user, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}

	rent, err := fn(c.Request().Context(), c.Param("id"), user)
	countTransition(action, err)
	if err != nil {
		h.Log.Error("rent "+action, "err", err, "rent", c.Param("id"))
		return response.Error(c, err)
	}
	return response.JSON(c, http.StatusOK, rent)
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
