package echoServer

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/odekodu/ecobnb-api/app/echoServer/controller/auth"
	"github.com/odekodu/ecobnb-api/app/echoServer/controller/notification"
	"github.com/odekodu/ecobnb-api/app/echoServer/controller/property"
	"github.com/odekodu/ecobnb-api/app/echoServer/controller/rent"
	"github.com/odekodu/ecobnb-api/app/echoServer/controller/transaction"
	"github.com/odekodu/ecobnb-api/model"
)

type C struct {
	Auth         *auth.Controller
	Property     *property.Controller
	Rent         *rent.Controller
	Transaction  *transaction.Controller
	Notification *notification.Controller
	JWTSecret    string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)
	pub.GET("/properties", c.Property.List)
	pub.GET("/properties/:id", c.Property.Get)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
	}))

	// Users
	auth.GET("/users/me", c.Auth.Me)

	// Properties
	auth.POST("/properties", c.Property.Create)
	auth.PATCH("/properties/:id", c.Property.Update)
	auth.DELETE("/properties/:id", c.Property.Remove)

	// Rents
	auth.POST("/rents", c.Rent.Request)
	auth.GET("/rents", c.Rent.List)
	auth.GET("/rents/:id", c.Rent.Get)
	auth.PATCH("/rents/:id/approve", c.Rent.Approve)
	auth.PATCH("/rents/:id/reject", c.Rent.Reject)
	auth.PATCH("/rents/:id/paying", c.Rent.Paying)
	auth.PATCH("/rents/:id/pay", c.Rent.Pay)
	auth.PATCH("/rents/:id/cancel", c.Rent.Cancel)
	auth.PATCH("/rents/:id/cancel-rent-payment", c.Rent.CancelPayment)

	// Transactions
	auth.POST("/transactions", c.Transaction.Create)
	auth.GET("/transactions", c.Transaction.List)
	auth.GET("/transactions/:id", c.Transaction.Get)

	// Notifications are system-wide event rows, superadmin only
	admin := auth.Group("/notifications", RequireRole(string(model.RoleSuperadmin)))
	admin.GET("", c.Notification.List)
	admin.GET("/:id", c.Notification.Get)
}
