// Package main ecobnb API.
//
// @title           Ecobnb API
// @version         1.0
// @description     Property rental marketplace (properties, rents, transactions, notifications).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/odekodu/ecobnb-api/app/echoServer"
	authctrl "github.com/odekodu/ecobnb-api/app/echoServer/controller/auth"
	notifctrl "github.com/odekodu/ecobnb-api/app/echoServer/controller/notification"
	propctrl "github.com/odekodu/ecobnb-api/app/echoServer/controller/property"
	rentctrl "github.com/odekodu/ecobnb-api/app/echoServer/controller/rent"
	txnctrl "github.com/odekodu/ecobnb-api/app/echoServer/controller/transaction"
	"github.com/odekodu/ecobnb-api/app/echoServer/validation"
	"github.com/odekodu/ecobnb-api/config"
	mailerrepo "github.com/odekodu/ecobnb-api/repository/mailer"
	notifrepo "github.com/odekodu/ecobnb-api/repository/notification"
	proprepo "github.com/odekodu/ecobnb-api/repository/property"
	rentrepo "github.com/odekodu/ecobnb-api/repository/rent"
	txnrepo "github.com/odekodu/ecobnb-api/repository/transaction"
	userrepo "github.com/odekodu/ecobnb-api/repository/user"
	notifsvc "github.com/odekodu/ecobnb-api/service/notification"
	propsvc "github.com/odekodu/ecobnb-api/service/property"
	rentsvc "github.com/odekodu/ecobnb-api/service/rent"
	txnsvc "github.com/odekodu/ecobnb-api/service/transaction"
	usersvc "github.com/odekodu/ecobnb-api/service/user"
	"github.com/odekodu/ecobnb-api/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	pr := proprepo.New(db)
	rr := rentrepo.New(db)
	tr := txnrepo.New(db)
	nr := notifrepo.New(db)
	mr := mailerrepo.NewHTTP(cfg.MailAPIKey, cfg.MailDomain, cfg.MailFrom)

	// services
	us := usersvc.New(ur, mr, cfg.JWTSecret, cfg.VerifyURL)
	ps := propsvc.New(pr, cfg.PageLimit)
	rs := rentsvc.New(db, rr, pr, tr, cfg.Replicated, cfg.PageLimit)
	ts := txnsvc.New(tr, cfg.PageLimit)
	ns := notifsvc.New(nr, cfg.PageLimit)

	// seed the default superadmin before serving
	if err := us.Bootstrap(ctx, cfg.DefaultEmail); err != nil {
		log.Error("superadmin bootstrap failed", "err", err)
		os.Exit(1)
	}

	// reminder sweep over paid rents
	reminder := rentsvc.NewReminder(rr, tr, ur, pr, nr, mr, cfg.VerifyURL, log)
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.RemindInterval) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			reminder.Sweep(ctx)
		}
	}()

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: us, V: v, Log: log}
	propC := &propctrl.Controller{Svc: ps, V: v, Log: log}
	rentC := &rentctrl.Controller{Svc: rs, V: v, Log: log}
	txnC := &txnctrl.Controller{Svc: ts, V: v, Log: log}
	notifC := &notifctrl.Controller{Svc: ns, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:         authC,
		Property:     propC,
		Rent:         rentC,
		Transaction:  txnC,
		Notification: notifC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "replicated", cfg.Replicated)

	e.Logger.Fatal(e.Start(":" + port))
}
