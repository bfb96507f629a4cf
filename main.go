// Package main Bookify API.
//
// @title           Bookify Storefront API
// @version         1.0
// @description     Bookstore storefront (catalog, cart, checkout, transactions).
// @contact.name    Halim Iskandar
// @contact.email   halim.iskandar2323@gmail.com
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

	"github.com/ax71/Uts-Bookify/app/echoServer"
	authctrl "github.com/ax71/Uts-Bookify/app/echoServer/controller/auth"
	bookctrl "github.com/ax71/Uts-Bookify/app/echoServer/controller/book"
	cartctrl "github.com/ax71/Uts-Bookify/app/echoServer/controller/cart"
	checkoutctrl "github.com/ax71/Uts-Bookify/app/echoServer/controller/checkout"
	txnctrl "github.com/ax71/Uts-Bookify/app/echoServer/controller/transaction"
	"github.com/ax71/Uts-Bookify/app/echoServer/validation"
	"github.com/ax71/Uts-Bookify/config"
	"github.com/ax71/Uts-Bookify/migrations"
	authrepo "github.com/ax71/Uts-Bookify/repository/auth"
	bookinforepo "github.com/ax71/Uts-Bookify/repository/bookinfo"
	catalogrepo "github.com/ax71/Uts-Bookify/repository/catalog"
	txnrepo "github.com/ax71/Uts-Bookify/repository/txn"
	authsvc "github.com/ax71/Uts-Bookify/service/auth"
	cartsvc "github.com/ax71/Uts-Bookify/service/cart"
	catalogsvc "github.com/ax71/Uts-Bookify/service/catalog"
	checkoutsvc "github.com/ax71/Uts-Bookify/service/checkout"
	"github.com/ax71/Uts-Bookify/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := migrations.Apply(ctx, db.Pool); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	// repos
	ar := authrepo.New(db.SQL)
	cr := catalogrepo.New(db.SQL)
	tr := txnrepo.New(db.SQL)

	var ir bookinforepo.Repo
	if cfg.ApiNinjasKey != "" {
		ir = bookinforepo.NewHTTP(cfg.ApiNinjasKey)
	}

	// services
	as := authsvc.New(ar, cfg.JWTSecret)
	cs := catalogsvc.New(cr, ir, log)
	carts := cartsvc.New(cs)
	chs := checkoutsvc.New(tr, cs, carts, log)

	// warm the catalog cache, then keep it fresh in the background
	if err := cs.Refresh(ctx); err != nil {
		log.Warn("initial catalog refresh failed", "err", err)
	}
	go catalogsvc.NewRefresher(cs, 5*time.Minute, log).Run(ctx)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: cs, Carts: carts, V: v, Log: log}
	cartC := &cartctrl.Controller{Svc: carts, Catalog: cs, V: v, Log: log}
	checkoutC := &checkoutctrl.Controller{Svc: chs, Log: log}
	txnC := &txnctrl.Controller{Svc: chs, Log: log}

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
		Auth:        authC,
		Book:        bookC,
		Cart:        cartC,
		Checkout:    checkoutC,
		Transaction: txnC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
