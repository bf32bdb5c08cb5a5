package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/x-xyz/goauction/app/bootstrap"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/env"
	"github.com/x-xyz/goauction/base/log"
	bValidator "github.com/x-xyz/goauction/base/validator"
	mmiddleware "github.com/x-xyz/goauction/middleware"
	auction_delivery "github.com/x-xyz/goauction/stores/auction/delivery/http"
	buyandburn_delivery "github.com/x-xyz/goauction/stores/buyandburn/delivery/http"
	harvest_delivery "github.com/x-xyz/goauction/stores/harvest/delivery/http"
	hc_delivery "github.com/x-xyz/goauction/stores/healthcheck/delivery/http"
	hc_usecase "github.com/x-xyz/goauction/stores/healthcheck/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(env.ConfigPath("infra/configs/config.yaml"))
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	services, err := bootstrap.New(context, viper.GetViper())
	if err != nil {
		context.WithField("err", err).Panic("bootstrap failed")
	}
	defer services.Close()

	hc_delivery.New(e, hc_usecase.New(services.Probes...))
	auction_delivery.New(e, services.Reader, services.Events)
	buyandburn_delivery.New(e, services.BuyAndBurn)
	harvest_delivery.New(e, services.Harvest)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
