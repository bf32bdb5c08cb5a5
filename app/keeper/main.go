package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/goauction/app/bootstrap"
	bCtx "github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/env"
	"github.com/x-xyz/goauction/base/goroutine"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
)

// loadConfig panics when the config file cannot be read
func loadConfig() {
	pflag.String("config", env.ConfigPath("infra/configs/keeper/config.yaml"), "config file")
	pflag.Duration("interval", time.Minute, "time between two passes")
	pflag.Parse()
	if err := viper.BindPFlag("keeper.interval", pflag.Lookup("interval")); err != nil {
		panic(err)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(pflag.Lookup("config").Value.String())
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.SetDebug(true)
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	loadConfig()

	ctx, cancel := bCtx.WithCancel(bCtx.WithLogFields(bCtx.Background(), log.Fields{
		"app": env.AppName(),
		"pod": env.PodName(),
	}))
	defer cancel()

	services, err := bootstrap.New(ctx, viper.GetViper())
	if err != nil {
		ctx.WithField("err", err).Panic("bootstrap failed")
	}
	defer services.Close()

	targets := []HarvestTarget{}
	if err := viper.UnmarshalKey("keeper.harvest", &targets); err != nil {
		ctx.WithField("err", err).Panic("invalid keeper.harvest")
	}
	assets := []domain.Address{}
	for _, a := range viper.GetStringSlice("keeper.buyAndBurn") {
		assets = append(assets, domain.Address(a))
	}

	interval := viper.GetDuration("keeper.interval")
	k := newKeeper(&keeperCfg{
		Kicker:     domain.Address(viper.GetString("keeper.kicker")),
		BuyAndBurn: services.BuyAndBurn,
		Harvest:    services.Harvest,
		Assets:     assets,
		Targets:    targets,
		Lock:       services.Redis,
		LockTtl:    interval * 9 / 10,
		Workers:    viper.GetInt("keeper.workers"),
		Attempts:   viper.GetInt("keeper.attempts"),
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	ctx.WithFields(log.Fields{
		"interval": interval,
		"assets":   len(assets),
		"targets":  len(targets),
	}).Info("keeper started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		// a panicking pass is logged and the next tick runs again
		<-goroutine.RecoverableGo(func() {
			tc, done := bCtx.WithTimeout(ctx, interval)
			defer done()
			if failed := k.tick(tc); failed > 0 {
				tc.WithField("failed", failed).Warn("keeper pass finished with failures")
			}
		})

		select {
		case sig := <-quit:
			ctx.WithField("signal", sig).Info("received signal")
			return
		case <-ticker.C:
		}
	}
}
