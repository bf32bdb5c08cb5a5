package main

import (
	"errors"
	"time"

	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/goauction/base/backoff"
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/buyandburn"
	"github.com/x-xyz/goauction/domain/harvest"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/redis"
)

type HarvestTarget struct {
	Source domain.Address `mapstructure:"source"`
	Asset  domain.Address `mapstructure:"asset"`
}

type keeperCfg struct {
	Kicker     domain.Address
	BuyAndBurn buyandburn.Usecase
	Harvest    harvest.Usecase
	// Assets are the buy-and-burn assets kept running
	Assets  []domain.Address
	Targets []HarvestTarget
	// Lock is optional, without it every replica runs every tick
	Lock     redis.Service
	LockTtl  time.Duration
	Workers  int
	Attempts int
	Clock    func() time.Time
}

type keeper struct {
	cfg *keeperCfg
}

func newKeeper(cfg *keeperCfg) *keeper {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 1
	}
	return &keeper{cfg: cfg}
}

type job struct {
	name string
	run  func(c ctx.Ctx) error
}

// tick runs one pass over every asset and target, it returns the amount of failed jobs
func (k *keeper) tick(c ctx.Ctx) int {
	if k.cfg.Lock != nil {
		key := keys.RedisKey(keys.PfxKeeperLock, "tick")
		if err := k.cfg.Lock.SetNX(c, key, []byte(k.cfg.Kicker), k.cfg.LockTtl); err == redis.ErrNotSet {
			c.Debug("tick held by another keeper")
			return 0
		} else if err != nil {
			c.WithField("err", err).Error("lock.SetNX failed")
			return 1
		}
	}

	jobs := []job{}
	for _, asset := range k.cfg.Assets {
		a := asset
		jobs = append(jobs, job{name: "buyandburn/" + string(a), run: func(c ctx.Ctx) error { return k.keepBuyAndBurn(c, a) }})
	}
	for _, target := range k.cfg.Targets {
		t := target
		jobs = append(jobs, job{
			name: "harvest/" + string(t.Source) + "/" + string(t.Asset),
			run:  func(c ctx.Ctx) error { return k.keepHarvest(c, t) },
		})
	}
	if len(jobs) == 0 {
		return 0
	}

	b := goroutines.NewBatch(k.cfg.Workers, goroutines.WithBatchSize(len(jobs)))
	defer b.Close()
	for _, j := range jobs {
		jb := j
		b.Queue(func() (interface{}, error) {
			jc := ctx.WithLogFields(c, log.Fields{"job": jb.name})
			retry := backoff.NewExponential(time.Second, 10*time.Second)
			return jb.name, backoff.Retry(jc, retry, k.cfg.Attempts, func() error { return jb.run(jc) })
		})
	}
	b.QueueComplete()

	failed := 0
	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithFields(log.Fields{"job": ret.Value(), "err": ret.Error()}).Error("keeper job failed")
			failed++
		}
	}
	return failed
}

// keepBuyAndBurn finalizes the auction of asset once it has ended and starts the next one
func (k *keeper) keepBuyAndBurn(c ctx.Ctx, asset domain.Address) error {
	a, err := k.cfg.BuyAndBurn.GetAuction(c, asset)
	if err != nil && !errors.Is(err, auction.ErrAuctionNotFound) {
		return err
	}
	if err == nil && !a.IsFinalized {
		if !a.IsExpired(k.cfg.Clock()) {
			return nil
		}
		if _, err := k.cfg.BuyAndBurn.FinalizeAuction(c, asset); err != nil && !errors.Is(err, auction.ErrAuctionAlreadyFinalized) {
			return err
		}
	}
	started, err := k.cfg.BuyAndBurn.StartAuction(c, k.cfg.Kicker, asset)
	if isIdle(err) {
		c.Info("nothing to auction")
		return nil
	} else if err != nil {
		return err
	}
	c.WithFields(log.Fields{"id": started.Id, "total": started.TotalTokens.String()}).Info("auction started")
	return nil
}

// keepHarvest finalizes the auction of target once it has ended and harvests into the next one
func (k *keeper) keepHarvest(c ctx.Ctx, t HarvestTarget) error {
	key := auction.Key{Source: t.Source, Asset: t.Asset}
	a, err := k.cfg.Harvest.GetAuction(c, key)
	if err != nil && !errors.Is(err, auction.ErrAuctionNotFound) {
		return err
	}
	if err == nil && !a.IsFinalized {
		if !a.IsExpired(k.cfg.Clock()) {
			return nil
		}
		if _, err := k.cfg.Harvest.FinalizeAuction(c, key); err != nil && !errors.Is(err, auction.ErrAuctionAlreadyFinalized) {
			return err
		}
	}
	started, err := k.cfg.Harvest.HarvestAndStartAuction(c, k.cfg.Kicker, t.Source, t.Asset)
	if isIdle(err) {
		c.Info("nothing to auction")
		return nil
	} else if err != nil {
		return err
	}
	c.WithFields(log.Fields{"id": started.Id, "total": started.TotalTokens.String()}).Info("auction started")
	return nil
}

// isIdle reports errors meaning there is nothing to do until the next tick
func isIdle(err error) bool {
	return errors.Is(err, auction.ErrInvalidTokenAmount) || errors.Is(err, auction.ErrAuctionAlreadyRunning)
}
