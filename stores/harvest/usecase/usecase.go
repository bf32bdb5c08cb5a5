package usecase

import (
	"math/big"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/harvest"
)

var met = metrics.New("harvest")

type HarvestUseCaseCfg struct {
	Engine    auction.Usecase
	Carryover harvest.CarryoverRepo
	Params    auction.ParamsRepo
	Defaults  auction.Parameters
	Rewards   harvest.RewardSource
	// PaymentToken is what buyers pay with and what is boarded back to sources
	PaymentToken domain.Token
	// RewardTokens lists the assets that can be auctioned
	RewardTokens domain.Tokens
}

type impl struct {
	engine       auction.Usecase
	carryover    harvest.CarryoverRepo
	params       auction.ParamsRepo
	defaults     auction.Parameters
	rewards      harvest.RewardSource
	paymentToken domain.Token
	rewardTokens domain.Tokens
}

func New(cfg *HarvestUseCaseCfg) harvest.Usecase {
	return &impl{
		engine:       cfg.Engine,
		carryover:    cfg.Carryover,
		params:       cfg.Params,
		defaults:     cfg.Defaults,
		rewards:      cfg.Rewards,
		paymentToken: cfg.PaymentToken,
		rewardTokens: cfg.RewardTokens,
	}
}

func (im *impl) harvest(c ctx.Ctx, key auction.Key) (*big.Int, error) {
	amount, err := im.rewards.Harvest(c, key.Source, key.Asset, im.engine.Holding())
	if err != nil {
		c.WithField("err", err).Error("rewards.Harvest failed")
		return nil, err
	}
	if amount.Sign() == 0 {
		return amount, nil
	}
	if err := im.carryover.AddPending(c, key, amount); err != nil {
		c.WithFields(log.Fields{"err": err, "amount": amount}).Error("carryover.AddPending failed")
		return nil, err
	}
	met.BumpSum("harvested", 1, "asset", string(key.Asset))
	return amount, nil
}

func (im *impl) Harvest(c ctx.Ctx, source domain.Address, rewardAsset domain.Address) (*big.Int, error) {
	key := harvest.KeyOf(source, rewardAsset)
	c = ctx.WithLogFields(c, log.Fields{"key": key.String()})
	if _, err := im.rewardTokens.Find(key.Asset); err != nil {
		return nil, err
	}
	return im.harvest(c, key)
}

func (im *impl) HarvestAndStartAuction(c ctx.Ctx, kicker domain.Address, source domain.Address, rewardAsset domain.Address) (*auction.Auction, error) {
	key := harvest.KeyOf(source, rewardAsset)
	// the engine tags its own lines with the key
	lc := ctx.WithLogFields(c, log.Fields{"key": key.String(), "kicker": kicker})

	token, err := im.rewardTokens.Find(key.Asset)
	if err != nil {
		return nil, err
	}

	// rewards stay with the source while an auction of the key is running
	if a, err := im.engine.GetAuction(c, key); err == nil && !a.IsFinalized {
		return nil, auction.ErrAuctionAlreadyRunning
	} else if err != nil && err != auction.ErrAuctionNotFound {
		return nil, err
	}

	if _, err := im.harvest(lc, key); err != nil {
		return nil, err
	}

	co, err := im.carryover.Get(lc, key)
	if err != nil {
		lc.WithField("err", err).Error("carryover.Get failed")
		return nil, err
	}

	params, err := auction.GetOrDefault(lc, im.params, key, im.defaults)
	if err != nil {
		lc.WithField("err", err).Error("params.Get failed")
		return nil, err
	}

	// the carryover is cleared first so a running auction never leaves it behind
	if err := im.carryover.Consume(lc, key, co.PendingTokens, co.UnsoldTokens); err != nil {
		lc.WithField("err", err).Error("carryover.Consume failed")
		return nil, err
	}

	a, err := im.engine.StartAuction(c, auction.StartAuctionParams{
		Key:          key,
		Kicker:       kicker,
		AuctionToken: token,
		PaymentToken: im.paymentToken,
		Inventory:    co.PendingTokens,
		Carryover:    co.UnsoldTokens,
		Parameters:   *params,
	})
	if err != nil {
		im.restore(lc, key, co)
		return nil, err
	}
	return a, nil
}

// restore gives back a consumed carryover whose auction never started
func (im *impl) restore(c ctx.Ctx, key auction.Key, co *harvest.Carryover) {
	if co.PendingTokens.Sign() > 0 {
		if err := im.carryover.AddPending(c, key, co.PendingTokens); err != nil {
			c.WithFields(log.Fields{"err": err, "pending": co.PendingTokens}).Error("carryover.AddPending failed")
		}
	}
	if co.UnsoldTokens.Sign() > 0 {
		if err := im.carryover.AddUnsold(c, key, co.UnsoldTokens); err != nil {
			c.WithFields(log.Fields{"err": err, "unsold": co.UnsoldTokens}).Error("carryover.AddUnsold failed")
		}
	}
}

func (im *impl) BuyTokens(c ctx.Ctx, key auction.Key, buyer domain.Address, quantity *big.Int) (*big.Int, error) {
	return im.engine.BuyTokens(c, key, buyer, quantity)
}

func (im *impl) FinalizeAuction(c ctx.Ctx, key auction.Key) (*auction.Auction, error) {
	return im.engine.FinalizeAuction(c, key)
}

func (im *impl) GetCurrentPrice(c ctx.Ctx, key auction.Key) (*big.Int, error) {
	return im.engine.GetCurrentPrice(c, key)
}

func (im *impl) Quote(c ctx.Ctx, key auction.Key, quantity *big.Int) (*big.Int, error) {
	return im.engine.Quote(c, key, quantity)
}

func (im *impl) GetAuction(c ctx.Ctx, key auction.Key) (*auction.Auction, error) {
	return im.engine.GetAuction(c, key)
}

func (im *impl) GetCarryover(c ctx.Ctx, key auction.Key) (*harvest.Carryover, error) {
	return im.carryover.Get(c, key)
}

func (im *impl) GetAuctionParameters(c ctx.Ctx, key auction.Key) (*auction.Parameters, error) {
	return auction.GetOrDefault(c, im.params, key, im.defaults)
}

func (im *impl) SetAuctionParameters(c ctx.Ctx, key auction.Key, params *auction.Parameters) error {
	if err := im.params.Set(c, key, params); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key.String()}).Error("params.Set failed")
		return err
	}
	return nil
}
