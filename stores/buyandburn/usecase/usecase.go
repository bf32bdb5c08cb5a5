package usecase

import (
	"math/big"

	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/decay"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/buyandburn"
)

type BuyAndBurnUseCaseCfg struct {
	Engine    auction.Usecase
	Inventory domain.InventorySource
	Params    auction.ParamsRepo
	Defaults  auction.Parameters
	// GovernanceToken is paid by buyers and burnt
	GovernanceToken domain.Token
	// Assets lists the protocol owned tokens that can be auctioned
	Assets domain.Tokens
}

type impl struct {
	engine     auction.Usecase
	inventory  domain.InventorySource
	params     auction.ParamsRepo
	defaults   auction.Parameters
	governance domain.Token
	assets     domain.Tokens
}

func New(cfg *BuyAndBurnUseCaseCfg) buyandburn.Usecase {
	return &impl{
		engine:     cfg.Engine,
		inventory:  cfg.Inventory,
		params:     cfg.Params,
		defaults:   cfg.Defaults,
		governance: cfg.GovernanceToken,
		assets:     cfg.Assets,
	}
}

func (im *impl) StartAuction(c ctx.Ctx, kicker domain.Address, asset domain.Address) (*auction.Auction, error) {
	key := buyandburn.KeyOf(asset)
	// the engine tags its own lines with the key
	lc := ctx.WithLogFields(c, log.Fields{"key": key.String(), "kicker": kicker})

	token, err := im.assets.Find(key.Asset)
	if err != nil {
		return nil, err
	}
	if token.Decimals > decay.MaxDecimals || im.governance.Decimals > decay.MaxDecimals {
		return nil, xerrors.Errorf("token decimals: %w", decay.ErrUnsupportedDecimals)
	}

	// inventory is only moved once nothing stops the auction from starting
	if a, err := im.engine.GetAuction(c, key); err == nil && !a.IsFinalized {
		return nil, auction.ErrAuctionAlreadyRunning
	} else if err != nil && err != auction.ErrAuctionNotFound {
		return nil, err
	}

	params, err := auction.GetOrDefault(lc, im.params, key, im.defaults)
	if err != nil {
		lc.WithField("err", err).Error("params.Get failed")
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	available, err := im.inventory.AvailableBalance(lc, key.Asset)
	if err != nil {
		lc.WithField("err", err).Error("inventory.AvailableBalance failed")
		return nil, err
	}
	if available.Sign() <= 0 {
		return nil, auction.ErrInvalidTokenAmount
	}
	cut := params.KickerRewardPercentage.Of(available)
	if available.Cmp(cut) <= 0 {
		// the kicker would get everything, nothing is left to sell
		return nil, auction.ErrInvalidTokenAmount
	}

	if err := im.inventory.TransferOut(lc, key.Asset, available, im.engine.Holding()); err != nil {
		return nil, err
	}

	a, err := im.engine.StartAuction(c, auction.StartAuctionParams{
		Key:          key,
		Kicker:       kicker,
		AuctionToken: token,
		PaymentToken: im.governance,
		Inventory:    available,
		Parameters:   *params,
	})
	if err != nil {
		if err := im.inventory.TransferIn(lc, key.Asset, available, im.engine.Holding()); err != nil {
			lc.WithFields(log.Fields{"err": err, "amount": available}).Error("returning inventory failed")
		}
		return nil, err
	}
	return a, nil
}

func (im *impl) BuyTokens(c ctx.Ctx, asset domain.Address, buyer domain.Address, quantity *big.Int) (*big.Int, error) {
	return im.engine.BuyTokens(c, buyandburn.KeyOf(asset), buyer, quantity)
}

func (im *impl) FinalizeAuction(c ctx.Ctx, asset domain.Address) (*auction.Auction, error) {
	return im.engine.FinalizeAuction(c, buyandburn.KeyOf(asset))
}

func (im *impl) GetCurrentPrice(c ctx.Ctx, asset domain.Address) (*big.Int, error) {
	return im.engine.GetCurrentPrice(c, buyandburn.KeyOf(asset))
}

func (im *impl) Quote(c ctx.Ctx, asset domain.Address, quantity *big.Int) (*big.Int, error) {
	return im.engine.Quote(c, buyandburn.KeyOf(asset), quantity)
}

func (im *impl) GetAuction(c ctx.Ctx, asset domain.Address) (*auction.Auction, error) {
	return im.engine.GetAuction(c, buyandburn.KeyOf(asset))
}

func (im *impl) GetAuctionParameters(c ctx.Ctx, asset domain.Address) (*auction.Parameters, error) {
	return auction.GetOrDefault(c, im.params, buyandburn.KeyOf(asset), im.defaults)
}

func (im *impl) SetAuctionParameters(c ctx.Ctx, asset domain.Address, params *auction.Parameters) error {
	if err := im.params.Set(c, buyandburn.KeyOf(asset), params); err != nil {
		c.WithFields(log.Fields{"err": err, "asset": asset}).Error("params.Set failed")
		return err
	}
	return nil
}
