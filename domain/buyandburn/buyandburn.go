package buyandburn

import (
	"math/big"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
)

// KeyOf returns the auction key of asset, buy-and-burn auctions have no source
func KeyOf(asset domain.Address) auction.Key {
	return auction.Key{Asset: asset.ToLower()}
}

// Usecase sells protocol owned tokens for the governance token and burns the proceeds
type Usecase interface {
	// StartAuction commits the whole treasury balance of asset
	StartAuction(c ctx.Ctx, kicker domain.Address, asset domain.Address) (*auction.Auction, error)
	BuyTokens(c ctx.Ctx, asset domain.Address, buyer domain.Address, quantity *big.Int) (*big.Int, error)
	FinalizeAuction(c ctx.Ctx, asset domain.Address) (*auction.Auction, error)
	GetCurrentPrice(c ctx.Ctx, asset domain.Address) (*big.Int, error)
	Quote(c ctx.Ctx, asset domain.Address, quantity *big.Int) (*big.Int, error)
	GetAuction(c ctx.Ctx, asset domain.Address) (*auction.Auction, error)
	GetAuctionParameters(c ctx.Ctx, asset domain.Address) (*auction.Parameters, error)
	SetAuctionParameters(c ctx.Ctx, asset domain.Address, params *auction.Parameters) error
}
