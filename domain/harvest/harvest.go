package harvest

import (
	"math/big"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
)

func KeyOf(source, rewardAsset domain.Address) auction.Key {
	return auction.Key{Source: source.ToLower(), Asset: rewardAsset.ToLower()}
}

// Carryover tracks inventory of a key between auctions
type Carryover struct {
	Key auction.Key `json:"key"`
	// PendingTokens were harvested but not auctioned yet
	PendingTokens *big.Int `json:"pendingTokens"`
	// UnsoldTokens were left by finalized auctions
	UnsoldTokens *big.Int `json:"unsoldTokens"`
	// ObtainedTokens is the payment boarded back to the source so far
	ObtainedTokens *big.Int `json:"obtainedTokens"`
}

func EmptyCarryover(key auction.Key) *Carryover {
	return &Carryover{
		Key:            key,
		PendingTokens:  new(big.Int),
		UnsoldTokens:   new(big.Int),
		ObtainedTokens: new(big.Int),
	}
}

type CarryoverRepo interface {
	// Get returns an empty carryover for keys never seen
	Get(c ctx.Ctx, key auction.Key) (*Carryover, error)
	AddPending(c ctx.Ctx, key auction.Key, amount *big.Int) error
	AddUnsold(c ctx.Ctx, key auction.Key, amount *big.Int) error
	AddObtained(c ctx.Ctx, key auction.Key, amount *big.Int) error
	// Consume subtracts what a new auction took over from pending and unsold
	Consume(c ctx.Ctx, key auction.Key, pending *big.Int, unsold *big.Int) error
}

// RewardSource is a yield source accruing rewards
type RewardSource interface {
	// Harvest sweeps the accrued rewardAsset of source to account to and returns the amount
	Harvest(c ctx.Ctx, source domain.Address, rewardAsset domain.Address, to domain.Address) (*big.Int, error)
}

type Usecase interface {
	HarvestAndStartAuction(c ctx.Ctx, kicker domain.Address, source domain.Address, rewardAsset domain.Address) (*auction.Auction, error)
	// Harvest sweeps rewards without starting an auction
	Harvest(c ctx.Ctx, source domain.Address, rewardAsset domain.Address) (*big.Int, error)
	BuyTokens(c ctx.Ctx, key auction.Key, buyer domain.Address, quantity *big.Int) (*big.Int, error)
	FinalizeAuction(c ctx.Ctx, key auction.Key) (*auction.Auction, error)
	GetCurrentPrice(c ctx.Ctx, key auction.Key) (*big.Int, error)
	Quote(c ctx.Ctx, key auction.Key, quantity *big.Int) (*big.Int, error)
	GetAuction(c ctx.Ctx, key auction.Key) (*auction.Auction, error)
	GetCarryover(c ctx.Ctx, key auction.Key) (*Carryover, error)
	GetAuctionParameters(c ctx.Ctx, key auction.Key) (*auction.Parameters, error)
	SetAuctionParameters(c ctx.Ctx, key auction.Key, params *auction.Parameters) error
}
