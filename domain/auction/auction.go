package auction

import (
	"fmt"
	"math/big"
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/decay"
	"github.com/x-xyz/goauction/domain"
)

type Id uint64

// Key identifies the auction slot, at most one running auction exists per key.
// Buy-and-burn auctions leave Source empty.
type Key struct {
	Source domain.Address `json:"source" bson:"source" param:"source"`
	Asset  domain.Address `json:"asset" bson:"asset" param:"asset"`
}

func (k Key) ToLower() Key {
	return Key{Source: k.Source.ToLower(), Asset: k.Asset.ToLower()}
}

func (k Key) Equals(o Key) bool {
	return k.Source.Equals(o.Source) && k.Asset.Equals(o.Asset)
}

func (k Key) String() string {
	if k.Source.IsEmpty() {
		return string(k.Asset)
	}
	return fmt.Sprintf("%s/%s", k.Source, k.Asset)
}

// Config is fixed once the auction is created. Prices are payment token base
// units per one whole auction token.
type Config struct {
	Id           Id             `json:"id"`
	Key          Key            `json:"key"`
	AuctionToken domain.Token   `json:"auctionToken"`
	PaymentToken domain.Token   `json:"paymentToken"`
	TotalTokens  *big.Int       `json:"totalTokens"`
	StartTime    time.Time      `json:"startTime"`
	EndTime      time.Time      `json:"endTime"`
	StartPrice   *big.Int       `json:"startPrice"`
	EndPrice     *big.Int       `json:"endPrice"`
	DecayCurve   decay.Curve    `json:"decayCurve"`
	KickerReward *big.Int       `json:"kickerReward"`
	Kicker       domain.Address `json:"kicker"`
}

func (c *Config) Duration() time.Duration {
	return c.EndTime.Sub(c.StartTime)
}

type State struct {
	RemainingTokens  *big.Int   `json:"remainingTokens"`
	IsFinalized      bool       `json:"isFinalized"`
	SoldTokens       *big.Int   `json:"soldTokens"`
	PaymentCollected *big.Int   `json:"paymentCollected"`
	UnsoldTokens     *big.Int   `json:"unsoldTokens"`
	FinalizedAt      *time.Time `json:"finalizedAt,omitempty"`
}

type Auction struct {
	Config `json:"config"`
	State  `json:"state"`
}

// NewAuction builds the initial state for cfg, every token is still for sale
func NewAuction(cfg Config) *Auction {
	return &Auction{
		Config: cfg,
		State: State{
			RemainingTokens:  domain.CopyBig(cfg.TotalTokens),
			SoldTokens:       new(big.Int),
			PaymentCollected: new(big.Int),
			UnsoldTokens:     new(big.Int),
		},
	}
}

func (a *Auction) IsExpired(now time.Time) bool {
	return !now.Before(a.EndTime)
}

func (a *Auction) IsSoldOut() bool {
	return a.RemainingTokens.Sign() == 0
}

// IsActive reports whether the auction accepts purchases
func (a *Auction) IsActive() bool {
	return !a.IsFinalized && !a.IsSoldOut()
}

// Elapsed is clamped to [0, duration]
func (a *Auction) Elapsed(now time.Time) time.Duration {
	elapsed := now.Sub(a.StartTime)
	if elapsed < 0 {
		return 0
	}
	if d := a.Duration(); elapsed > d {
		return d
	}
	return elapsed
}

// Clone returns a deep copy so callers never share big.Int values with the ledger
func (a *Auction) Clone() *Auction {
	if a == nil {
		return nil
	}
	c := *a
	c.TotalTokens = domain.CopyBig(a.TotalTokens)
	c.StartPrice = domain.CopyBig(a.StartPrice)
	c.EndPrice = domain.CopyBig(a.EndPrice)
	c.KickerReward = domain.CopyBig(a.KickerReward)
	c.RemainingTokens = domain.CopyBig(a.RemainingTokens)
	c.SoldTokens = domain.CopyBig(a.SoldTokens)
	c.PaymentCollected = domain.CopyBig(a.PaymentCollected)
	c.UnsoldTokens = domain.CopyBig(a.UnsoldTokens)
	if a.FinalizedAt != nil {
		at := *a.FinalizedAt
		c.FinalizedAt = &at
	}
	return &c
}

// Repo is the auction ledger
type Repo interface {
	// Create allocates a fresh id, fails with ErrAuctionAlreadyRunning when
	// the key has a non-finalized auction
	Create(c ctx.Ctx, cfg Config) (*Auction, error)
	// Get returns the running auction of key, or the latest one when none is running
	Get(c ctx.Ctx, key Key) (*Auction, error)
	FindOne(c ctx.Ctx, id Id) (*Auction, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Auction, error)
	Count(c ctx.Ctx, opts ...FindAllOptions) (int, error)
	// DecrementRemaining records a purchase of amount tokens for payment
	DecrementRemaining(c ctx.Ctx, key Key, amount *big.Int, payment *big.Int) (*Auction, error)
	// RestoreRemaining reverts a DecrementRemaining of a running auction
	RestoreRemaining(c ctx.Ctx, key Key, amount *big.Int, payment *big.Int) (*Auction, error)
	MarkFinalized(c ctx.Ctx, key Key, unsold *big.Int, at time.Time) (*Auction, error)
}

type StartAuctionParams struct {
	Key          Key
	Kicker       domain.Address
	AuctionToken domain.Token
	PaymentToken domain.Token
	// Inventory is freshly committed and subject to the kicker reward
	Inventory *big.Int
	// Carryover is unsold inventory of earlier auctions, never rewarded
	Carryover  *big.Int
	Parameters Parameters
}

// Usecase is the settlement engine
type Usecase interface {
	StartAuction(c ctx.Ctx, params StartAuctionParams) (*Auction, error)
	GetCurrentPrice(c ctx.Ctx, key Key) (*big.Int, error)
	// Quote returns the payment due for quantity at the current price
	Quote(c ctx.Ctx, key Key, quantity *big.Int) (*big.Int, error)
	BuyTokens(c ctx.Ctx, key Key, buyer domain.Address, quantity *big.Int) (*big.Int, error)
	FinalizeAuction(c ctx.Ctx, key Key) (*Auction, error)
	GetAuction(c ctx.Ctx, key Key) (*Auction, error)
	GetAuctionById(c ctx.Ctx, id Id) (*Auction, error)
	ListAuctions(c ctx.Ctx, opts ...FindAllOptions) ([]*Auction, int, error)
	// Holding is the account keeping the inventory of running auctions
	Holding() domain.Address
}

// SettlementDestination receives the payment of every purchase
type SettlementDestination interface {
	Accept(c ctx.Ctx, a *Auction, from domain.Address, amount *big.Int) error
}

// UnsoldHandler decides what happens with the inventory left at finalization
type UnsoldHandler interface {
	HandleUnsold(c ctx.Ctx, a *Auction, holding domain.Address, unsold *big.Int) error
}
