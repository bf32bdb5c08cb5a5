package auction

import (
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

type EventType string

const (
	EventAuctionCreated   EventType = "AuctionCreated"
	EventTokensPurchased  EventType = "TokensPurchased"
	EventAuctionFinalized EventType = "AuctionFinalized"
)

// Event is an externally observable state transition of an auction
type Event struct {
	EventId   string    `json:"eventId"`
	Type      EventType `json:"type"`
	AuctionId Id        `json:"auctionId"`
	Key       Key       `json:"key"`
	Timestamp time.Time `json:"timestamp"`
	// starter on creation, buyer on purchase
	Account domain.Address `json:"account,omitempty"`
	// purchases only
	PaymentToken domain.Address `json:"paymentToken,omitempty"`

	TotalTokens  *big.Int `json:"totalTokens,omitempty"`
	KickerCut    *big.Int `json:"kickerCut,omitempty"`
	Quantity     *big.Int `json:"quantity,omitempty"`
	PricePaid    *big.Int `json:"pricePaid,omitempty"`
	UnsoldAmount *big.Int `json:"unsoldAmount,omitempty"`
}

func newEvent(t EventType, a *Auction, at time.Time) Event {
	return Event{
		EventId:   uuid.NewString(),
		Type:      t,
		AuctionId: a.Id,
		Key:       a.Key,
		Timestamp: at,
	}
}

func NewAuctionCreatedEvent(a *Auction, starter domain.Address, at time.Time) Event {
	e := newEvent(EventAuctionCreated, a, at)
	e.Account = starter
	e.TotalTokens = domain.CopyBig(a.TotalTokens)
	e.KickerCut = domain.CopyBig(a.KickerReward)
	return e
}

func NewTokensPurchasedEvent(a *Auction, buyer domain.Address, quantity, pricePaid *big.Int, at time.Time) Event {
	e := newEvent(EventTokensPurchased, a, at)
	e.Account = buyer
	e.PaymentToken = a.PaymentToken.Address
	e.Quantity = domain.CopyBig(quantity)
	e.PricePaid = domain.CopyBig(pricePaid)
	return e
}

func NewAuctionFinalizedEvent(a *Auction, unsold *big.Int, at time.Time) Event {
	e := newEvent(EventAuctionFinalized, a, at)
	e.UnsoldAmount = domain.CopyBig(unsold)
	return e
}

// EventEmitter publishes events, sinks report their own failures since the
// transition has already been committed when Emit is called
type EventEmitter interface {
	Emit(c ctx.Ctx, e Event)
}

// EventRepo keeps the event history
type EventRepo interface {
	Insert(c ctx.Ctx, e Event) error
	FindByAuction(c ctx.Ctx, id Id) ([]Event, error)
}
