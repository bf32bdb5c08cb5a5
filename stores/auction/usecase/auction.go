package usecase

import (
	"math/big"
	"sync"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/decay"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
)

var met = metrics.New("auction")

type AuctionUseCaseCfg struct {
	// Name tags logs and metrics with the owning flow
	Name        string
	Repo        auction.Repo
	Ledger      domain.TokenLedger
	Holding     domain.Address
	Destination auction.SettlementDestination
	Unsold      auction.UnsoldHandler
	Emitter     auction.EventEmitter
	Clock       func() time.Time
}

type impl struct {
	// mu orders every operation, capacity checks happen inside it
	mu sync.Mutex

	name        string
	repo        auction.Repo
	ledger      domain.TokenLedger
	holding     domain.Address
	destination auction.SettlementDestination
	unsold      auction.UnsoldHandler
	emitter     auction.EventEmitter
	now         func() time.Time
}

func New(cfg *AuctionUseCaseCfg) auction.Usecase {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	emitter := cfg.Emitter
	if emitter == nil {
		emitter = NewLogEmitter()
	}
	return &impl{
		name:        cfg.Name,
		repo:        cfg.Repo,
		ledger:      cfg.Ledger,
		holding:     cfg.Holding.ToLower(),
		destination: cfg.Destination,
		unsold:      cfg.Unsold,
		emitter:     emitter,
		now:         now,
	}
}

func (im *impl) Holding() domain.Address {
	return im.holding
}

func (im *impl) logCtx(c ctx.Ctx, key auction.Key) ctx.Ctx {
	return ctx.WithLogFields(c, log.Fields{"flow": im.name, "key": key.String()})
}

func (im *impl) StartAuction(c ctx.Ctx, p auction.StartAuctionParams) (*auction.Auction, error) {
	defer met.BumpTime("start.time", "flow", im.name).End()

	key := p.Key.ToLower()
	c = im.logCtx(c, key)

	inventory := domain.CopyBig(p.Inventory)
	carryover := domain.CopyBig(p.Carryover)
	if inventory.Sign() < 0 || carryover.Sign() < 0 {
		return nil, auction.ErrInvalidTokenAmount
	}
	committed := new(big.Int).Add(inventory, carryover)
	if committed.Sign() == 0 {
		return nil, auction.ErrInvalidTokenAmount
	}
	if err := p.Parameters.Validate(); err != nil {
		c.WithField("err", err).Warn("invalid auction parameters")
		return nil, err
	}
	if p.AuctionToken.Decimals > decay.MaxDecimals || p.PaymentToken.Decimals > decay.MaxDecimals {
		return nil, xerrors.Errorf("token decimals: %w", decay.ErrUnsupportedDecimals)
	}

	cut := p.Parameters.KickerRewardPercentage.Of(inventory)
	total := new(big.Int).Sub(inventory, cut)
	total.Add(total, carryover)
	if total.Sign() == 0 {
		// the whole inventory went to the kicker, nothing is left to sell
		return nil, auction.ErrInvalidTokenAmount
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	if a, err := im.repo.Get(c, key); err == nil && !a.IsFinalized {
		return nil, auction.ErrAuctionAlreadyRunning
	} else if err != nil && err != auction.ErrAuctionNotFound {
		c.WithField("err", err).Error("repo.Get failed")
		return nil, err
	}

	held, err := im.ledger.BalanceOf(c, p.AuctionToken.Address, im.holding)
	if err != nil {
		c.WithField("err", err).Error("ledger.BalanceOf failed")
		return nil, err
	}
	if held.Cmp(committed) < 0 {
		c.WithFields(log.Fields{"held": held, "committed": committed}).Error("holding account does not cover inventory")
		return nil, auction.ErrInsufficientBalance
	}

	if cut.Sign() > 0 {
		if err := im.ledger.Transfer(c, p.AuctionToken.Address, im.holding, p.Kicker, cut); err != nil {
			c.WithFields(log.Fields{"err": err, "kicker": p.Kicker, "cut": cut}).Error("kicker reward transfer failed")
			return nil, err
		}
	}

	start := im.now()
	a, err := im.repo.Create(c, auction.Config{
		Key:          key,
		AuctionToken: p.AuctionToken,
		PaymentToken: p.PaymentToken,
		TotalTokens:  total,
		StartTime:    start,
		EndTime:      start.Add(p.Parameters.Duration),
		StartPrice:   domain.CopyBig(p.Parameters.StartPrice),
		EndPrice:     domain.CopyBig(p.Parameters.EndPrice),
		DecayCurve:   p.Parameters.DecayCurve,
		KickerReward: cut,
		Kicker:       p.Kicker,
	})
	if err != nil {
		c.WithField("err", err).Error("repo.Create failed")
		if cut.Sign() > 0 {
			// hand the reward back so the holding account still covers the inventory
			if rerr := im.ledger.Transfer(c, p.AuctionToken.Address, p.Kicker, im.holding, cut); rerr != nil {
				c.WithFields(log.Fields{"err": rerr, "kicker": p.Kicker, "cut": cut}).Error("kicker reward refund failed")
			}
		}
		return nil, err
	}

	c.WithFields(log.Fields{"id": a.Id, "totalTokens": total, "kickerCut": cut, "kicker": p.Kicker}).Info("auction started")
	met.BumpSum("start", 1, "flow", im.name)
	im.emitter.Emit(c, auction.NewAuctionCreatedEvent(a, p.Kicker, start))
	return a, nil
}

// priceAt is expressed in payment base units per whole auction token
func priceAt(a *auction.Auction, now time.Time) (*big.Int, error) {
	dec := a.PaymentToken.Decimals
	return decay.Price(a.DecayCurve, a.StartPrice, a.EndPrice, a.Elapsed(now), a.Duration(), dec, dec)
}

func (im *impl) GetCurrentPrice(c ctx.Ctx, key auction.Key) (*big.Int, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	a, err := im.repo.Get(c, key)
	if err != nil {
		return nil, err
	}
	price, err := priceAt(a, im.now())
	if err != nil {
		im.logCtx(c, key).WithField("err", err).Error("decay.Price failed")
		return nil, err
	}
	return price, nil
}

func (im *impl) Quote(c ctx.Ctx, key auction.Key, quantity *big.Int) (*big.Int, error) {
	if quantity == nil || quantity.Sign() <= 0 {
		return nil, auction.ErrInvalidTokenAmount
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	a, err := im.repo.Get(c, key)
	if err != nil {
		return nil, err
	}
	price, err := priceAt(a, im.now())
	if err != nil {
		return nil, err
	}
	return decay.PaymentFor(quantity, price, a.AuctionToken.Decimals)
}

func (im *impl) BuyTokens(c ctx.Ctx, key auction.Key, buyer domain.Address, quantity *big.Int) (*big.Int, error) {
	defer met.BumpTime("buy.time", "flow", im.name).End()

	key = key.ToLower()
	c = ctx.WithLogFields(im.logCtx(c, key), log.Fields{"buyer": buyer, "quantity": quantity})

	if quantity == nil || quantity.Sign() <= 0 {
		return nil, auction.ErrInvalidTokenAmount
	}
	if buyer.IsEmpty() {
		return nil, domain.ErrInvalidAddress
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	a, err := im.repo.Get(c, key)
	if err != nil {
		return nil, err
	}
	if a.IsFinalized {
		return nil, auction.ErrAuctionAlreadyFinalized
	}

	now := im.now()
	if a.IsExpired(now) {
		return nil, auction.ErrAuctionEnded
	}
	if quantity.Cmp(a.RemainingTokens) > 0 {
		met.BumpSum("buy.insufficient", 1, "flow", im.name)
		return nil, auction.ErrInsufficientTokensAvailable
	}

	price, err := priceAt(a, now)
	if err != nil {
		c.WithField("err", err).Error("decay.Price failed")
		return nil, err
	}
	due, err := decay.PaymentFor(quantity, price, a.AuctionToken.Decimals)
	if err != nil {
		c.WithField("err", err).Error("decay.PaymentFor failed")
		return nil, err
	}

	bal, err := im.ledger.BalanceOf(c, a.PaymentToken.Address, buyer)
	if err != nil {
		c.WithField("err", err).Error("ledger.BalanceOf failed")
		return nil, err
	}
	if bal.Cmp(due) < 0 {
		return nil, auction.ErrInsufficientBalance
	}

	// the conditional decrement reserves the tokens across every engine sharing the ledger,
	// funds only move once it succeeded
	updated, err := im.repo.DecrementRemaining(c, key, quantity, due)
	if err != nil {
		c.WithField("err", err).Warn("repo.DecrementRemaining failed")
		return nil, err
	}
	if err := im.ledger.Transfer(c, a.AuctionToken.Address, im.holding, buyer, quantity); err != nil {
		c.WithField("err", err).Error("auction token delivery failed")
		im.release(c, key, quantity, due)
		return nil, err
	}
	if err := im.destination.Accept(c, a, buyer, due); err != nil {
		c.WithFields(log.Fields{"err": err, "due": due}).Error("destination.Accept failed")
		if err := im.ledger.Transfer(c, a.AuctionToken.Address, buyer, im.holding, quantity); err != nil {
			c.WithFields(log.Fields{"err": err, "quantity": quantity}).Error("auction token reclaim failed")
		} else {
			im.release(c, key, quantity, due)
		}
		return nil, err
	}

	c.WithFields(log.Fields{"id": a.Id, "price": price, "paid": due, "remaining": updated.RemainingTokens}).Info("tokens purchased")
	met.BumpSum("buy", 1, "flow", im.name)
	im.emitter.Emit(c, auction.NewTokensPurchasedEvent(updated, buyer, quantity, due, now))

	// the purchase is committed, a failed finalize is left to FinalizeAuction
	if updated.IsSoldOut() {
		if _, err := im.finalize(c, updated, now); err != nil {
			c.WithFields(log.Fields{"err": err, "id": a.Id}).Warn("finalize after sellout failed")
		}
	}
	return due, nil
}

// release undoes a reservation whose funds never moved
func (im *impl) release(c ctx.Ctx, key auction.Key, quantity, due *big.Int) {
	if _, err := im.repo.RestoreRemaining(c, key, quantity, due); err != nil {
		c.WithFields(log.Fields{"err": err, "quantity": quantity}).Error("repo.RestoreRemaining failed")
	}
}

func (im *impl) FinalizeAuction(c ctx.Ctx, key auction.Key) (*auction.Auction, error) {
	key = key.ToLower()
	c = im.logCtx(c, key)

	im.mu.Lock()
	defer im.mu.Unlock()

	a, err := im.repo.Get(c, key)
	if err != nil {
		return nil, err
	}
	if a.IsFinalized {
		return nil, auction.ErrAuctionAlreadyFinalized
	}

	now := im.now()
	if !a.IsExpired(now) && !a.IsSoldOut() {
		return nil, auction.ErrAuctionNotEnded
	}
	return im.finalize(c, a, now)
}

// finalize is the single terminal path of sellout and expiry, the caller holds mu
func (im *impl) finalize(c ctx.Ctx, a *auction.Auction, now time.Time) (*auction.Auction, error) {
	unsold := domain.CopyBig(a.RemainingTokens)

	if err := im.unsold.HandleUnsold(c, a, im.holding, unsold); err != nil {
		c.WithFields(log.Fields{"err": err, "id": a.Id, "unsold": unsold}).Error("unsold.HandleUnsold failed")
		return nil, err
	}

	finalized, err := im.repo.MarkFinalized(c, a.Key, unsold, now)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "id": a.Id}).Error("repo.MarkFinalized failed")
		return nil, err
	}

	c.WithFields(log.Fields{"id": a.Id, "sold": finalized.SoldTokens, "unsold": unsold}).Info("auction finalized")
	met.BumpSum("finalize", 1, "flow", im.name)
	im.emitter.Emit(c, auction.NewAuctionFinalizedEvent(finalized, unsold, now))
	return finalized, nil
}

func (im *impl) GetAuction(c ctx.Ctx, key auction.Key) (*auction.Auction, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.repo.Get(c, key)
}

func (im *impl) GetAuctionById(c ctx.Ctx, id auction.Id) (*auction.Auction, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.repo.FindOne(c, id)
}

func (im *impl) ListAuctions(c ctx.Ctx, opts ...auction.FindAllOptions) ([]*auction.Auction, int, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	res, err := im.repo.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, 0, err
	}

	// the total ignores pagination
	count, err := im.repo.Count(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("repo.Count failed")
		return nil, 0, err
	}
	return res, count, nil
}
