package repository

import (
	"math/big"
	"sync"
	"time"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/auction"
)

type memoryRepo struct {
	mu     sync.RWMutex
	nextId auction.Id
	// records in creation order, index i holds id i+1
	records []*auction.Auction
	running map[auction.Key]*auction.Auction
}

// NewMemoryRepo keeps the ledger in process, records are deep-copied in and out
func NewMemoryRepo() auction.Repo {
	return &memoryRepo{
		running: map[auction.Key]*auction.Auction{},
	}
}

func (im *memoryRepo) Create(c ctx.Ctx, cfg auction.Config) (*auction.Auction, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	key := cfg.Key.ToLower()
	if _, ok := im.running[key]; ok {
		return nil, auction.ErrAuctionAlreadyRunning
	}

	im.nextId++
	cfg.Id = im.nextId
	cfg.Key = key

	a := auction.NewAuction(cfg).Clone()
	im.records = append(im.records, a)
	im.running[key] = a
	return a.Clone(), nil
}

func (im *memoryRepo) Get(c ctx.Ctx, key auction.Key) (*auction.Auction, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	a := im.latest(key.ToLower())
	if a == nil {
		return nil, auction.ErrAuctionNotFound
	}
	return a.Clone(), nil
}

func (im *memoryRepo) latest(key auction.Key) *auction.Auction {
	if a, ok := im.running[key]; ok {
		return a
	}
	for i := len(im.records) - 1; i >= 0; i-- {
		if im.records[i].Key == key {
			return im.records[i]
		}
	}
	return nil
}

func (im *memoryRepo) FindOne(c ctx.Ctx, id auction.Id) (*auction.Auction, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	if id == 0 || int(id) > len(im.records) {
		return nil, auction.ErrAuctionNotFound
	}
	return im.records[id-1].Clone(), nil
}

func (im *memoryRepo) FindAll(c ctx.Ctx, opts ...auction.FindAllOptions) ([]*auction.Auction, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	by, err := makeSort(opts...)
	if err != nil {
		c.WithField("err", err).Error("makeSort failed")
		return nil, err
	}

	res, err := im.filter(opts...)
	if err != nil {
		c.WithField("err", err).Error("filter failed")
		return nil, err
	}
	sortAuctions(res, by)
	return paginate(res, opts...)
}

func (im *memoryRepo) filter(opts ...auction.FindAllOptions) ([]*auction.Auction, error) {
	res := []*auction.Auction{}
	for _, a := range im.records {
		ok, err := matches(a, opts...)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, a.Clone())
		}
	}
	return res, nil
}

func (im *memoryRepo) Count(c ctx.Ctx, opts ...auction.FindAllOptions) (int, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	res, err := im.filter(opts...)
	if err != nil {
		c.WithField("err", err).Error("filter failed")
		return 0, err
	}
	return len(res), nil
}

func (im *memoryRepo) DecrementRemaining(c ctx.Ctx, key auction.Key, amount *big.Int, payment *big.Int) (*auction.Auction, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	a := im.latest(key.ToLower())
	if a == nil {
		return nil, auction.ErrAuctionNotFound
	}
	if a.IsFinalized {
		return nil, auction.ErrAuctionAlreadyFinalized
	}
	if amount.Sign() <= 0 {
		return nil, auction.ErrInvalidTokenAmount
	}
	if amount.Cmp(a.RemainingTokens) > 0 {
		return nil, auction.ErrInsufficientTokensAvailable
	}

	a.RemainingTokens = new(big.Int).Sub(a.RemainingTokens, amount)
	a.SoldTokens = new(big.Int).Add(a.SoldTokens, amount)
	a.PaymentCollected = new(big.Int).Add(a.PaymentCollected, payment)
	return a.Clone(), nil
}

func (im *memoryRepo) RestoreRemaining(c ctx.Ctx, key auction.Key, amount *big.Int, payment *big.Int) (*auction.Auction, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	a := im.latest(key.ToLower())
	if a == nil {
		return nil, auction.ErrAuctionNotFound
	}
	if a.IsFinalized {
		return nil, auction.ErrAuctionAlreadyFinalized
	}
	if amount.Sign() <= 0 || amount.Cmp(a.SoldTokens) > 0 || payment.Cmp(a.PaymentCollected) > 0 {
		return nil, auction.ErrInvalidTokenAmount
	}

	a.RemainingTokens = new(big.Int).Add(a.RemainingTokens, amount)
	a.SoldTokens = new(big.Int).Sub(a.SoldTokens, amount)
	a.PaymentCollected = new(big.Int).Sub(a.PaymentCollected, payment)
	return a.Clone(), nil
}

func (im *memoryRepo) MarkFinalized(c ctx.Ctx, key auction.Key, unsold *big.Int, at time.Time) (*auction.Auction, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	key = key.ToLower()
	a := im.latest(key)
	if a == nil {
		return nil, auction.ErrAuctionNotFound
	}
	if a.IsFinalized {
		return nil, auction.ErrAuctionAlreadyFinalized
	}
	if unsold.Cmp(a.RemainingTokens) > 0 {
		return nil, auction.ErrInsufficientTokensAvailable
	}

	a.IsFinalized = true
	a.UnsoldTokens = new(big.Int).Set(unsold)
	a.RemainingTokens = new(big.Int).Sub(a.RemainingTokens, unsold)
	a.FinalizedAt = &at
	delete(im.running, key)
	return a.Clone(), nil
}
