package repository

import (
	"math/big"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/harvest"
	"github.com/x-xyz/goauction/service/query"
)

// delta is applied to the pending, unsold and obtained counters in that order
type delta [3]*big.Int

func (d delta) check() error {
	for _, v := range d {
		if v != nil && v.Sign() < 0 {
			return domain.ErrNegativeAmount
		}
	}
	return nil
}

func neg(v *big.Int) *big.Int {
	return new(big.Int).Neg(domain.CopyBig(v))
}

// apply returns the updated carryover, counters never go below zero
func apply(co *harvest.Carryover, d delta) (*harvest.Carryover, error) {
	fields := []*big.Int{co.PendingTokens, co.UnsoldTokens, co.ObtainedTokens}
	next := make([]*big.Int, len(fields))
	for i, cur := range fields {
		next[i] = domain.CopyBig(cur)
		if d[i] != nil {
			next[i].Add(next[i], d[i])
		}
		if next[i].Sign() < 0 {
			return nil, domain.ErrInsufficientBalance
		}
	}
	return &harvest.Carryover{
		Key:            co.Key,
		PendingTokens:  next[0],
		UnsoldTokens:   next[1],
		ObtainedTokens: next[2],
	}, nil
}

func cloneCarryover(co *harvest.Carryover) *harvest.Carryover {
	return &harvest.Carryover{
		Key:            co.Key,
		PendingTokens:  domain.CopyBig(co.PendingTokens),
		UnsoldTokens:   domain.CopyBig(co.UnsoldTokens),
		ObtainedTokens: domain.CopyBig(co.ObtainedTokens),
	}
}

type memoryCarryoverRepo struct {
	mu    sync.RWMutex
	items map[auction.Key]*harvest.Carryover
}

func NewMemoryCarryoverRepo() harvest.CarryoverRepo {
	return &memoryCarryoverRepo{items: map[auction.Key]*harvest.Carryover{}}
}

func (im *memoryCarryoverRepo) Get(c ctx.Ctx, key auction.Key) (*harvest.Carryover, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	key = key.ToLower()
	if co, ok := im.items[key]; ok {
		return cloneCarryover(co), nil
	}
	return harvest.EmptyCarryover(key), nil
}

// update applies d as is, callers check the sign of their arguments
func (im *memoryCarryoverRepo) update(key auction.Key, d delta) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	key = key.ToLower()
	co, ok := im.items[key]
	if !ok {
		co = harvest.EmptyCarryover(key)
	}
	next, err := apply(co, d)
	if err != nil {
		return err
	}
	im.items[key] = next
	return nil
}

func (im *memoryCarryoverRepo) AddPending(c ctx.Ctx, key auction.Key, amount *big.Int) error {
	d := delta{amount, nil, nil}
	if err := d.check(); err != nil {
		return err
	}
	return im.update(key, d)
}

func (im *memoryCarryoverRepo) AddUnsold(c ctx.Ctx, key auction.Key, amount *big.Int) error {
	d := delta{nil, amount, nil}
	if err := d.check(); err != nil {
		return err
	}
	return im.update(key, d)
}

func (im *memoryCarryoverRepo) AddObtained(c ctx.Ctx, key auction.Key, amount *big.Int) error {
	d := delta{nil, nil, amount}
	if err := d.check(); err != nil {
		return err
	}
	return im.update(key, d)
}

func (im *memoryCarryoverRepo) Consume(c ctx.Ctx, key auction.Key, pending *big.Int, unsold *big.Int) error {
	if err := (delta{pending, unsold, nil}).check(); err != nil {
		return err
	}
	return im.update(key, delta{neg(pending), neg(unsold), nil})
}

type carryoverDoc struct {
	Source         domain.Address `bson:"source"`
	Asset          domain.Address `bson:"asset"`
	PendingTokens  string         `bson:"pendingTokens"`
	UnsoldTokens   string         `bson:"unsoldTokens"`
	ObtainedTokens string         `bson:"obtainedTokens"`
	UpdatedAt      time.Time      `bson:"updatedAt"`
}

func (d *carryoverDoc) toCarryover() (*harvest.Carryover, error) {
	nums, err := domain.ToBigInt([]string{d.PendingTokens, d.UnsoldTokens, d.ObtainedTokens})
	if err != nil {
		return nil, err
	}
	return &harvest.Carryover{
		Key:            auction.Key{Source: d.Source, Asset: d.Asset},
		PendingTokens:  nums[0],
		UnsoldTokens:   nums[1],
		ObtainedTokens: nums[2],
	}, nil
}

type carryoverRepo struct {
	q   query.Mongo
	now func() time.Time
}

// NewCarryoverRepo keeps carryovers in mongo, updates are read-modify-write inside a transaction
func NewCarryoverRepo(q query.Mongo) harvest.CarryoverRepo {
	return &carryoverRepo{q: q, now: time.Now}
}

func EnsureCarryoverIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TableCarryovers,
		query.Index{Keys: bson.D{{Key: "source", Value: 1}, {Key: "asset", Value: 1}}, Unique: true},
	)
}

func carryoverSelector(key auction.Key) bson.M {
	return bson.M{"source": key.Source, "asset": key.Asset}
}

func (im *carryoverRepo) Get(c ctx.Ctx, key auction.Key) (*harvest.Carryover, error) {
	key = key.ToLower()
	doc := &carryoverDoc{}
	if err := im.q.FindOne(c, domain.TableCarryovers, carryoverSelector(key), doc); err == query.ErrNotFound {
		return harvest.EmptyCarryover(key), nil
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("q.FindOne failed")
		return nil, err
	}
	return doc.toCarryover()
}

// update applies d as is, callers check the sign of their arguments
func (im *carryoverRepo) update(c ctx.Ctx, key auction.Key, d delta) error {
	key = key.ToLower()

	return im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		co, err := im.Get(c, key)
		if err != nil {
			return err
		}
		next, err := apply(co, d)
		if err != nil {
			return err
		}
		doc := &carryoverDoc{
			Source:         key.Source,
			Asset:          key.Asset,
			PendingTokens:  next.PendingTokens.String(),
			UnsoldTokens:   next.UnsoldTokens.String(),
			ObtainedTokens: next.ObtainedTokens.String(),
			UpdatedAt:      im.now(),
		}
		if err := im.q.Upsert(c, domain.TableCarryovers, carryoverSelector(key), doc); err != nil {
			c.WithFields(log.Fields{"err": err, "key": key}).Error("q.Upsert failed")
			return err
		}
		return nil
	})
}

func (im *carryoverRepo) AddPending(c ctx.Ctx, key auction.Key, amount *big.Int) error {
	d := delta{amount, nil, nil}
	if err := d.check(); err != nil {
		return err
	}
	return im.update(c, key, d)
}

func (im *carryoverRepo) AddUnsold(c ctx.Ctx, key auction.Key, amount *big.Int) error {
	d := delta{nil, amount, nil}
	if err := d.check(); err != nil {
		return err
	}
	return im.update(c, key, d)
}

func (im *carryoverRepo) AddObtained(c ctx.Ctx, key auction.Key, amount *big.Int) error {
	d := delta{nil, nil, amount}
	if err := d.check(); err != nil {
		return err
	}
	return im.update(c, key, d)
}

func (im *carryoverRepo) Consume(c ctx.Ctx, key auction.Key, pending *big.Int, unsold *big.Int) error {
	if err := (delta{pending, unsold, nil}).check(); err != nil {
		return err
	}
	return im.update(c, key, delta{neg(pending), neg(unsold), nil})
}
