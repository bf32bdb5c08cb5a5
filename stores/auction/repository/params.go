package repository

import (
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/decay"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/service/cache"
	"github.com/x-xyz/goauction/service/query"
)

type memoryParamsRepo struct {
	mu     sync.RWMutex
	params map[auction.Key]*auction.Parameters
}

func NewMemoryParamsRepo() auction.ParamsRepo {
	return &memoryParamsRepo{params: map[auction.Key]*auction.Parameters{}}
}

func (im *memoryParamsRepo) Get(c ctx.Ctx, key auction.Key) (*auction.Parameters, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	p, ok := im.params[key.ToLower()]
	if !ok {
		return nil, auction.ErrParametersNotFound
	}
	return p.Clone(), nil
}

func (im *memoryParamsRepo) Set(c ctx.Ctx, key auction.Key, params *auction.Parameters) error {
	if err := params.Validate(); err != nil {
		return err
	}

	im.mu.Lock()
	defer im.mu.Unlock()
	im.params[key.ToLower()] = params.Clone()
	return nil
}

type paramsDoc struct {
	Source                 domain.Address `bson:"source"`
	Asset                  domain.Address `bson:"asset"`
	DurationMs             int64          `bson:"durationMs"`
	StartPrice             string         `bson:"startPrice"`
	EndPrice               string         `bson:"endPrice"`
	KickerRewardPercentage string         `bson:"kickerRewardPercentage"`
	DecayCurve             decay.Curve    `bson:"decayCurve"`
	UpdatedAt              time.Time      `bson:"updatedAt"`
}

func (d *paramsDoc) toParameters() (*auction.Parameters, error) {
	nums, err := domain.ToBigInt([]string{d.StartPrice, d.EndPrice, d.KickerRewardPercentage})
	if err != nil {
		return nil, err
	}
	return &auction.Parameters{
		Duration:               time.Duration(d.DurationMs) * time.Millisecond,
		StartPrice:             nums[0],
		EndPrice:               nums[1],
		KickerRewardPercentage: domain.NewPercentage(nums[2]),
		DecayCurve:             d.DecayCurve,
	}, nil
}

type paramsRepo struct {
	q   query.Mongo
	now func() time.Time
}

func NewParamsRepo(q query.Mongo) auction.ParamsRepo {
	return &paramsRepo{q: q, now: time.Now}
}

func (im *paramsRepo) Get(c ctx.Ctx, key auction.Key) (*auction.Parameters, error) {
	key = key.ToLower()
	doc := &paramsDoc{}
	if err := im.q.FindOne(c, domain.TableAuctionParameters, bson.M{"source": key.Source, "asset": key.Asset}, doc); err == query.ErrNotFound {
		return nil, auction.ErrParametersNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("q.FindOne failed")
		return nil, err
	}
	return doc.toParameters()
}

func (im *paramsRepo) Set(c ctx.Ctx, key auction.Key, params *auction.Parameters) error {
	if err := params.Validate(); err != nil {
		return err
	}

	key = key.ToLower()
	doc := &paramsDoc{
		Source:                 key.Source,
		Asset:                  key.Asset,
		DurationMs:             params.Duration.Milliseconds(),
		StartPrice:             domain.BigString(params.StartPrice),
		EndPrice:               domain.BigString(params.EndPrice),
		KickerRewardPercentage: domain.BigString(params.KickerRewardPercentage.Raw()),
		DecayCurve:             params.DecayCurve,
		UpdatedAt:              im.now(),
	}
	if err := im.q.Upsert(c, domain.TableAuctionParameters, bson.M{"source": key.Source, "asset": key.Asset}, doc); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("q.Upsert failed")
		return err
	}
	return nil
}

type cachedParamsRepo struct {
	repo  auction.ParamsRepo
	cache cache.Service
}

// NewCachedParamsRepo reads through cache, writes invalidate the cached entry
func NewCachedParamsRepo(repo auction.ParamsRepo, cache cache.Service) auction.ParamsRepo {
	return &cachedParamsRepo{repo: repo, cache: cache}
}

func (im *cachedParamsRepo) Get(c ctx.Ctx, key auction.Key) (*auction.Parameters, error) {
	key = key.ToLower()
	params := &auction.Parameters{}
	if err := im.cache.GetByFunc(c, key.String(), params, func() (interface{}, error) {
		return im.repo.Get(c, key)
	}); err != nil {
		return nil, err
	}
	return params, nil
}

func (im *cachedParamsRepo) Set(c ctx.Ctx, key auction.Key, params *auction.Parameters) error {
	key = key.ToLower()
	if err := im.repo.Set(c, key, params); err != nil {
		return err
	}
	if err := im.cache.Del(c, key.String()); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("cache.Del failed")
		return err
	}
	return nil
}
