package repository

import (
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/decay"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/service/query"
)

const (
	seqAuctionId = "auctionId"
	// optimistic updates retried before reporting a conflict
	maxPatchAttempts = 3
)

// auctionDoc keeps amounts as base 10 strings, they exceed int64
type auctionDoc struct {
	Id           uint64         `bson:"id"`
	Source       domain.Address `bson:"source"`
	Asset        domain.Address `bson:"asset"`
	AuctionToken domain.Token   `bson:"auctionToken"`
	PaymentToken domain.Token   `bson:"paymentToken"`
	TotalTokens  string         `bson:"totalTokens"`
	StartTime    time.Time      `bson:"startTime"`
	EndTime      time.Time      `bson:"endTime"`
	StartPrice   string         `bson:"startPrice"`
	EndPrice     string         `bson:"endPrice"`
	DecayCurve   decay.Curve    `bson:"decayCurve"`
	KickerReward string         `bson:"kickerReward"`
	Kicker       domain.Address `bson:"kicker"`

	RemainingTokens  string     `bson:"remainingTokens"`
	IsFinalized      bool       `bson:"isFinalized"`
	SoldTokens       string     `bson:"soldTokens"`
	PaymentCollected string     `bson:"paymentCollected"`
	UnsoldTokens     string     `bson:"unsoldTokens"`
	FinalizedAt      *time.Time `bson:"finalizedAt,omitempty"`
	// Version guards read-modify-write updates
	Version int64 `bson:"version"`
}

func toAuctionDoc(a *auction.Auction) *auctionDoc {
	return &auctionDoc{
		Id:               uint64(a.Id),
		Source:           a.Key.Source,
		Asset:            a.Key.Asset,
		AuctionToken:     a.AuctionToken,
		PaymentToken:     a.PaymentToken,
		TotalTokens:      domain.BigString(a.TotalTokens),
		StartTime:        a.StartTime,
		EndTime:          a.EndTime,
		StartPrice:       domain.BigString(a.StartPrice),
		EndPrice:         domain.BigString(a.EndPrice),
		DecayCurve:       a.DecayCurve,
		KickerReward:     domain.BigString(a.KickerReward),
		Kicker:           a.Kicker,
		RemainingTokens:  domain.BigString(a.RemainingTokens),
		IsFinalized:      a.IsFinalized,
		SoldTokens:       domain.BigString(a.SoldTokens),
		PaymentCollected: domain.BigString(a.PaymentCollected),
		UnsoldTokens:     domain.BigString(a.UnsoldTokens),
		FinalizedAt:      a.FinalizedAt,
	}
}

func (d *auctionDoc) toAuction() (*auction.Auction, error) {
	nums, err := domain.ToBigInt([]string{
		d.TotalTokens, d.StartPrice, d.EndPrice, d.KickerReward,
		d.RemainingTokens, d.SoldTokens, d.PaymentCollected, d.UnsoldTokens,
	})
	if err != nil {
		return nil, err
	}
	return &auction.Auction{
		Config: auction.Config{
			Id:           auction.Id(d.Id),
			Key:          auction.Key{Source: d.Source, Asset: d.Asset},
			AuctionToken: d.AuctionToken,
			PaymentToken: d.PaymentToken,
			TotalTokens:  nums[0],
			StartTime:    d.StartTime.UTC(),
			EndTime:      d.EndTime.UTC(),
			StartPrice:   nums[1],
			EndPrice:     nums[2],
			DecayCurve:   d.DecayCurve,
			KickerReward: nums[3],
			Kicker:       d.Kicker,
		},
		State: auction.State{
			RemainingTokens:  nums[4],
			IsFinalized:      d.IsFinalized,
			SoldTokens:       nums[5],
			PaymentCollected: nums[6],
			UnsoldTokens:     nums[7],
			FinalizedAt:      utcPtr(d.FinalizedAt),
		},
	}, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

type sequence struct {
	Value uint64 `bson:"value"`
}

type auctionRepo struct {
	q query.Mongo
}

func NewAuctionRepo(q query.Mongo) auction.Repo {
	return &auctionRepo{q}
}

// EnsureAuctionIndexes creates the indexes the ledger relies on, the partial
// unique index enforces one running auction per key
func EnsureAuctionIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TableAuctions,
		query.Index{Keys: bson.D{{Key: "id", Value: 1}}, Unique: true},
		query.Index{
			Keys:          bson.D{{Key: "source", Value: 1}, {Key: "asset", Value: 1}},
			Unique:        true,
			PartialFilter: bson.M{"isFinalized": false},
		},
		query.Index{Keys: bson.D{{Key: "source", Value: 1}, {Key: "asset", Value: 1}, {Key: "id", Value: -1}}},
	)
}

func (im *auctionRepo) nextId(c ctx.Ctx) (auction.Id, error) {
	seq := sequence{}
	if err := im.q.Increment(c, domain.TableSequences, bson.M{"_id": seqAuctionId}, &seq, "value", 1); err != nil {
		c.WithField("err", err).Error("q.Increment failed")
		return 0, err
	}
	return auction.Id(seq.Value), nil
}

func (im *auctionRepo) Create(c ctx.Ctx, cfg auction.Config) (*auction.Auction, error) {
	cfg.Key = cfg.Key.ToLower()

	if _, err := im.findRunning(c, cfg.Key); err == nil {
		return nil, auction.ErrAuctionAlreadyRunning
	} else if err != auction.ErrAuctionNotFound {
		return nil, err
	}

	id, err := im.nextId(c)
	if err != nil {
		return nil, err
	}
	cfg.Id = id

	a := auction.NewAuction(cfg)
	if err := im.q.Insert(c, domain.TableAuctions, toAuctionDoc(a)); err == query.ErrDuplicateKey {
		return nil, auction.ErrAuctionAlreadyRunning
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": cfg.Key}).Error("q.Insert failed")
		return nil, err
	}
	return a, nil
}

func (im *auctionRepo) findRunning(c ctx.Ctx, key auction.Key) (*auctionDoc, error) {
	doc := &auctionDoc{}
	selector := bson.M{"source": key.Source, "asset": key.Asset, "isFinalized": false}
	if err := im.q.FindOne(c, domain.TableAuctions, selector, doc); err == query.ErrNotFound {
		return nil, auction.ErrAuctionNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("q.FindOne failed")
		return nil, err
	}
	return doc, nil
}

// latest is the running doc if any, since it always holds the highest id of its key
func (im *auctionRepo) latest(c ctx.Ctx, key auction.Key) (*auctionDoc, error) {
	docs := []*auctionDoc{}
	selector := bson.M{"source": key.Source, "asset": key.Asset}
	if err := im.q.Search(c, domain.TableAuctions, 0, 1, "-id", selector, &docs); err != nil {
		c.WithFields(log.Fields{"err": err, "key": key}).Error("q.Search failed")
		return nil, err
	}
	if len(docs) == 0 {
		return nil, auction.ErrAuctionNotFound
	}
	return docs[0], nil
}

func (im *auctionRepo) Get(c ctx.Ctx, key auction.Key) (*auction.Auction, error) {
	doc, err := im.latest(c, key.ToLower())
	if err != nil {
		return nil, err
	}
	return doc.toAuction()
}

func (im *auctionRepo) FindOne(c ctx.Ctx, id auction.Id) (*auction.Auction, error) {
	doc := &auctionDoc{}
	if err := im.q.FindOne(c, domain.TableAuctions, bson.M{"id": uint64(id)}, doc); err == query.ErrNotFound {
		return nil, auction.ErrAuctionNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "id": id}).Error("q.FindOne failed")
		return nil, err
	}
	return doc.toAuction()
}

func (im *auctionRepo) FindAll(c ctx.Ctx, optFns ...auction.FindAllOptions) ([]*auction.Auction, error) {
	opts, err := auction.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("auction.GetFindAllOptions failed")
		return nil, err
	}

	query, err := makeFindQuery(optFns...)
	if err != nil {
		return nil, err
	}

	sort, err := makeSort(optFns...)
	if err != nil {
		return nil, err
	}

	offset, limit := 0, 0
	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}
	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	docs := []*auctionDoc{}
	if err := im.q.Search(c, domain.TableAuctions, offset, limit, sort, query, &docs); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}

	res := make([]*auction.Auction, 0, len(docs))
	for _, d := range docs {
		a, err := d.toAuction()
		if err != nil {
			c.WithFields(log.Fields{"err": err, "id": d.Id}).Error("toAuction failed")
			return nil, err
		}
		res = append(res, a)
	}
	return res, nil
}

func (im *auctionRepo) Count(c ctx.Ctx, optFns ...auction.FindAllOptions) (int, error) {
	query, err := makeFindQuery(optFns...)
	if err != nil {
		return 0, err
	}
	count, err := im.q.Count(c, domain.TableAuctions, query)
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, err
	}
	return count, nil
}

// patchRunning applies mutate to the running auction of key, retrying when a
// concurrent writer bumped the version in between
func (im *auctionRepo) patchRunning(c ctx.Ctx, key auction.Key, mutate func(a *auction.Auction) error) (*auction.Auction, error) {
	key = key.ToLower()
	for attempt := 0; attempt < maxPatchAttempts; attempt++ {
		doc, err := im.latest(c, key)
		if err != nil {
			return nil, err
		}
		if doc.IsFinalized {
			return nil, auction.ErrAuctionAlreadyFinalized
		}

		a, err := doc.toAuction()
		if err != nil {
			return nil, err
		}
		if err := mutate(a); err != nil {
			return nil, err
		}

		next := toAuctionDoc(a)
		next.Version = doc.Version + 1
		selector := bson.M{"id": doc.Id, "isFinalized": false, "version": doc.Version}
		if err := im.q.CustomPatch(c, domain.TableAuctions, selector, bson.M{"$set": next}, false); err == query.ErrNotFound {
			c.WithFields(log.Fields{"key": key, "attempt": attempt}).Warn("concurrent auction update, retrying")
			continue
		} else if err != nil {
			c.WithFields(log.Fields{"err": err, "key": key}).Error("q.CustomPatch failed")
			return nil, err
		}
		return a, nil
	}
	return nil, domain.ErrConflict
}

func (im *auctionRepo) DecrementRemaining(c ctx.Ctx, key auction.Key, amount *big.Int, payment *big.Int) (*auction.Auction, error) {
	return im.patchRunning(c, key, func(a *auction.Auction) error {
		if amount.Sign() <= 0 {
			return auction.ErrInvalidTokenAmount
		}
		if amount.Cmp(a.RemainingTokens) > 0 {
			return auction.ErrInsufficientTokensAvailable
		}
		a.RemainingTokens = new(big.Int).Sub(a.RemainingTokens, amount)
		a.SoldTokens = new(big.Int).Add(a.SoldTokens, amount)
		a.PaymentCollected = new(big.Int).Add(a.PaymentCollected, payment)
		return nil
	})
}

func (im *auctionRepo) RestoreRemaining(c ctx.Ctx, key auction.Key, amount *big.Int, payment *big.Int) (*auction.Auction, error) {
	return im.patchRunning(c, key, func(a *auction.Auction) error {
		if amount.Sign() <= 0 || amount.Cmp(a.SoldTokens) > 0 || payment.Cmp(a.PaymentCollected) > 0 {
			return auction.ErrInvalidTokenAmount
		}
		a.RemainingTokens = new(big.Int).Add(a.RemainingTokens, amount)
		a.SoldTokens = new(big.Int).Sub(a.SoldTokens, amount)
		a.PaymentCollected = new(big.Int).Sub(a.PaymentCollected, payment)
		return nil
	})
}

func (im *auctionRepo) MarkFinalized(c ctx.Ctx, key auction.Key, unsold *big.Int, at time.Time) (*auction.Auction, error) {
	return im.patchRunning(c, key, func(a *auction.Auction) error {
		if unsold.Cmp(a.RemainingTokens) > 0 {
			return auction.ErrInsufficientTokensAvailable
		}
		a.IsFinalized = true
		a.UnsoldTokens = new(big.Int).Set(unsold)
		a.RemainingTokens = new(big.Int).Sub(a.RemainingTokens, unsold)
		a.FinalizedAt = &at
		return nil
	})
}
