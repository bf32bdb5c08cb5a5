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
	"github.com/x-xyz/goauction/service/query"
)

type eventDoc struct {
	EventId      string            `bson:"eventId"`
	Type         auction.EventType `bson:"type"`
	AuctionId    uint64            `bson:"auctionId"`
	Source       domain.Address    `bson:"source"`
	Asset        domain.Address    `bson:"asset"`
	Timestamp    time.Time         `bson:"timestamp"`
	Account      domain.Address    `bson:"account,omitempty"`
	PaymentToken domain.Address    `bson:"paymentToken,omitempty"`
	TotalTokens  string            `bson:"totalTokens,omitempty"`
	KickerCut    string            `bson:"kickerCut,omitempty"`
	Quantity     string            `bson:"quantity,omitempty"`
	PricePaid    string            `bson:"pricePaid,omitempty"`
	UnsoldAmount string            `bson:"unsoldAmount,omitempty"`
}

func optString(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func optBig(s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	return domain.ParseBig(s)
}

func toEventDoc(e auction.Event) *eventDoc {
	return &eventDoc{
		EventId:      e.EventId,
		Type:         e.Type,
		AuctionId:    uint64(e.AuctionId),
		Source:       e.Key.Source,
		Asset:        e.Key.Asset,
		Timestamp:    e.Timestamp,
		Account:      e.Account,
		PaymentToken: e.PaymentToken,
		TotalTokens:  optString(e.TotalTokens),
		KickerCut:    optString(e.KickerCut),
		Quantity:     optString(e.Quantity),
		PricePaid:    optString(e.PricePaid),
		UnsoldAmount: optString(e.UnsoldAmount),
	}
}

func (d *eventDoc) toEvent() (auction.Event, error) {
	e := auction.Event{
		EventId:      d.EventId,
		Type:         d.Type,
		AuctionId:    auction.Id(d.AuctionId),
		Key:          auction.Key{Source: d.Source, Asset: d.Asset},
		Timestamp:    d.Timestamp.UTC(),
		Account:      d.Account,
		PaymentToken: d.PaymentToken,
	}
	var err error
	for _, f := range []struct {
		dst **big.Int
		src string
	}{
		{&e.TotalTokens, d.TotalTokens},
		{&e.KickerCut, d.KickerCut},
		{&e.Quantity, d.Quantity},
		{&e.PricePaid, d.PricePaid},
		{&e.UnsoldAmount, d.UnsoldAmount},
	} {
		if *f.dst, err = optBig(f.src); err != nil {
			return auction.Event{}, err
		}
	}
	return e, nil
}

type eventRepo struct {
	q query.Mongo
}

func NewEventRepo(q query.Mongo) auction.EventRepo {
	return &eventRepo{q}
}

func EnsureEventIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TableAuctionEvents,
		query.Index{Keys: bson.D{{Key: "eventId", Value: 1}}, Unique: true},
		query.Index{Keys: bson.D{{Key: "auctionId", Value: 1}, {Key: "timestamp", Value: 1}}},
	)
}

func (im *eventRepo) Insert(c ctx.Ctx, e auction.Event) error {
	if err := im.q.Insert(c, domain.TableAuctionEvents, toEventDoc(e)); err == query.ErrDuplicateKey {
		// replayed event, already recorded
		return nil
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "eventId": e.EventId}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *eventRepo) FindByAuction(c ctx.Ctx, id auction.Id) ([]auction.Event, error) {
	docs := []*eventDoc{}
	if err := im.q.Search(c, domain.TableAuctionEvents, 0, 0, "timestamp", bson.M{"auctionId": uint64(id)}, &docs); err != nil {
		c.WithFields(log.Fields{"err": err, "auctionId": id}).Error("q.Search failed")
		return nil, err
	}
	res := make([]auction.Event, 0, len(docs))
	for _, d := range docs {
		e, err := d.toEvent()
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, nil
}

type memoryEventRepo struct {
	mu     sync.Mutex
	events []auction.Event
}

// NewMemoryEventRepo keeps the history in process
func NewMemoryEventRepo() auction.EventRepo {
	return &memoryEventRepo{}
}

func (im *memoryEventRepo) Insert(c ctx.Ctx, e auction.Event) error {
	im.mu.Lock()
	defer im.mu.Unlock()
	for _, got := range im.events {
		if got.EventId == e.EventId {
			return nil
		}
	}
	im.events = append(im.events, e)
	return nil
}

func (im *memoryEventRepo) FindByAuction(c ctx.Ctx, id auction.Id) ([]auction.Event, error) {
	im.mu.Lock()
	defer im.mu.Unlock()
	res := []auction.Event{}
	for _, e := range im.events {
		if e.AuctionId == id {
			res = append(res, e)
		}
	}
	return res, nil
}
