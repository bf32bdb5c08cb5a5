package repository

import (
	"math/big"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/service/query"
)

type balanceDoc struct {
	Token   domain.Address `bson:"token"`
	Account domain.Address `bson:"account"`
	// Balance is a base 10 integer
	Balance string `bson:"balance"`
}

type mongoLedger struct {
	q query.Mongo
}

// NewMongoLedger keeps balances in mongo, every mutation runs in a transaction
func NewMongoLedger(q query.Mongo) domain.TokenLedger {
	return &mongoLedger{q}
}

func EnsureBalanceIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.EnsureIndexes(c, domain.TableBalances,
		query.Index{Keys: bson.D{{Key: "token", Value: 1}, {Key: "account", Value: 1}}, Unique: true},
	)
}

func balanceSelector(token, account domain.Address) bson.M {
	return bson.M{"token": token.ToLower(), "account": account.ToLower()}
}

func (im *mongoLedger) get(c ctx.Ctx, token, account domain.Address) (*big.Int, error) {
	doc := &balanceDoc{}
	if err := im.q.FindOne(c, domain.TableBalances, balanceSelector(token, account), doc); err == query.ErrNotFound {
		return new(big.Int), nil
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "token": token, "account": account}).Error("q.FindOne failed")
		return nil, err
	}
	return domain.ParseBig(doc.Balance)
}

func (im *mongoLedger) put(c ctx.Ctx, token, account domain.Address, v *big.Int) error {
	doc := &balanceDoc{Token: token.ToLower(), Account: account.ToLower(), Balance: v.String()}
	if err := im.q.Upsert(c, domain.TableBalances, balanceSelector(token, account), doc); err != nil {
		c.WithFields(log.Fields{"err": err, "token": token, "account": account}).Error("q.Upsert failed")
		return err
	}
	return nil
}

// add applies delta to the balance, failing when it would go below zero
func (im *mongoLedger) add(c ctx.Ctx, token, account domain.Address, delta *big.Int) error {
	bal, err := im.get(c, token, account)
	if err != nil {
		return err
	}
	next := new(big.Int).Add(bal, delta)
	if next.Sign() < 0 {
		return domain.ErrInsufficientBalance
	}
	return im.put(c, token, account, next)
}

func (im *mongoLedger) BalanceOf(c ctx.Ctx, token domain.Address, account domain.Address) (*big.Int, error) {
	return im.get(c, token, account)
}

func (im *mongoLedger) Transfer(c ctx.Ctx, token domain.Address, from domain.Address, to domain.Address, amount *big.Int) error {
	if err := checkTransfer(token, to, amount); err != nil {
		return err
	}
	if from.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	return im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.add(c, token, from, new(big.Int).Neg(amount)); err != nil {
			return err
		}
		return im.add(c, token, to, amount)
	})
}

func (im *mongoLedger) Burn(c ctx.Ctx, token domain.Address, from domain.Address, amount *big.Int) error {
	if err := checkTransfer(token, from, amount); err != nil {
		return err
	}
	return im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		return im.add(c, token, from, new(big.Int).Neg(amount))
	})
}

func (im *mongoLedger) Mint(c ctx.Ctx, token domain.Address, to domain.Address, amount *big.Int) error {
	if err := checkTransfer(token, to, amount); err != nil {
		return err
	}
	return im.q.RunWithTransaction(c, func(c ctx.Ctx) error {
		return im.add(c, token, to, amount)
	})
}
