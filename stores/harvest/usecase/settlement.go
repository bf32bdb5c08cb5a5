package usecase

import (
	"math/big"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/harvest"
)

type boardingDestination struct {
	ledger    domain.TokenLedger
	carryover harvest.CarryoverRepo
}

// NewBoardingDestination pays the proceeds of a purchase to the source the rewards came from
func NewBoardingDestination(ledger domain.TokenLedger, carryover harvest.CarryoverRepo) auction.SettlementDestination {
	return &boardingDestination{ledger: ledger, carryover: carryover}
}

func (im *boardingDestination) Accept(c ctx.Ctx, a *auction.Auction, from domain.Address, amount *big.Int) error {
	if err := im.ledger.Transfer(c, a.PaymentToken.Address, from, a.Key.Source, amount); err != nil {
		c.WithFields(log.Fields{"err": err, "source": a.Key.Source, "amount": amount}).Error("ledger.Transfer failed")
		return err
	}
	if err := im.carryover.AddObtained(c, a.Key, amount); err != nil {
		c.WithFields(log.Fields{"err": err, "amount": amount}).Error("carryover.AddObtained failed")
		return err
	}
	return nil
}

type carryoverUnsold struct {
	carryover harvest.CarryoverRepo
}

// NewCarryoverUnsold keeps unsold tokens in the holding account for the next auction of the key
func NewCarryoverUnsold(carryover harvest.CarryoverRepo) auction.UnsoldHandler {
	return &carryoverUnsold{carryover}
}

func (im *carryoverUnsold) HandleUnsold(c ctx.Ctx, a *auction.Auction, holding domain.Address, unsold *big.Int) error {
	if unsold.Sign() == 0 {
		return nil
	}
	if err := im.carryover.AddUnsold(c, a.Key, unsold); err != nil {
		c.WithFields(log.Fields{"err": err, "unsold": unsold}).Error("carryover.AddUnsold failed")
		return err
	}
	return nil
}
