package usecase

import (
	"math/big"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
)

type burnDestination struct {
	ledger domain.TokenLedger
}

// NewBurnDestination destroys the payment straight from the buyer
func NewBurnDestination(ledger domain.TokenLedger) auction.SettlementDestination {
	return &burnDestination{ledger}
}

func (im *burnDestination) Accept(c ctx.Ctx, a *auction.Auction, from domain.Address, amount *big.Int) error {
	if err := im.ledger.Burn(c, a.PaymentToken.Address, from, amount); err != nil {
		c.WithFields(log.Fields{"err": err, "token": a.PaymentToken.Address, "amount": amount}).Error("ledger.Burn failed")
		return err
	}
	return nil
}

type treasuryUnsold struct {
	ledger   domain.TokenLedger
	treasury domain.Address
}

// NewTreasuryUnsold returns leftovers to the treasury they were taken from
func NewTreasuryUnsold(ledger domain.TokenLedger, treasury domain.Address) auction.UnsoldHandler {
	return &treasuryUnsold{ledger: ledger, treasury: treasury}
}

func (im *treasuryUnsold) HandleUnsold(c ctx.Ctx, a *auction.Auction, holding domain.Address, unsold *big.Int) error {
	if unsold.Sign() == 0 {
		return nil
	}
	if err := im.ledger.Transfer(c, a.AuctionToken.Address, holding, im.treasury, unsold); err != nil {
		c.WithFields(log.Fields{"err": err, "treasury": im.treasury, "unsold": unsold}).Error("ledger.Transfer failed")
		return err
	}
	return nil
}
