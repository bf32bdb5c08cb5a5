package repository

import (
	"math/big"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
)

type accountInventory struct {
	ledger  domain.TokenLedger
	account domain.Address
}

// NewAccountInventory offers the balances an account holds on the ledger,
// the treasury of buy-and-burn is one
func NewAccountInventory(ledger domain.TokenLedger, account domain.Address) domain.InventorySource {
	return &accountInventory{ledger: ledger, account: account}
}

func (im *accountInventory) AvailableBalance(c ctx.Ctx, asset domain.Address) (*big.Int, error) {
	return im.ledger.BalanceOf(c, asset, im.account)
}

func (im *accountInventory) TransferOut(c ctx.Ctx, asset domain.Address, amount *big.Int, to domain.Address) error {
	if err := im.ledger.Transfer(c, asset, im.account, to, amount); err != nil {
		c.WithFields(log.Fields{"err": err, "asset": asset, "account": im.account, "amount": amount}).Error("ledger.Transfer failed")
		return err
	}
	return nil
}

func (im *accountInventory) TransferIn(c ctx.Ctx, asset domain.Address, amount *big.Int, from domain.Address) error {
	if err := im.ledger.Transfer(c, asset, from, im.account, amount); err != nil {
		c.WithFields(log.Fields{"err": err, "asset": asset, "account": im.account, "amount": amount}).Error("ledger.Transfer failed")
		return err
	}
	return nil
}
