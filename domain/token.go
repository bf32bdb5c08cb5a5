package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/goauction/base/ctx"
)

type Token struct {
	Address  Address `json:"address" bson:"address" mapstructure:"address"`
	Symbol   string  `json:"symbol" bson:"symbol" mapstructure:"symbol"`
	Decimals uint8   `json:"decimals" bson:"decimals" mapstructure:"decimals"`
}

// Unit returns the amount of base units in one whole token
func (t Token) Unit() *big.Int {
	return new(big.Int).Exp(Big10, big.NewInt(int64(t.Decimals)), nil)
}

// Display formats base units, ie: 1500000 USDC = "1.5"
func (t Token) Display(amount *big.Int) string {
	return decimal.NewFromBigInt(CopyBig(amount), -int32(t.Decimals)).String()
}

// FromDisplay parses a display amount back to base units, extra precision is truncated
func (t Token) FromDisplay(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, ErrInvalidNumberFormat
	}
	return d.Shift(int32(t.Decimals)).BigInt(), nil
}

// TokenLedger keeps balances of fungible tokens
type TokenLedger interface {
	BalanceOf(c ctx.Ctx, token Address, account Address) (*big.Int, error)
	Transfer(c ctx.Ctx, token Address, from Address, to Address, amount *big.Int) error
	// Burn destroys supply held by from
	Burn(c ctx.Ctx, token Address, from Address, amount *big.Int) error
	Mint(c ctx.Ctx, token Address, to Address, amount *big.Int) error
}

// InventorySource holds tokens that are about to be auctioned
type InventorySource interface {
	AvailableBalance(c ctx.Ctx, asset Address) (*big.Int, error)
	TransferOut(c ctx.Ctx, asset Address, amount *big.Int, to Address) error
	// TransferIn takes back tokens moved out by TransferOut
	TransferIn(c ctx.Ctx, asset Address, amount *big.Int, from Address) error
}

// Tokens is a static token registry
type Tokens []Token

// Find fails with ErrUnknownToken when address is not listed
func (ts Tokens) Find(address Address) (Token, error) {
	for _, t := range ts {
		if t.Address.Equals(address) {
			return t, nil
		}
	}
	return Token{}, ErrUnknownToken
}
