package repository

import (
	"math/big"
	"sync"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
)

func checkTransfer(token, to domain.Address, amount *big.Int) error {
	if token.IsEmpty() || to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrNegativeAmount
	}
	return nil
}

type memoryLedger struct {
	mu       sync.RWMutex
	balances map[domain.Address]map[domain.Address]*big.Int
}

// NewMemoryLedger keeps balances in process, addresses are case insensitive
func NewMemoryLedger() domain.TokenLedger {
	return &memoryLedger{balances: map[domain.Address]map[domain.Address]*big.Int{}}
}

func (im *memoryLedger) balance(token, account domain.Address) *big.Int {
	if accounts, ok := im.balances[token.ToLower()]; ok {
		if b, ok := accounts[account.ToLower()]; ok {
			return b
		}
	}
	return new(big.Int)
}

func (im *memoryLedger) setBalance(token, account domain.Address, v *big.Int) {
	token = token.ToLower()
	accounts, ok := im.balances[token]
	if !ok {
		accounts = map[domain.Address]*big.Int{}
		im.balances[token] = accounts
	}
	accounts[account.ToLower()] = v
}

func (im *memoryLedger) BalanceOf(c ctx.Ctx, token domain.Address, account domain.Address) (*big.Int, error) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return new(big.Int).Set(im.balance(token, account)), nil
}

func (im *memoryLedger) Transfer(c ctx.Ctx, token domain.Address, from domain.Address, to domain.Address, amount *big.Int) error {
	if err := checkTransfer(token, to, amount); err != nil {
		return err
	}
	if from.IsEmpty() {
		return domain.ErrInvalidAddress
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	fromBal := im.balance(token, from)
	if fromBal.Cmp(amount) < 0 {
		return domain.ErrInsufficientBalance
	}
	if from.Equals(to) {
		return nil
	}
	im.setBalance(token, from, new(big.Int).Sub(fromBal, amount))
	im.setBalance(token, to, new(big.Int).Add(im.balance(token, to), amount))
	return nil
}

func (im *memoryLedger) Burn(c ctx.Ctx, token domain.Address, from domain.Address, amount *big.Int) error {
	if err := checkTransfer(token, from, amount); err != nil {
		return err
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	bal := im.balance(token, from)
	if bal.Cmp(amount) < 0 {
		return domain.ErrInsufficientBalance
	}
	im.setBalance(token, from, new(big.Int).Sub(bal, amount))
	return nil
}

func (im *memoryLedger) Mint(c ctx.Ctx, token domain.Address, to domain.Address, amount *big.Int) error {
	if err := checkTransfer(token, to, amount); err != nil {
		return err
	}

	im.mu.Lock()
	defer im.mu.Unlock()
	im.setBalance(token, to, new(big.Int).Add(im.balance(token, to), amount))
	return nil
}
