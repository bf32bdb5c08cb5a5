package decay

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

// WadDecimals is the minimum internal precision of every price computation
const WadDecimals = 18

// MaxDecimals is the largest token precision supported
const MaxDecimals = 36

var big1 = big.NewInt(1)

// Pow10 returns 10^n
func Pow10(n uint8) *big.Int {
	return math.BigPow(10, int64(n))
}

// ToWad scales amount from decimals to 18 decimals, flooring when decimals > 18
func ToWad(amount *big.Int, decimals uint8) *big.Int {
	return Convert(amount, decimals, WadDecimals)
}

// FromWad scales an 18 decimals value down (or up) to decimals, flooring
func FromWad(wad *big.Int, decimals uint8) *big.Int {
	return Convert(wad, WadDecimals, decimals)
}

// Convert rescales amount between precisions, flooring when precision is reduced
func Convert(amount *big.Int, from, to uint8) *big.Int {
	if amount == nil {
		return new(big.Int)
	}
	switch {
	case from == to:
		return new(big.Int).Set(amount)
	case from < to:
		return new(big.Int).Mul(amount, Pow10(to-from))
	default:
		return new(big.Int).Quo(amount, Pow10(from-to))
	}
}

// MulDivDown returns floor(a * b / d)
func MulDivDown(a, b, d *big.Int) (*big.Int, error) {
	if d.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	if a.Sign() < 0 || b.Sign() < 0 || d.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	v := new(big.Int).Mul(a, b)
	return v.Quo(v, d), nil
}

// MulDivUp returns ceil(a * b / d)
func MulDivUp(a, b, d *big.Int) (*big.Int, error) {
	if d.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	if a.Sign() < 0 || b.Sign() < 0 || d.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	v := new(big.Int).Mul(a, b)
	q, r := new(big.Int).QuoRem(v, d, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big1)
	}
	return q, nil
}

// PaymentFor returns the payment owed for quantity base units of an auction
// asset with auctionDecimals at price (payment base units per whole auction
// unit), rounded up so the protocol is never under-charged
func PaymentFor(quantity, price *big.Int, auctionDecimals uint8) (*big.Int, error) {
	if auctionDecimals > MaxDecimals {
		return nil, ErrUnsupportedDecimals
	}
	return MulDivUp(quantity, price, Pow10(auctionDecimals))
}

// QuantityFor is the inverse of PaymentFor, rounded down
func QuantityFor(payment, price *big.Int, auctionDecimals uint8) (*big.Int, error) {
	if auctionDecimals > MaxDecimals {
		return nil, ErrUnsupportedDecimals
	}
	if price.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	return MulDivDown(payment, Pow10(auctionDecimals), price)
}

func checkAmount(v *big.Int) error {
	if v == nil || v.Sign() < 0 {
		return ErrNegativeAmount
	}
	if v.Cmp(math.MaxBig256) > 0 {
		return ErrOverflow
	}
	return nil
}
