package domain

import (
	"encoding/json"
	"math/big"

	"github.com/shopspring/decimal"
)

const PercentageDecimals = 18

// Percentage100 is the raw value of 100%
var Percentage100 = new(big.Int).Mul(big.NewInt(100), new(big.Int).Exp(Big10, big.NewInt(PercentageDecimals), nil))

// Percentage is a fixed point number with 18 decimals, 100e18 stands for 100%
type Percentage struct {
	raw *big.Int
}

func NewPercentage(raw *big.Int) Percentage {
	return Percentage{raw: CopyBig(raw)}
}

// ParsePercentage parses display values like "2.5" (2.5%)
func ParsePercentage(s string) (Percentage, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Percentage{}, ErrInvalidPercentage
	}
	p := Percentage{raw: d.Shift(PercentageDecimals).BigInt()}
	if !p.IsValid() {
		return Percentage{}, ErrInvalidPercentage
	}
	return p, nil
}

func MustParsePercentage(s string) Percentage {
	p, err := ParsePercentage(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Percentage) Raw() *big.Int {
	return CopyBig(p.raw)
}

func (p Percentage) IsZero() bool {
	return p.raw == nil || p.raw.Sign() == 0
}

// IsValid reports whether 0% <= p <= 100%
func (p Percentage) IsValid() bool {
	if p.raw == nil {
		return true
	}
	return p.raw.Sign() >= 0 && p.raw.Cmp(Percentage100) <= 0
}

// Of returns floor(amount * p / 100%)
func (p Percentage) Of(amount *big.Int) *big.Int {
	if p.IsZero() || amount == nil {
		return new(big.Int)
	}
	v := new(big.Int).Mul(amount, p.raw)
	return v.Quo(v, Percentage100)
}

func (p Percentage) String() string {
	return decimal.NewFromBigInt(p.Raw(), -PercentageDecimals).String()
}

func (p Percentage) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Percentage) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParsePercentage(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
