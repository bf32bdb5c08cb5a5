// Package decay computes descending auction prices.
//
// Prices are scaled to an internal precision of at least 18 decimals before
// interpolation and scaled back to the requested precision at the end, so a
// result never drifts more than one base unit from the exact value.
package decay

import (
	"errors"
	"math/big"
	"strings"
	"time"
)

var (
	ErrInvalidDuration     = errors.New("duration must be positive")
	ErrInvalidPriceRange   = errors.New("end price greater than start price")
	ErrUnsupportedCurve    = errors.New("unsupported decay curve")
	ErrUnsupportedDecimals = errors.New("unsupported decimals")
	ErrNegativeAmount      = errors.New("negative amount")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrOverflow            = errors.New("amount exceeds 256 bits")
)

type Curve string

const (
	Linear Curve = "linear"
	// Exponential eases out quadratically: price falls fastest right after
	// the start and flattens as it approaches the end price
	Exponential Curve = "exponential"
)

func ParseCurve(s string) (Curve, error) {
	switch c := Curve(strings.ToLower(strings.TrimSpace(s))); c {
	case Linear, Exponential:
		return c, nil
	}
	return "", ErrUnsupportedCurve
}

func (c Curve) IsValid() bool {
	return c == Linear || c == Exponential
}

// Price returns the price at elapsed for an auction decaying from startPrice
// to endPrice over duration. Prices are given with inputDecimals and the
// result is returned with outputDecimals.
func Price(curve Curve, startPrice, endPrice *big.Int, elapsed, duration time.Duration, inputDecimals, outputDecimals uint8) (*big.Int, error) {
	if !curve.IsValid() {
		return nil, ErrUnsupportedCurve
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if inputDecimals > MaxDecimals || outputDecimals > MaxDecimals {
		return nil, ErrUnsupportedDecimals
	}
	if err := checkAmount(startPrice); err != nil {
		return nil, err
	}
	if err := checkAmount(endPrice); err != nil {
		return nil, err
	}
	if endPrice.Cmp(startPrice) > 0 {
		return nil, ErrInvalidPriceRange
	}

	precision := uint8(WadDecimals)
	if inputDecimals > precision {
		precision = inputDecimals
	}
	if outputDecimals > precision {
		precision = outputDecimals
	}

	start := Convert(startPrice, inputDecimals, precision)
	end := Convert(endPrice, inputDecimals, precision)

	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= duration {
		return Convert(end, precision, outputDecimals), nil
	}

	var p *big.Int
	switch curve {
	case Linear:
		p = linear(start, end, elapsed, duration)
	case Exponential:
		p = exponential(start, end, elapsed, duration)
	}
	return Convert(p, precision, outputDecimals), nil
}

// start - (start - end) * t / d
func linear(start, end *big.Int, elapsed, duration time.Duration) *big.Int {
	diff := new(big.Int).Sub(start, end)
	drop := diff.Mul(diff, big.NewInt(int64(elapsed)))
	drop.Quo(drop, big.NewInt(int64(duration)))
	return drop.Sub(start, drop)
}

// end + (start - end) * (d - t)^2 / d^2
func exponential(start, end *big.Int, elapsed, duration time.Duration) *big.Int {
	d := big.NewInt(int64(duration))
	left := big.NewInt(int64(duration - elapsed))
	left.Mul(left, left)
	d.Mul(d, d)

	v := new(big.Int).Sub(start, end)
	v.Mul(v, left)
	v.Quo(v, d)
	return v.Add(v, end)
}
