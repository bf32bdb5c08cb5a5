package auction

import (
	"math/big"
	"time"

	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/decay"
	"github.com/x-xyz/goauction/domain"
)

// Parameters is the template every new auction of a key is started with
type Parameters struct {
	Duration               time.Duration     `json:"duration"`
	StartPrice             *big.Int          `json:"startPrice"`
	EndPrice               *big.Int          `json:"endPrice"`
	KickerRewardPercentage domain.Percentage `json:"kickerRewardPercentage"`
	DecayCurve             decay.Curve       `json:"decayCurve"`
}

// Validate requires duration > 0, 0 < endPrice <= startPrice and a reward within [0%, 100%]
func (p *Parameters) Validate() error {
	if p.Duration <= 0 {
		return xerrors.Errorf("duration %s: %w", p.Duration, ErrInvalidParameters)
	}
	if p.StartPrice == nil || p.EndPrice == nil || p.EndPrice.Sign() <= 0 {
		return xerrors.Errorf("prices must be positive: %w", ErrInvalidParameters)
	}
	if p.EndPrice.Cmp(p.StartPrice) > 0 {
		return xerrors.Errorf("end price %s above start price %s: %w", p.EndPrice, p.StartPrice, ErrInvalidParameters)
	}
	if !p.KickerRewardPercentage.IsValid() {
		return xerrors.Errorf("kicker reward %s: %w", p.KickerRewardPercentage, ErrInvalidParameters)
	}
	if !p.DecayCurve.IsValid() {
		return xerrors.Errorf("decay curve %q: %w", p.DecayCurve, ErrInvalidParameters)
	}
	return nil
}

func (p *Parameters) Clone() *Parameters {
	if p == nil {
		return nil
	}
	c := *p
	c.StartPrice = domain.CopyBig(p.StartPrice)
	c.EndPrice = domain.CopyBig(p.EndPrice)
	return &c
}

// ParamsRepo stores the parameters per key
type ParamsRepo interface {
	// Get fails with ErrParametersNotFound when key has never been configured
	Get(c ctx.Ctx, key Key) (*Parameters, error)
	Set(c ctx.Ctx, key Key, params *Parameters) error
}

// GetOrDefault falls back to defaults for keys never configured
func GetOrDefault(c ctx.Ctx, repo ParamsRepo, key Key, defaults Parameters) (*Parameters, error) {
	p, err := repo.Get(c, key)
	if err == ErrParametersNotFound {
		return defaults.Clone(), nil
	} else if err != nil {
		return nil, err
	}
	return p, nil
}
