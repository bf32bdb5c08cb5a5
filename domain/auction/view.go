package auction

import (
	"math/big"
	"time"

	"github.com/x-xyz/goauction/base/decay"
	"github.com/x-xyz/goauction/domain"
)

// View is the json form of an auction, amounts are base 10 strings of base units
type View struct {
	Id               Id             `json:"id"`
	Key              Key            `json:"key"`
	AuctionToken     domain.Token   `json:"auctionToken"`
	PaymentToken     domain.Token   `json:"paymentToken"`
	TotalTokens      string         `json:"totalTokens"`
	RemainingTokens  string         `json:"remainingTokens"`
	SoldTokens       string         `json:"soldTokens"`
	UnsoldTokens     string         `json:"unsoldTokens"`
	PaymentCollected string         `json:"paymentCollected"`
	StartTime        time.Time      `json:"startTime"`
	EndTime          time.Time      `json:"endTime"`
	StartPrice       string         `json:"startPrice"`
	EndPrice         string         `json:"endPrice"`
	DecayCurve       decay.Curve    `json:"decayCurve"`
	Kicker           domain.Address `json:"kicker"`
	KickerReward     string         `json:"kickerReward"`
	IsFinalized      bool           `json:"isFinalized"`
	FinalizedAt      *time.Time     `json:"finalizedAt,omitempty"`
	// CurrentPrice is filled for single auction reads
	CurrentPrice string `json:"currentPrice,omitempty"`
}

func (a *Auction) View() *View {
	return &View{
		Id:               a.Id,
		Key:              a.Key,
		AuctionToken:     a.AuctionToken,
		PaymentToken:     a.PaymentToken,
		TotalTokens:      domain.BigString(a.TotalTokens),
		RemainingTokens:  domain.BigString(a.RemainingTokens),
		SoldTokens:       domain.BigString(a.SoldTokens),
		UnsoldTokens:     domain.BigString(a.UnsoldTokens),
		PaymentCollected: domain.BigString(a.PaymentCollected),
		StartTime:        a.StartTime,
		EndTime:          a.EndTime,
		StartPrice:       domain.BigString(a.StartPrice),
		EndPrice:         domain.BigString(a.EndPrice),
		DecayCurve:       a.DecayCurve,
		Kicker:           a.Kicker,
		KickerReward:     domain.BigString(a.KickerReward),
		IsFinalized:      a.IsFinalized,
		FinalizedAt:      a.FinalizedAt,
	}
}

func (v *View) WithPrice(price *big.Int) *View {
	v.CurrentPrice = domain.BigString(price)
	return v
}

// ParamsView is the json form of Parameters, also used as the request body of
// updates and for the defaults in config files
type ParamsView struct {
	DurationSeconds        int64  `json:"durationSeconds" mapstructure:"durationSeconds" validate:"required,gt=0"`
	StartPrice             string `json:"startPrice" mapstructure:"startPrice" validate:"required,positive_int"`
	EndPrice               string `json:"endPrice" mapstructure:"endPrice" validate:"required,positive_int"`
	KickerRewardPercentage string `json:"kickerRewardPercentage" mapstructure:"kickerRewardPercentage" validate:"required"`
	DecayCurve             string `json:"decayCurve" mapstructure:"decayCurve" validate:"required,oneof=linear exponential"`
}

func (p *Parameters) View() *ParamsView {
	return &ParamsView{
		DurationSeconds:        int64(p.Duration / time.Second),
		StartPrice:             domain.BigString(p.StartPrice),
		EndPrice:               domain.BigString(p.EndPrice),
		KickerRewardPercentage: p.KickerRewardPercentage.String(),
		DecayCurve:             string(p.DecayCurve),
	}
}

func (v *ParamsView) ToParameters() (*Parameters, error) {
	nums, err := domain.ToBigInt([]string{v.StartPrice, v.EndPrice})
	if err != nil {
		return nil, err
	}
	pct, err := domain.ParsePercentage(v.KickerRewardPercentage)
	if err != nil {
		return nil, err
	}
	curve, err := decay.ParseCurve(v.DecayCurve)
	if err != nil {
		return nil, ErrInvalidParameters
	}
	p := &Parameters{
		Duration:               time.Duration(v.DurationSeconds) * time.Second,
		StartPrice:             nums[0],
		EndPrice:               nums[1],
		KickerRewardPercentage: pct,
		DecayCurve:             curve,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
