package auction

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/goauction/base/decay"
	"github.com/x-xyz/goauction/domain"
)

var t0 = time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC)

func newTestAuction() *Auction {
	return NewAuction(Config{
		Id:          1,
		Key:         Key{Source: "0xArk", Asset: "0xReward"},
		TotalTokens: big.NewInt(100),
		StartTime:   t0,
		EndTime:     t0.Add(time.Hour),
		StartPrice:  big.NewInt(10),
		EndPrice:    big.NewInt(1),
		DecayCurve:  decay.Linear,
	})
}

func TestNewAuction(t *testing.T) {
	req := require.New(t)
	a := newTestAuction()
	req.Equal("100", a.RemainingTokens.String())
	req.Zero(a.SoldTokens.Sign())
	req.False(a.IsFinalized)
	req.True(a.IsActive())
	req.Equal(time.Hour, a.Duration())

	// remaining tokens must not alias the config
	a.RemainingTokens.SetInt64(1)
	req.Equal("100", a.TotalTokens.String())
}

func TestElapsed(t *testing.T) {
	req := require.New(t)
	a := newTestAuction()
	req.Equal(time.Duration(0), a.Elapsed(t0.Add(-time.Minute)))
	req.Equal(30*time.Minute, a.Elapsed(t0.Add(30*time.Minute)))
	req.Equal(time.Hour, a.Elapsed(t0.Add(3*time.Hour)))

	req.False(a.IsExpired(t0.Add(59 * time.Minute)))
	req.True(a.IsExpired(t0.Add(time.Hour)))
}

func TestClone(t *testing.T) {
	req := require.New(t)
	a := newTestAuction()
	at := t0
	a.FinalizedAt = &at

	c := a.Clone()
	c.RemainingTokens.SetInt64(0)
	c.TotalTokens.SetInt64(0)
	*c.FinalizedAt = t0.Add(time.Hour)

	req.Equal("100", a.RemainingTokens.String())
	req.Equal("100", a.TotalTokens.String())
	req.Equal(t0, *a.FinalizedAt)
	req.Nil((*Auction)(nil).Clone())
}

func TestKey(t *testing.T) {
	req := require.New(t)
	k := Key{Source: "0xArk", Asset: "0xReward"}
	req.True(k.Equals(Key{Source: "0xark", Asset: "0xREWARD"}))
	req.Equal(Key{Source: "0xark", Asset: "0xreward"}, k.ToLower())
	req.Equal("0xArk/0xReward", k.String())
	req.Equal("0xAsset", Key{Asset: "0xAsset"}.String())
}

func TestParametersValidate(t *testing.T) {
	req := require.New(t)
	valid := Parameters{
		Duration:               24 * time.Hour,
		StartPrice:             big.NewInt(100),
		EndPrice:               big.NewInt(1),
		KickerRewardPercentage: domain.MustParsePercentage("1"),
		DecayCurve:             decay.Exponential,
	}
	req.NoError(valid.Validate())

	cases := []func(p *Parameters){
		func(p *Parameters) { p.Duration = 0 },
		func(p *Parameters) { p.EndPrice = big.NewInt(101) },
		func(p *Parameters) { p.EndPrice = big.NewInt(0) },
		func(p *Parameters) { p.StartPrice = nil },
		func(p *Parameters) { p.KickerRewardPercentage = domain.NewPercentage(new(big.Int).Add(domain.Percentage100, big.NewInt(1))) },
		func(p *Parameters) { p.DecayCurve = "step" },
	}
	for i, mutate := range cases {
		p := valid.Clone()
		mutate(p)
		req.ErrorIs(p.Validate(), ErrInvalidParameters, "case %d", i)
	}
}

func TestEvents(t *testing.T) {
	req := require.New(t)
	a := newTestAuction()
	a.KickerReward = big.NewInt(5)

	created := NewAuctionCreatedEvent(a, "0xKicker", t0)
	req.Equal(EventAuctionCreated, created.Type)
	req.Equal(Id(1), created.AuctionId)
	req.Equal("100", created.TotalTokens.String())
	req.Equal("5", created.KickerCut.String())
	req.NotEmpty(created.EventId)

	bought := NewTokensPurchasedEvent(a, "0xBuyer", big.NewInt(3), big.NewInt(30), t0)
	req.Equal(EventTokensPurchased, bought.Type)
	req.Equal(domain.Address("0xBuyer"), bought.Account)
	req.Equal(a.PaymentToken.Address, bought.PaymentToken)
	req.NotEqual(created.EventId, bought.EventId)

	finalized := NewAuctionFinalizedEvent(a, big.NewInt(97), t0)
	req.Equal("97", finalized.UnsoldAmount.String())
}
