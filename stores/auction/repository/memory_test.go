package repository

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/decay"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
)

var (
	t0      = time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC)
	keyArk  = auction.Key{Source: "0xArk", Asset: "0xReward"}
	keyBurn = auction.Key{Asset: "0xFee"}
)

func newConfig(key auction.Key, total int64) auction.Config {
	return auction.Config{
		Key:          key,
		TotalTokens:  big.NewInt(total),
		StartTime:    t0,
		EndTime:      t0.Add(time.Hour),
		StartPrice:   big.NewInt(100),
		EndPrice:     big.NewInt(10),
		DecayCurve:   decay.Linear,
		KickerReward: big.NewInt(0),
	}
}

type repoSuite struct {
	suite.Suite
	ctx  ctx.Ctx
	repo auction.Repo
}

func TestMemoryRepoSuite(t *testing.T) {
	suite.Run(t, new(repoSuite))
}

func (s *repoSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.repo = NewMemoryRepo()
}

func (s *repoSuite) TestCreate() {
	a, err := s.repo.Create(s.ctx, newConfig(keyArk, 100))
	s.NoError(err)
	s.Equal(auction.Id(1), a.Id)
	s.Equal(keyArk.ToLower(), a.Key)
	s.Equal("100", a.RemainingTokens.String())

	_, err = s.repo.Create(s.ctx, newConfig(auction.Key{Source: "0xARK", Asset: "0xreward"}, 5))
	s.ErrorIs(err, auction.ErrAuctionAlreadyRunning)

	b, err := s.repo.Create(s.ctx, newConfig(keyBurn, 5))
	s.NoError(err)
	s.Equal(auction.Id(2), b.Id)
}

func (s *repoSuite) TestCreateAfterFinalize() {
	a, err := s.repo.Create(s.ctx, newConfig(keyArk, 100))
	s.NoError(err)
	_, err = s.repo.MarkFinalized(s.ctx, keyArk, big.NewInt(100), t0.Add(time.Hour))
	s.NoError(err)

	b, err := s.repo.Create(s.ctx, newConfig(keyArk, 50))
	s.NoError(err)
	s.Equal(a.Id+1, b.Id)

	got, err := s.repo.Get(s.ctx, keyArk)
	s.NoError(err)
	s.Equal(b.Id, got.Id)

	old, err := s.repo.FindOne(s.ctx, a.Id)
	s.NoError(err)
	s.True(old.IsFinalized)
}

func (s *repoSuite) TestNotFound() {
	_, err := s.repo.Get(s.ctx, keyArk)
	s.ErrorIs(err, auction.ErrAuctionNotFound)
	_, err = s.repo.FindOne(s.ctx, 7)
	s.ErrorIs(err, auction.ErrAuctionNotFound)
	_, err = s.repo.DecrementRemaining(s.ctx, keyArk, big.NewInt(1), big.NewInt(1))
	s.ErrorIs(err, auction.ErrAuctionNotFound)
	_, err = s.repo.MarkFinalized(s.ctx, keyArk, big.NewInt(0), t0)
	s.ErrorIs(err, auction.ErrAuctionNotFound)
}

func (s *repoSuite) TestDecrementRemaining() {
	_, err := s.repo.Create(s.ctx, newConfig(keyArk, 100))
	s.NoError(err)

	a, err := s.repo.DecrementRemaining(s.ctx, keyArk, big.NewInt(40), big.NewInt(4000))
	s.NoError(err)
	s.Equal("60", a.RemainingTokens.String())
	s.Equal("40", a.SoldTokens.String())
	s.Equal("4000", a.PaymentCollected.String())

	_, err = s.repo.DecrementRemaining(s.ctx, keyArk, big.NewInt(61), big.NewInt(1))
	s.ErrorIs(err, auction.ErrInsufficientTokensAvailable)

	_, err = s.repo.DecrementRemaining(s.ctx, keyArk, big.NewInt(0), big.NewInt(0))
	s.ErrorIs(err, auction.ErrInvalidTokenAmount)

	// a failed call leaves the record untouched
	got, err := s.repo.Get(s.ctx, keyArk)
	s.NoError(err)
	s.Equal("60", got.RemainingTokens.String())
}

func (s *repoSuite) TestRestoreRemaining() {
	_, err := s.repo.Create(s.ctx, newConfig(keyArk, 100))
	s.NoError(err)
	_, err = s.repo.DecrementRemaining(s.ctx, keyArk, big.NewInt(40), big.NewInt(4000))
	s.NoError(err)

	a, err := s.repo.RestoreRemaining(s.ctx, keyArk, big.NewInt(40), big.NewInt(4000))
	s.NoError(err)
	s.Equal("100", a.RemainingTokens.String())
	s.Equal("0", a.SoldTokens.String())
	s.Equal("0", a.PaymentCollected.String())

	_, err = s.repo.RestoreRemaining(s.ctx, keyArk, big.NewInt(1), big.NewInt(0))
	s.ErrorIs(err, auction.ErrInvalidTokenAmount)

	_, err = s.repo.MarkFinalized(s.ctx, keyArk, big.NewInt(100), t0.Add(2*time.Hour))
	s.NoError(err)
	_, err = s.repo.RestoreRemaining(s.ctx, keyArk, big.NewInt(1), big.NewInt(0))
	s.ErrorIs(err, auction.ErrAuctionAlreadyFinalized)
}

func (s *repoSuite) TestMarkFinalized() {
	_, err := s.repo.Create(s.ctx, newConfig(keyArk, 100))
	s.NoError(err)
	_, err = s.repo.DecrementRemaining(s.ctx, keyArk, big.NewInt(30), big.NewInt(3000))
	s.NoError(err)

	at := t0.Add(2 * time.Hour)
	a, err := s.repo.MarkFinalized(s.ctx, keyArk, big.NewInt(70), at)
	s.NoError(err)
	s.True(a.IsFinalized)
	s.Equal("70", a.UnsoldTokens.String())
	s.Zero(a.RemainingTokens.Sign())
	s.Equal(at, *a.FinalizedAt)

	total := new(big.Int).Add(a.RemainingTokens, a.SoldTokens)
	total.Add(total, a.UnsoldTokens)
	s.Equal(a.TotalTokens.String(), total.String())

	_, err = s.repo.MarkFinalized(s.ctx, keyArk, big.NewInt(0), at)
	s.ErrorIs(err, auction.ErrAuctionAlreadyFinalized)
	_, err = s.repo.DecrementRemaining(s.ctx, keyArk, big.NewInt(1), big.NewInt(1))
	s.ErrorIs(err, auction.ErrAuctionAlreadyFinalized)
}

func (s *repoSuite) TestRecordsAreDetached() {
	a, err := s.repo.Create(s.ctx, newConfig(keyArk, 100))
	s.NoError(err)
	a.RemainingTokens.SetInt64(0)

	got, err := s.repo.Get(s.ctx, keyArk)
	s.NoError(err)
	s.Equal("100", got.RemainingTokens.String())
}

func (s *repoSuite) TestFindAll() {
	for _, k := range []auction.Key{keyArk, keyBurn} {
		_, err := s.repo.Create(s.ctx, newConfig(k, 10))
		s.NoError(err)
	}
	_, err := s.repo.MarkFinalized(s.ctx, keyArk, big.NewInt(10), t0)
	s.NoError(err)
	_, err = s.repo.Create(s.ctx, newConfig(keyArk, 20))
	s.NoError(err)

	cases := []struct {
		name string
		opts []auction.FindAllOptions
		ids  []auction.Id
	}{
		{"all", nil, []auction.Id{1, 2, 3}},
		{"by key", []auction.FindAllOptions{auction.WithKey(keyArk)}, []auction.Id{1, 3}},
		{"by source", []auction.FindAllOptions{auction.WithSource("0xARK")}, []auction.Id{1, 3}},
		{"by asset", []auction.FindAllOptions{auction.WithAsset("0xfee")}, []auction.Id{2}},
		{"running", []auction.FindAllOptions{auction.WithFinalized(false)}, []auction.Id{2, 3}},
		{"desc", []auction.FindAllOptions{auction.WithSort(SortById, domain.SortDirDesc)}, []auction.Id{3, 2, 1}},
		{"page", []auction.FindAllOptions{auction.WithPagination(1, 1)}, []auction.Id{2}},
		{"past end", []auction.FindAllOptions{auction.WithPagination(5, 1)}, []auction.Id{}},
	}
	for _, c := range cases {
		res, err := s.repo.FindAll(s.ctx, c.opts...)
		s.NoError(err, c.name)
		ids := []auction.Id{}
		for _, a := range res {
			ids = append(ids, a.Id)
		}
		s.Equal(c.ids, ids, c.name)
	}

	n, err := s.repo.Count(s.ctx, auction.WithKey(keyArk))
	s.NoError(err)
	s.Equal(2, n)

	_, err = s.repo.FindAll(s.ctx, auction.WithSort("price", domain.SortDirAsc))
	s.ErrorIs(err, domain.ErrBadParamInput)
	_, err = s.repo.FindAll(s.ctx, auction.WithPagination(-1, 0))
	s.ErrorIs(err, domain.ErrBadParamInput)
}
