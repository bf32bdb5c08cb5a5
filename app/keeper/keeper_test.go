package main

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	bbMocks "github.com/x-xyz/goauction/domain/buyandburn/mocks"
	harvestMocks "github.com/x-xyz/goauction/domain/harvest/mocks"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/redis"
	redisMocks "github.com/x-xyz/goauction/service/redis/mocks"
)

const (
	kicker = domain.Address("0x00000000000000000000000000000000000000aa")
	asset  = domain.Address("0x00000000000000000000000000000000000000bb")
	ark    = domain.Address("0x00000000000000000000000000000000000000cc")
	reward = domain.Address("0x00000000000000000000000000000000000000dd")
)

var t0 = time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC)

type keeperSuite struct {
	suite.Suite
	ctx     ctx.Ctx
	now     time.Time
	burn    *bbMocks.Usecase
	harvest *harvestMocks.Usecase
}

func (s *keeperSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.now = t0
	s.burn = bbMocks.NewUsecase(s.T())
	s.harvest = harvestMocks.NewUsecase(s.T())
}

func (s *keeperSuite) newKeeper(cfg keeperCfg) *keeper {
	cfg.Kicker = kicker
	cfg.BuyAndBurn = s.burn
	cfg.Harvest = s.harvest
	cfg.Clock = func() time.Time { return s.now }
	return newKeeper(&cfg)
}

func running(key auction.Key) *auction.Auction {
	return auction.NewAuction(auction.Config{
		Id:          1,
		Key:         key,
		TotalTokens: big.NewInt(100),
		StartTime:   t0,
		EndTime:     t0.Add(time.Hour),
		StartPrice:  big.NewInt(10),
		EndPrice:    big.NewInt(1),
	})
}

func (s *keeperSuite) TestStartsWhenNoAuction() {
	k := s.newKeeper(keeperCfg{Assets: []domain.Address{asset}})
	s.burn.On("GetAuction", mock.Anything, asset).Return(nil, auction.ErrAuctionNotFound).Once()
	s.burn.On("StartAuction", mock.Anything, kicker, asset).Return(running(auction.Key{Asset: asset}), nil).Once()

	s.Equal(0, k.tick(s.ctx))
}

func (s *keeperSuite) TestLeavesRunningAuction() {
	k := s.newKeeper(keeperCfg{Assets: []domain.Address{asset}})
	s.now = t0.Add(30 * time.Minute)
	s.burn.On("GetAuction", mock.Anything, asset).Return(running(auction.Key{Asset: asset}), nil).Once()

	s.Equal(0, k.tick(s.ctx))
}

func (s *keeperSuite) TestFinalizesExpiredAndRestarts() {
	key := auction.Key{Source: ark, Asset: reward}
	k := s.newKeeper(keeperCfg{Targets: []HarvestTarget{{Source: ark, Asset: reward}}})
	s.now = t0.Add(2 * time.Hour)
	s.harvest.On("GetAuction", mock.Anything, key).Return(running(key), nil).Once()
	s.harvest.On("FinalizeAuction", mock.Anything, key).Return(running(key), nil).Once()
	s.harvest.On("HarvestAndStartAuction", mock.Anything, kicker, ark, reward).Return(running(key), nil).Once()

	s.Equal(0, k.tick(s.ctx))
}

func (s *keeperSuite) TestNothingToSellIsNotAFailure() {
	key := auction.Key{Source: ark, Asset: reward}
	k := s.newKeeper(keeperCfg{
		Assets:  []domain.Address{asset},
		Targets: []HarvestTarget{{Source: ark, Asset: reward}},
	})
	s.burn.On("GetAuction", mock.Anything, asset).Return(nil, auction.ErrAuctionNotFound).Once()
	s.burn.On("StartAuction", mock.Anything, kicker, asset).Return(nil, auction.ErrInvalidTokenAmount).Once()
	s.harvest.On("GetAuction", mock.Anything, key).Return(nil, auction.ErrAuctionNotFound).Once()
	s.harvest.On("HarvestAndStartAuction", mock.Anything, kicker, ark, reward).Return(nil, auction.ErrInvalidTokenAmount).Once()

	s.Equal(0, k.tick(s.ctx))
}

func (s *keeperSuite) TestCountsFailures() {
	k := s.newKeeper(keeperCfg{Assets: []domain.Address{asset}})
	s.burn.On("GetAuction", mock.Anything, asset).Return(nil, errors.New("mongo down")).Once()

	s.Equal(1, k.tick(s.ctx))
}

func (s *keeperSuite) TestSkipsTickHeldByAnotherKeeper() {
	lock := redisMocks.NewService(s.T())
	k := s.newKeeper(keeperCfg{Assets: []domain.Address{asset}, Lock: lock, LockTtl: time.Minute})
	lock.On("SetNX", mock.Anything, keys.RedisKey(keys.PfxKeeperLock, "tick"), []byte(kicker), time.Minute).Return(redis.ErrNotSet).Once()

	s.Equal(0, k.tick(s.ctx))
}

func TestKeeperSuite(t *testing.T) {
	suite.Run(t, new(keeperSuite))
}
