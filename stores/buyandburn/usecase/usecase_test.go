package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/decay"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/auction/mocks"
	"github.com/x-xyz/goauction/domain/buyandburn"
	domainMocks "github.com/x-xyz/goauction/domain/mocks"
	auctionRepository "github.com/x-xyz/goauction/stores/auction/repository"
	auctionUsecase "github.com/x-xyz/goauction/stores/auction/usecase"
	tokenRepository "github.com/x-xyz/goauction/stores/token/repository"
)

var (
	t0         = time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC)
	fee        = domain.Token{Address: "0xfee", Symbol: "FEE", Decimals: 8}
	governance = domain.Token{Address: "0xgov", Symbol: "GOV", Decimals: 18}
	treasury   = domain.Address("0xtreasury")
	holding    = domain.Address("0xholding")
	kicker     = domain.Address("0xkicker")
	alice      = domain.Address("0xalice")

	defaults = auction.Parameters{
		Duration:               24 * time.Hour,
		StartPrice:             new(big.Int).Mul(big.NewInt(10), big.NewInt(1e18)),
		EndPrice:               big.NewInt(1e18),
		KickerRewardPercentage: domain.MustParsePercentage("0.5"),
		DecayCurve:             decay.Exponential,
	}
)

type buyAndBurnSuite struct {
	suite.Suite
	ctx    ctx.Ctx
	now    time.Time
	ledger domain.TokenLedger
	engine auction.Usecase
	im     buyandburn.Usecase
}

func TestBuyAndBurnSuite(t *testing.T) {
	suite.Run(t, new(buyAndBurnSuite))
}

func (s *buyAndBurnSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.now = t0
	s.ledger = tokenRepository.NewMemoryLedger()
	s.engine = auctionUsecase.New(&auctionUsecase.AuctionUseCaseCfg{
		Name:        "buyandburn",
		Repo:        auctionRepository.NewMemoryRepo(),
		Ledger:      s.ledger,
		Holding:     holding,
		Destination: NewBurnDestination(s.ledger),
		Unsold:      NewTreasuryUnsold(s.ledger, treasury),
		Clock:       func() time.Time { return s.now },
	})
	s.im = s.newUsecase(tokenRepository.NewAccountInventory(s.ledger, treasury))
}

func (s *buyAndBurnSuite) newUsecase(inventory domain.InventorySource) buyandburn.Usecase {
	return New(&BuyAndBurnUseCaseCfg{
		Engine:          s.engine,
		Inventory:       inventory,
		Params:          auctionRepository.NewMemoryParamsRepo(),
		Defaults:        defaults,
		GovernanceToken: governance,
		Assets:          domain.Tokens{fee},
	})
}

func (s *buyAndBurnSuite) balance(t domain.Token, account domain.Address) string {
	b, err := s.ledger.BalanceOf(s.ctx, t.Address, account)
	s.Require().NoError(err)
	return b.String()
}

func (s *buyAndBurnSuite) TestStartAuction() {
	s.Require().NoError(s.ledger.Mint(s.ctx, fee.Address, treasury, big.NewInt(1000e8)))

	a, err := s.im.StartAuction(s.ctx, kicker, "0xFEE")
	s.NoError(err)
	s.Equal(buyandburn.KeyOf(fee.Address), a.Key)
	s.True(a.Key.Source.IsEmpty())
	s.Equal(governance, a.PaymentToken)
	s.Equal(big.NewInt(995e8).String(), a.TotalTokens.String())
	s.Equal(big.NewInt(5e8).String(), s.balance(fee, kicker))
	s.Equal("0", s.balance(fee, treasury))

	_, err = s.im.StartAuction(s.ctx, kicker, fee.Address)
	s.ErrorIs(err, auction.ErrAuctionAlreadyRunning)

	_, err = s.im.StartAuction(s.ctx, kicker, "0xother")
	s.ErrorIs(err, domain.ErrUnknownToken)
}

func (s *buyAndBurnSuite) TestEmptyTreasury() {
	_, err := s.im.StartAuction(s.ctx, kicker, fee.Address)
	s.ErrorIs(err, auction.ErrInvalidTokenAmount)
}

func (s *buyAndBurnSuite) TestPaymentIsBurnt() {
	s.Require().NoError(s.ledger.Mint(s.ctx, fee.Address, treasury, big.NewInt(1000e8)))
	_, err := s.im.StartAuction(s.ctx, kicker, fee.Address)
	s.Require().NoError(err)
	s.Require().NoError(s.ledger.Mint(s.ctx, governance.Address, alice, new(big.Int).Mul(big.NewInt(100), big.NewInt(1e18))))

	quote, err := s.im.Quote(s.ctx, fee.Address, big.NewInt(2e8))
	s.NoError(err)
	s.Equal(new(big.Int).Mul(big.NewInt(20), big.NewInt(1e18)).String(), quote.String())

	paid, err := s.im.BuyTokens(s.ctx, fee.Address, alice, big.NewInt(2e8))
	s.NoError(err)
	s.Equal(quote.String(), paid.String())
	s.Equal(new(big.Int).Mul(big.NewInt(80), big.NewInt(1e18)).String(), s.balance(governance, alice))
	s.Equal("0", s.balance(governance, holding))
	s.Equal(big.NewInt(2e8).String(), s.balance(fee, alice))
}

func (s *buyAndBurnSuite) TestUnsoldReturnsToTreasury() {
	s.Require().NoError(s.ledger.Mint(s.ctx, fee.Address, treasury, big.NewInt(1000e8)))
	_, err := s.im.StartAuction(s.ctx, kicker, fee.Address)
	s.Require().NoError(err)

	_, err = s.im.FinalizeAuction(s.ctx, fee.Address)
	s.ErrorIs(err, auction.ErrAuctionNotEnded)

	s.now = t0.Add(24 * time.Hour)
	a, err := s.im.FinalizeAuction(s.ctx, fee.Address)
	s.NoError(err)
	s.True(a.IsFinalized)
	s.Equal(big.NewInt(995e8).String(), s.balance(fee, treasury))
	s.Equal("0", s.balance(fee, holding))

	p, err := s.im.GetCurrentPrice(s.ctx, fee.Address)
	s.NoError(err)
	s.Equal(defaults.EndPrice.String(), p.String())
}

func (s *buyAndBurnSuite) TestParameters() {
	p, err := s.im.GetAuctionParameters(s.ctx, fee.Address)
	s.NoError(err)
	s.Equal(decay.Exponential, p.DecayCurve)

	custom := defaults.Clone()
	custom.DecayCurve = decay.Linear
	s.NoError(s.im.SetAuctionParameters(s.ctx, fee.Address, custom))

	p, err = s.im.GetAuctionParameters(s.ctx, "0xFEE")
	s.NoError(err)
	s.Equal(decay.Linear, p.DecayCurve)
}

func (s *buyAndBurnSuite) TestTransferOutFailure() {
	inventory := domainMocks.NewInventorySource(s.T())
	inventory.On("AvailableBalance", mock.Anything, fee.Address).Return(big.NewInt(10), nil).Once()
	inventory.On("TransferOut", mock.Anything, fee.Address, big.NewInt(10), holding).Return(errors.New("paused")).Once()

	_, err := s.newUsecase(inventory).StartAuction(s.ctx, kicker, fee.Address)
	s.EqualError(err, "paused")

	_, err = s.im.GetAuction(s.ctx, fee.Address)
	s.ErrorIs(err, auction.ErrAuctionNotFound)
}

func (s *buyAndBurnSuite) TestKickerRewardTakesEverything() {
	s.Require().NoError(s.ledger.Mint(s.ctx, fee.Address, treasury, big.NewInt(1000e8)))
	greedy := defaults.Clone()
	greedy.KickerRewardPercentage = domain.MustParsePercentage("100")
	s.Require().NoError(s.im.SetAuctionParameters(s.ctx, fee.Address, greedy))

	_, err := s.im.StartAuction(s.ctx, kicker, fee.Address)
	s.ErrorIs(err, auction.ErrInvalidTokenAmount)
	s.Equal(big.NewInt(1000e8).String(), s.balance(fee, treasury))
	s.Equal("0", s.balance(fee, holding))
	s.Equal("0", s.balance(fee, kicker))
}

func (s *buyAndBurnSuite) TestUnsupportedDecimals() {
	s.Require().NoError(s.ledger.Mint(s.ctx, fee.Address, treasury, big.NewInt(1000e8)))
	wide := domain.Token{Address: fee.Address, Symbol: "FEE", Decimals: decay.MaxDecimals + 1}
	im := New(&BuyAndBurnUseCaseCfg{
		Engine:          s.engine,
		Inventory:       tokenRepository.NewAccountInventory(s.ledger, treasury),
		Params:          auctionRepository.NewMemoryParamsRepo(),
		Defaults:        defaults,
		GovernanceToken: governance,
		Assets:          domain.Tokens{wide},
	})

	_, err := im.StartAuction(s.ctx, kicker, fee.Address)
	s.ErrorIs(err, decay.ErrUnsupportedDecimals)
	s.Equal(big.NewInt(1000e8).String(), s.balance(fee, treasury))
}

func (s *buyAndBurnSuite) TestFailedStartReturnsInventory() {
	s.Require().NoError(s.ledger.Mint(s.ctx, fee.Address, treasury, big.NewInt(1000e8)))
	engine := mocks.NewUsecase(s.T())
	engine.On("GetAuction", mock.Anything, buyandburn.KeyOf(fee.Address)).Return(nil, auction.ErrAuctionNotFound).Once()
	engine.On("Holding").Return(holding)
	engine.On("StartAuction", mock.Anything, mock.Anything).Return(nil, auction.ErrAuctionAlreadyRunning).Once()
	im := New(&BuyAndBurnUseCaseCfg{
		Engine:          engine,
		Inventory:       tokenRepository.NewAccountInventory(s.ledger, treasury),
		Params:          auctionRepository.NewMemoryParamsRepo(),
		Defaults:        defaults,
		GovernanceToken: governance,
		Assets:          domain.Tokens{fee},
	})

	_, err := im.StartAuction(s.ctx, kicker, fee.Address)
	s.ErrorIs(err, auction.ErrAuctionAlreadyRunning)
	s.Equal(big.NewInt(1000e8).String(), s.balance(fee, treasury))
	s.Equal("0", s.balance(fee, holding))
}
