package usecase

import (
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/decay"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/auction/mocks"
	auctionRepository "github.com/x-xyz/goauction/stores/auction/repository"
	tokenRepository "github.com/x-xyz/goauction/stores/token/repository"
)

var (
	t0 = time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC)

	reward  = domain.Token{Address: "0xreward", Symbol: "RWD", Decimals: 18}
	usdc    = domain.Token{Address: "0xusdc", Symbol: "USDC", Decimals: 6}
	wbtc    = domain.Token{Address: "0xwbtc", Symbol: "WBTC", Decimals: 8}
	weth    = domain.Token{Address: "0xweth", Symbol: "WETH", Decimals: 18}
	key     = auction.Key{Source: "0xark", Asset: "0xreward"}
	holding = domain.Address("0xholding")
	sink    = domain.Address("0xsink")
	vault   = domain.Address("0xtreasury")
	kicker  = domain.Address("0xkicker")
	alice   = domain.Address("0xalice")
	bob     = domain.Address("0xbob")
)

var errBoom = errors.New("boom")

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

type sinkDestination struct {
	ledger domain.TokenLedger
}

func (d *sinkDestination) Accept(c ctx.Ctx, a *auction.Auction, from domain.Address, amount *big.Int) error {
	return d.ledger.Transfer(c, a.PaymentToken.Address, from, sink, amount)
}

type treasuryUnsold struct {
	ledger domain.TokenLedger
	calls  []*big.Int
	fail   error
}

func (h *treasuryUnsold) HandleUnsold(c ctx.Ctx, a *auction.Auction, from domain.Address, unsold *big.Int) error {
	if h.fail != nil {
		return h.fail
	}
	h.calls = append(h.calls, new(big.Int).Set(unsold))
	return h.ledger.Transfer(c, a.AuctionToken.Address, from, vault, unsold)
}

type failingDestination struct{}

func (failingDestination) Accept(c ctx.Ctx, a *auction.Auction, from domain.Address, amount *big.Int) error {
	return errBoom
}

// staleRepo serves a snapshot read before another engine changed the shared ledger
type staleRepo struct {
	auction.Repo
	snapshot *auction.Auction
}

func (r *staleRepo) Get(c ctx.Ctx, key auction.Key) (*auction.Auction, error) {
	return r.snapshot.Clone(), nil
}

type recorder struct {
	mu     sync.Mutex
	events []auction.Event
}

func (r *recorder) Emit(c ctx.Ctx, e auction.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []auction.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []auction.EventType{}
	for _, e := range r.events {
		res = append(res, e.Type)
	}
	return res
}

type engineSuite struct {
	suite.Suite
	ctx      ctx.Ctx
	now      time.Time
	ledger   domain.TokenLedger
	repo     auction.Repo
	unsold   *treasuryUnsold
	recorder *recorder
	im       auction.Usecase
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(engineSuite))
}

func (s *engineSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.now = t0
	s.ledger = tokenRepository.NewMemoryLedger()
	s.repo = auctionRepository.NewMemoryRepo()
	s.unsold = &treasuryUnsold{ledger: s.ledger}
	s.recorder = &recorder{}
	s.im = s.newEngine(s.recorder)
}

func (s *engineSuite) newEngine(emitter auction.EventEmitter) auction.Usecase {
	return New(&AuctionUseCaseCfg{
		Name:        "test",
		Repo:        s.repo,
		Ledger:      s.ledger,
		Holding:     holding,
		Destination: &sinkDestination{ledger: s.ledger},
		Unsold:      s.unsold,
		Emitter:     emitter,
		Clock:       func() time.Time { return s.now },
	})
}

func (s *engineSuite) balance(t domain.Token, account domain.Address) *big.Int {
	b, err := s.ledger.BalanceOf(s.ctx, t.Address, account)
	s.Require().NoError(err)
	return b
}

func (s *engineSuite) mint(t domain.Token, to domain.Address, amount *big.Int) {
	s.Require().NoError(s.ledger.Mint(s.ctx, t.Address, to, amount))
}

func params(start, end *big.Int, d time.Duration, pct string) auction.Parameters {
	return auction.Parameters{
		Duration:               d,
		StartPrice:             start,
		EndPrice:               end,
		KickerRewardPercentage: domain.MustParsePercentage(pct),
		DecayCurve:             decay.Linear,
	}
}

// start funds the holding account and starts a one hour auction paid in usdc
func (s *engineSuite) start(inventory *big.Int, pct string) *auction.Auction {
	s.mint(reward, holding, inventory)
	a, err := s.im.StartAuction(s.ctx, auction.StartAuctionParams{
		Key:          key,
		Kicker:       kicker,
		AuctionToken: reward,
		PaymentToken: usdc,
		Inventory:    inventory,
		Parameters:   params(big.NewInt(100e6), big.NewInt(10e6), time.Hour, pct),
	})
	s.Require().NoError(err)
	return a
}

func (s *engineSuite) TestStartAuction() {
	a := s.start(ether(1000), "1")

	s.Equal(auction.Id(1), a.Id)
	s.Equal(ether(990).String(), a.TotalTokens.String())
	s.Equal(ether(990).String(), a.RemainingTokens.String())
	s.Equal(ether(10).String(), a.KickerReward.String())
	s.Equal(t0.Add(time.Hour), a.EndTime)
	s.Equal(ether(10).String(), s.balance(reward, kicker).String())
	s.Equal(ether(990).String(), s.balance(reward, holding).String())
	s.Equal([]auction.EventType{auction.EventAuctionCreated}, s.recorder.types())
	s.Equal(kicker, s.recorder.events[0].Account)
	s.Equal(ether(10).String(), s.recorder.events[0].KickerCut.String())
}

func (s *engineSuite) TestStartAuctionWithCarryover() {
	s.mint(reward, holding, ether(150))
	a, err := s.im.StartAuction(s.ctx, auction.StartAuctionParams{
		Key:          key,
		Kicker:       kicker,
		AuctionToken: reward,
		PaymentToken: usdc,
		Inventory:    ether(100),
		Carryover:    ether(50),
		Parameters:   params(big.NewInt(100e6), big.NewInt(10e6), time.Hour, "10"),
	})
	s.NoError(err)
	// the reward only applies to fresh inventory
	s.Equal(ether(140).String(), a.TotalTokens.String())
	s.Equal(ether(10).String(), s.balance(reward, kicker).String())
}

func (s *engineSuite) TestStartAuctionInvalid() {
	s.mint(reward, holding, ether(10))
	base := auction.StartAuctionParams{
		Key:          key,
		Kicker:       kicker,
		AuctionToken: reward,
		PaymentToken: usdc,
		Inventory:    ether(10),
		Parameters:   params(big.NewInt(100e6), big.NewInt(10e6), time.Hour, "1"),
	}

	p := base
	p.Inventory = big.NewInt(0)
	_, err := s.im.StartAuction(s.ctx, p)
	s.ErrorIs(err, auction.ErrInvalidTokenAmount)

	p = base
	p.Inventory = big.NewInt(-1)
	_, err = s.im.StartAuction(s.ctx, p)
	s.ErrorIs(err, auction.ErrInvalidTokenAmount)

	p = base
	p.Parameters = params(big.NewInt(10e6), big.NewInt(100e6), time.Hour, "1")
	_, err = s.im.StartAuction(s.ctx, p)
	s.ErrorIs(err, auction.ErrInvalidParameters)

	p = base
	p.Parameters = params(big.NewInt(100e6), big.NewInt(10e6), time.Hour, "100")
	_, err = s.im.StartAuction(s.ctx, p)
	s.ErrorIs(err, auction.ErrInvalidTokenAmount)

	p = base
	p.Inventory = ether(11)
	_, err = s.im.StartAuction(s.ctx, p)
	s.ErrorIs(err, auction.ErrInsufficientBalance)

	// nothing moved
	s.Equal(ether(10).String(), s.balance(reward, holding).String())
	s.Zero(s.balance(reward, kicker).Sign())
	s.Empty(s.recorder.types())
}

func (s *engineSuite) TestNoDoubleStart() {
	s.start(ether(100), "0")

	s.mint(reward, holding, ether(100))
	_, err := s.im.StartAuction(s.ctx, auction.StartAuctionParams{
		Key:          auction.Key{Source: "0xARK", Asset: "0xREWARD"},
		Kicker:       kicker,
		AuctionToken: reward,
		PaymentToken: usdc,
		Inventory:    ether(100),
		Parameters:   params(big.NewInt(100e6), big.NewInt(10e6), time.Hour, "1"),
	})
	s.ErrorIs(err, auction.ErrAuctionAlreadyRunning)
	s.Zero(s.balance(reward, kicker).Sign())

	s.now = t0.Add(time.Hour)
	_, err = s.im.FinalizeAuction(s.ctx, key)
	s.NoError(err)

	a := s.start(ether(100), "0")
	s.Equal(auction.Id(2), a.Id)
}

func (s *engineSuite) TestPriceBoundsAndMonotonicity() {
	s.start(ether(100), "0")

	s.now = t0.Add(-time.Minute)
	p, err := s.im.GetCurrentPrice(s.ctx, key)
	s.NoError(err)
	s.Equal(big.NewInt(100e6).String(), p.String())

	prev := new(big.Int).Set(p)
	for m := 0; m <= 90; m += 5 {
		s.now = t0.Add(time.Duration(m) * time.Minute)
		p, err := s.im.GetCurrentPrice(s.ctx, key)
		s.NoError(err)
		s.True(p.Cmp(prev) <= 0, "price rose at minute %d", m)
		s.True(p.Cmp(big.NewInt(10e6)) >= 0)
		s.True(p.Cmp(big.NewInt(100e6)) <= 0)
		prev = p
	}
	s.Equal(big.NewInt(10e6).String(), prev.String())

	_, err = s.im.GetCurrentPrice(s.ctx, auction.Key{Asset: "0xnone"})
	s.ErrorIs(err, auction.ErrAuctionNotFound)
}

func (s *engineSuite) TestLinearWeekScenario() {
	s.mint(weth, holding, ether(1000))
	_, err := s.im.StartAuction(s.ctx, auction.StartAuctionParams{
		Key:          auction.Key{Asset: weth.Address},
		Kicker:       kicker,
		AuctionToken: weth,
		PaymentToken: weth,
		Inventory:    ether(1000),
		Parameters:   params(ether(100), big.NewInt(1e17), 7*24*time.Hour, "0"),
	})
	s.Require().NoError(err)

	s.now = t0.Add(84 * time.Hour)
	p, err := s.im.GetCurrentPrice(s.ctx, auction.Key{Asset: weth.Address})
	s.NoError(err)
	s.Equal("50050000000000000000", p.String())
}

func (s *engineSuite) TestBuyTokens() {
	s.start(ether(100), "0")
	s.mint(usdc, alice, big.NewInt(1000e6))

	// at 30 minutes the price is 55 usdc per token
	s.now = t0.Add(30 * time.Minute)
	quote, err := s.im.Quote(s.ctx, key, ether(2))
	s.NoError(err)
	s.Equal(big.NewInt(110e6).String(), quote.String())

	paid, err := s.im.BuyTokens(s.ctx, key, alice, ether(2))
	s.NoError(err)
	s.Equal(quote.String(), paid.String())
	s.Equal(ether(2).String(), s.balance(reward, alice).String())
	s.Equal(big.NewInt(890e6).String(), s.balance(usdc, alice).String())
	s.Equal(big.NewInt(110e6).String(), s.balance(usdc, sink).String())

	a, err := s.im.GetAuction(s.ctx, key)
	s.NoError(err)
	s.Equal(ether(98).String(), a.RemainingTokens.String())
	s.Equal(ether(2).String(), a.SoldTokens.String())
	s.Equal(big.NewInt(110e6).String(), a.PaymentCollected.String())
	s.Equal([]auction.EventType{auction.EventAuctionCreated, auction.EventTokensPurchased}, s.recorder.types())
}

func (s *engineSuite) TestBuyRejects() {
	s.start(ether(10), "0")
	s.mint(usdc, alice, big.NewInt(100e6))

	_, err := s.im.BuyTokens(s.ctx, key, alice, big.NewInt(0))
	s.ErrorIs(err, auction.ErrInvalidTokenAmount)

	_, err = s.im.BuyTokens(s.ctx, key, alice, ether(11))
	s.ErrorIs(err, auction.ErrInsufficientTokensAvailable)

	// 2 tokens at 100 usdc
	_, err = s.im.BuyTokens(s.ctx, key, alice, ether(2))
	s.ErrorIs(err, auction.ErrInsufficientBalance)

	_, err = s.im.BuyTokens(s.ctx, auction.Key{Asset: "0xnone"}, alice, ether(1))
	s.ErrorIs(err, auction.ErrAuctionNotFound)

	s.now = t0.Add(time.Hour)
	_, err = s.im.BuyTokens(s.ctx, key, alice, ether(1))
	s.ErrorIs(err, auction.ErrAuctionEnded)

	s.Equal(big.NewInt(100e6).String(), s.balance(usdc, alice).String())
	s.Zero(s.balance(reward, alice).Sign())
	s.Equal([]auction.EventType{auction.EventAuctionCreated}, s.recorder.types())
}

func (s *engineSuite) TestBuyAgainstStaleReadMovesNoFunds() {
	snapshot := s.start(ether(10), "0")
	s.mint(usdc, alice, big.NewInt(10000e6))
	s.mint(usdc, bob, big.NewInt(10000e6))

	// another engine on the same ledger buys everything first
	_, err := s.im.BuyTokens(s.ctx, key, bob, ether(10))
	s.Require().NoError(err)

	other := New(&AuctionUseCaseCfg{
		Name:        "replica",
		Repo:        &staleRepo{Repo: s.repo, snapshot: snapshot},
		Ledger:      s.ledger,
		Holding:     holding,
		Destination: &sinkDestination{ledger: s.ledger},
		Unsold:      s.unsold,
		Clock:       func() time.Time { return s.now },
	})
	_, err = other.BuyTokens(s.ctx, key, alice, ether(1))
	s.ErrorIs(err, auction.ErrAuctionAlreadyFinalized)
	s.Equal(big.NewInt(10000e6).String(), s.balance(usdc, alice).String())
	s.Zero(s.balance(reward, alice).Sign())
	s.Equal(ether(10).String(), s.balance(reward, bob).String())
}

func (s *engineSuite) TestFailedPaymentReleasesTokens() {
	s.start(ether(10), "0")
	s.mint(usdc, alice, big.NewInt(10000e6))
	s.im = New(&AuctionUseCaseCfg{
		Name:        "test",
		Repo:        s.repo,
		Ledger:      s.ledger,
		Holding:     holding,
		Destination: failingDestination{},
		Unsold:      s.unsold,
		Clock:       func() time.Time { return s.now },
	})

	_, err := s.im.BuyTokens(s.ctx, key, alice, ether(1))
	s.ErrorIs(err, errBoom)
	s.Zero(s.balance(reward, alice).Sign())
	s.Equal(ether(10).String(), s.balance(reward, holding).String())

	a, err := s.im.GetAuction(s.ctx, key)
	s.NoError(err)
	s.Equal(ether(10).String(), a.RemainingTokens.String())
	s.Zero(a.SoldTokens.Sign())
	s.Zero(a.PaymentCollected.Sign())
}

func (s *engineSuite) TestSelloutKeepsPurchaseWhenFinalizeFails() {
	s.start(ether(10), "0")
	s.mint(usdc, alice, big.NewInt(10000e6))
	s.unsold.fail = errBoom

	paid, err := s.im.BuyTokens(s.ctx, key, alice, ether(10))
	s.NoError(err)
	s.Equal(big.NewInt(1000e6).String(), paid.String())
	s.Equal(ether(10).String(), s.balance(reward, alice).String())

	a, err := s.im.GetAuction(s.ctx, key)
	s.NoError(err)
	s.False(a.IsFinalized)

	// an explicit finalize retries the terminal path
	s.unsold.fail = nil
	a, err = s.im.FinalizeAuction(s.ctx, key)
	s.NoError(err)
	s.True(a.IsFinalized)
}

func (s *engineSuite) TestAutoFinalize() {
	s.start(ether(10), "0")
	s.mint(usdc, alice, big.NewInt(10000e6))

	_, err := s.im.BuyTokens(s.ctx, key, alice, ether(4))
	s.NoError(err)
	_, err = s.im.BuyTokens(s.ctx, key, alice, ether(6))
	s.NoError(err)

	a, err := s.im.GetAuction(s.ctx, key)
	s.NoError(err)
	s.True(a.IsFinalized)
	s.Zero(a.UnsoldTokens.Sign())
	s.Equal(t0, *a.FinalizedAt)
	s.Len(s.unsold.calls, 1)
	s.Zero(s.unsold.calls[0].Sign())
	s.Equal([]auction.EventType{
		auction.EventAuctionCreated,
		auction.EventTokensPurchased,
		auction.EventTokensPurchased,
		auction.EventAuctionFinalized,
	}, s.recorder.types())

	_, err = s.im.BuyTokens(s.ctx, key, alice, ether(1))
	s.ErrorIs(err, auction.ErrAuctionAlreadyFinalized)
	_, err = s.im.FinalizeAuction(s.ctx, key)
	s.ErrorIs(err, auction.ErrAuctionAlreadyFinalized)
}

func (s *engineSuite) TestEarlyFinalize() {
	s.start(ether(10), "0")

	s.now = t0.Add(59 * time.Minute)
	_, err := s.im.FinalizeAuction(s.ctx, key)
	s.ErrorIs(err, auction.ErrAuctionNotEnded)

	s.now = t0.Add(time.Hour)
	a, err := s.im.FinalizeAuction(s.ctx, key)
	s.NoError(err)
	s.True(a.IsFinalized)
	s.Equal(ether(10).String(), a.UnsoldTokens.String())
	s.Equal(ether(10).String(), s.balance(reward, vault).String())

	_, err = s.im.FinalizeAuction(s.ctx, key)
	s.ErrorIs(err, auction.ErrAuctionAlreadyFinalized)

	// the latest auction keeps answering reads
	p, err := s.im.GetCurrentPrice(s.ctx, key)
	s.NoError(err)
	s.Equal(big.NewInt(10e6).String(), p.String())
}

func (s *engineSuite) TestConservation() {
	s.start(ether(1000), "2.5")
	s.mint(usdc, alice, big.NewInt(1e12))
	s.mint(usdc, bob, big.NewInt(1e12))

	s.now = t0.Add(10 * time.Minute)
	_, err := s.im.BuyTokens(s.ctx, key, alice, big.NewInt(123456789))
	s.NoError(err)
	s.now = t0.Add(20 * time.Minute)
	_, err = s.im.BuyTokens(s.ctx, key, bob, ether(300))
	s.NoError(err)

	s.now = t0.Add(2 * time.Hour)
	a, err := s.im.FinalizeAuction(s.ctx, key)
	s.NoError(err)

	sold := new(big.Int).Add(s.balance(reward, alice), s.balance(reward, bob))
	s.Equal(sold.String(), a.SoldTokens.String())
	s.Equal(a.TotalTokens.String(), new(big.Int).Add(a.SoldTokens, a.UnsoldTokens).String())
	s.Zero(s.balance(reward, holding).Sign())

	all := new(big.Int).Add(sold, s.balance(reward, vault))
	all.Add(all, s.balance(reward, kicker))
	s.Equal(ether(1000).String(), all.String())
	s.Equal(a.PaymentCollected.String(), s.balance(usdc, sink).String())
}

func (s *engineSuite) TestDecimalFidelity() {
	cases := []struct {
		pay  domain.Token
		dust string
	}{
		{usdc, "1"},
		{wbtc, "1"},
		{weth, "2"},
	}
	for i, tc := range cases {
		s.SetupTest()
		pay := tc.pay
		unit := pay.Unit()
		k := auction.Key{Asset: reward.Address}

		s.mint(reward, holding, ether(10))
		_, err := s.im.StartAuction(s.ctx, auction.StartAuctionParams{
			Key:          k,
			Kicker:       kicker,
			AuctionToken: reward,
			PaymentToken: pay,
			Inventory:    ether(10),
			Parameters:   params(new(big.Int).Mul(big.NewInt(2), unit), unit, time.Hour, "0"),
		})
		s.Require().NoError(err, "case %d", i)
		s.mint(pay, alice, new(big.Int).Mul(big.NewInt(100), unit))

		// 1.5 tokens at 2 per token
		paid, err := s.im.BuyTokens(s.ctx, k, alice, big.NewInt(15e17))
		s.NoError(err, "case %d", i)
		s.Equal(new(big.Int).Mul(big.NewInt(3), unit).String(), paid.String(), "case %d", i)

		// payment rounds up, the smallest quantity is never free
		paid, err = s.im.BuyTokens(s.ctx, k, alice, big.NewInt(1))
		s.NoError(err, "case %d", i)
		s.Equal(tc.dust, paid.String(), "case %d", i)
	}
}

func (s *engineSuite) TestConcurrentBuys() {
	s.start(ether(20), "0")
	buyers := 50
	for i := 0; i < buyers; i++ {
		s.mint(usdc, domain.Address(big.NewInt(int64(i)).String()), big.NewInt(1000e6))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.im.BuyTokens(s.ctx, key, domain.Address(big.NewInt(int64(i)).String()), ether(1))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			if err != auction.ErrInsufficientTokensAvailable && err != auction.ErrAuctionAlreadyFinalized {
				s.Fail("unexpected error", err.Error())
			}
		}(i)
	}
	wg.Wait()

	s.Equal(20, succeeded)
	a, err := s.im.GetAuction(s.ctx, key)
	s.NoError(err)
	s.True(a.IsFinalized)
	s.Equal(ether(20).String(), a.SoldTokens.String())
}

func (s *engineSuite) TestListAuctions() {
	s.start(ether(10), "0")
	s.now = t0.Add(time.Hour)
	_, err := s.im.FinalizeAuction(s.ctx, key)
	s.NoError(err)
	s.start(ether(10), "0")

	res, count, err := s.im.ListAuctions(s.ctx, auction.WithFinalized(true))
	s.NoError(err)
	s.Equal(1, count)
	s.Len(res, 1)

	res, count, err = s.im.ListAuctions(s.ctx, auction.WithKey(key), auction.WithPagination(0, 1))
	s.NoError(err)
	s.Equal(2, count)
	s.Len(res, 1)

	a, err := s.im.GetAuctionById(s.ctx, 2)
	s.NoError(err)
	s.False(a.IsFinalized)
}

func (s *engineSuite) TestEmitsOncePerTransition() {
	emitter := mocks.NewEventEmitter(s.T())
	s.im = s.newEngine(emitter)
	ofType := func(t auction.EventType) interface{} {
		return mock.MatchedBy(func(e auction.Event) bool { return e.Type == t })
	}
	emitter.On("Emit", mock.Anything, ofType(auction.EventAuctionCreated)).Once()
	emitter.On("Emit", mock.Anything, ofType(auction.EventTokensPurchased)).Once()
	emitter.On("Emit", mock.Anything, ofType(auction.EventAuctionFinalized)).Once()

	s.start(ether(1), "0")
	s.mint(usdc, alice, big.NewInt(1000e6))
	_, err := s.im.BuyTokens(s.ctx, key, alice, ether(1))
	s.NoError(err)
}
