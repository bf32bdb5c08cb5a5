// Package bootstrap wires the settlement engines, their flows and storage
// from the viper configuration shared by the api and the keeper.
package bootstrap

import (
	"time"

	"github.com/spf13/viper"
	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/base/database/redisclient"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/auction"
	"github.com/x-xyz/goauction/domain/buyandburn"
	"github.com/x-xyz/goauction/domain/harvest"
	"github.com/x-xyz/goauction/domain/healthcheck"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/cache"
	"github.com/x-xyz/goauction/service/cache/provider"
	"github.com/x-xyz/goauction/service/cache/provider/compound"
	"github.com/x-xyz/goauction/service/cache/provider/primitive"
	redisProvider "github.com/x-xyz/goauction/service/cache/provider/redis"
	"github.com/x-xyz/goauction/service/query"
	"github.com/x-xyz/goauction/service/redis"
	auctionRepository "github.com/x-xyz/goauction/stores/auction/repository"
	auctionUsecase "github.com/x-xyz/goauction/stores/auction/usecase"
	buyAndBurnUsecase "github.com/x-xyz/goauction/stores/buyandburn/usecase"
	harvestRepository "github.com/x-xyz/goauction/stores/harvest/repository"
	harvestUsecase "github.com/x-xyz/goauction/stores/harvest/usecase"
	hcRepository "github.com/x-xyz/goauction/stores/healthcheck/repository"
	tokenRepository "github.com/x-xyz/goauction/stores/token/repository"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Services struct {
	Ledger domain.TokenLedger
	Events auction.EventRepo
	// Reader serves the flow independent reads, every engine shares the same auction ledger
	Reader     auction.Usecase
	BuyAndBurn buyandburn.Usecase
	Harvest    harvest.Usecase
	Probes     []healthcheck.Probe
	// Redis is nil on memory storage
	Redis redis.Service

	pool *goroutines.Pool
}

func (s *Services) Close() {
	if s.pool != nil {
		s.pool.Release()
	}
}

type storage struct {
	auctions   auction.Repo
	params     auction.ParamsRepo
	events     auction.EventRepo
	carryovers harvest.CarryoverRepo
	ledger     domain.TokenLedger
	probes     []healthcheck.Probe
	redis      redis.Service
}

func mongoStorage(c ctx.Ctx, v *viper.Viper) (*storage, error) {
	c.Info("init mongo")
	client, err := mongoclient.ConnectMongoClient(
		v.GetString("mongo.uri"),
		v.GetString("mongo.authDBName"),
		v.GetString("mongo.dbName"),
		v.GetBool("mongo.enableSSL"),
		true,
		2,
	)
	if err != nil {
		return nil, err
	}
	q := query.New(client, v.GetBool("mongo.checkIndex"))

	for _, ensure := range []func(ctx.Ctx, query.Mongo) error{
		auctionRepository.EnsureAuctionIndexes,
		auctionRepository.EnsureEventIndexes,
		harvestRepository.EnsureCarryoverIndexes,
		tokenRepository.EnsureBalanceIndexes,
	} {
		if err := ensure(c, q); err != nil {
			c.WithField("err", err).Error("ensure indexes failed")
			return nil, err
		}
	}

	c.Info("init redis cache")
	name := v.GetString("redis_cache.name")
	pool, err := redisclient.ConnectRedis(v.GetString("redis_cache.uri"), v.GetString("redis_cache.password"), redisclient.RedisParam{
		PoolMultiplier: v.GetFloat64("redis_cache.poolMultiplier"),
		Retry:          true,
	})
	if err != nil {
		return nil, err
	}
	redisCache := redis.New(name, metrics.New(name), &redis.Pools{Src: pool})

	return &storage{
		auctions:   auctionRepository.NewAuctionRepo(q),
		params:     auctionRepository.NewParamsRepo(q),
		events:     auctionRepository.NewEventRepo(q),
		carryovers: harvestRepository.NewCarryoverRepo(q),
		ledger:     tokenRepository.NewMongoLedger(q),
		probes:     []healthcheck.Probe{hcRepository.NewMongoProbe(client), hcRepository.NewRedisProbe(redisCache)},
		redis:      redisCache,
	}, nil
}

func memoryStorage() *storage {
	return &storage{
		auctions:   auctionRepository.NewMemoryRepo(),
		params:     auctionRepository.NewMemoryParamsRepo(),
		events:     auctionRepository.NewMemoryEventRepo(),
		carryovers: harvestRepository.NewMemoryCarryoverRepo(),
		ledger:     tokenRepository.NewMemoryLedger(),
	}
}

func paramsCache(v *viper.Viper, r redis.Service) cache.Service {
	var p provider.Provider = primitive.NewPrimitive(keys.PfxAuctionParams, v.GetInt("cache.localSizeMB"))
	if r != nil {
		p = compound.NewCompound(p, redisProvider.NewRedis(r))
	}
	return cache.New(cache.ServiceConfig{
		Ttl:   v.GetDuration("cache.ttl"),
		Pfx:   keys.PfxAuctionParams,
		Cache: p,
	})
}

func defaults(v *viper.Viper, key string) (auction.Parameters, error) {
	view := &auction.ParamsView{}
	if err := v.UnmarshalKey(key, view); err != nil {
		return auction.Parameters{}, err
	}
	p, err := view.ToParameters()
	if err != nil {
		return auction.Parameters{}, xerrors.Errorf("%s: %w", key, err)
	}
	return *p, nil
}

func tokens(v *viper.Viper, key string) (domain.Tokens, error) {
	res := domain.Tokens{}
	if err := v.UnmarshalKey(key, &res); err != nil {
		return nil, err
	}
	for i := range res {
		res[i].Address = res[i].Address.ToLower()
	}
	return res, nil
}

func token(v *viper.Viper, key string) (domain.Token, error) {
	t := domain.Token{}
	if err := v.UnmarshalKey(key, &t); err != nil {
		return t, err
	}
	if t.Address.IsEmpty() {
		return t, xerrors.Errorf("%s: %w", key, domain.ErrInvalidAddress)
	}
	t.Address = t.Address.ToLower()
	return t, nil
}

func emitter(c ctx.Ctx, v *viper.Viper, events auction.EventRepo, pool *goroutines.Pool, payment domain.Tokens) (auction.EventEmitter, error) {
	sinks := []auction.EventEmitter{auctionUsecase.NewLogEmitter(), auctionUsecase.NewHistoryEmitter(events)}
	if v.GetBool("discord.enabled") {
		session, err := auctionUsecase.NewDiscordSession(v.GetString("discord.botKey"))
		if err != nil {
			c.WithField("err", err).Error("failed to connect to discord")
			return nil, err
		}
		discord := auctionUsecase.NewDiscordEmitter(&auctionUsecase.DiscordEmitterCfg{
			Sender:    session,
			ChannelId: v.GetString("discord.channelId"),
			Tokens:    payment,
		})
		// discord is slow and rate limited, it never holds up a settlement
		sinks = append(sinks, auctionUsecase.NewAsyncEmitter(discord, pool, v.GetDuration("discord.timeout")))
	}
	return auctionUsecase.NewFanoutEmitter(sinks...), nil
}

// New builds every service, storage is picked by the "storage" key
func New(c ctx.Ctx, v *viper.Viper) (*Services, error) {
	var st *storage
	switch mode := v.GetString("storage"); mode {
	case StorageMongo:
		s, err := mongoStorage(c, v)
		if err != nil {
			return nil, err
		}
		st = s
	case StorageMemory, "":
		st = memoryStorage()
	default:
		return nil, xerrors.Errorf("storage %q: %w", mode, domain.ErrBadParamInput)
	}
	params := auctionRepository.NewCachedParamsRepo(st.params, paramsCache(v, st.redis))

	governance, err := token(v, "tokens.governance")
	if err != nil {
		return nil, err
	}
	payment, err := token(v, "tokens.payment")
	if err != nil {
		return nil, err
	}
	assets, err := tokens(v, "tokens.buyAndBurnAssets")
	if err != nil {
		return nil, err
	}
	rewards, err := tokens(v, "tokens.rewards")
	if err != nil {
		return nil, err
	}
	burnDefaults, err := defaults(v, "auction.buyAndBurn")
	if err != nil {
		return nil, err
	}
	harvestDefaults, err := defaults(v, "auction.harvest")
	if err != nil {
		return nil, err
	}

	workers := v.GetInt("notifier.workers")
	if workers <= 0 {
		workers = 4
	}
	pool := goroutines.NewPool(workers, goroutines.WithTaskQueueLength(1024), goroutines.WithPreAllocWorkers(1))

	all := append(append(domain.Tokens{governance, payment}, assets...), rewards...)
	sink, err := emitter(c, v, st.events, pool, all)
	if err != nil {
		pool.Release()
		return nil, err
	}

	treasury := domain.Address(v.GetString("accounts.treasury"))
	burnEngine := auctionUsecase.New(&auctionUsecase.AuctionUseCaseCfg{
		Name:        "buyandburn",
		Repo:        st.auctions,
		Ledger:      st.ledger,
		Holding:     domain.Address(v.GetString("accounts.buyAndBurnHolding")),
		Destination: buyAndBurnUsecase.NewBurnDestination(st.ledger),
		Unsold:      buyAndBurnUsecase.NewTreasuryUnsold(st.ledger, treasury),
		Emitter:     sink,
		Clock:       time.Now,
	})
	harvestEngine := auctionUsecase.New(&auctionUsecase.AuctionUseCaseCfg{
		Name:        "harvest",
		Repo:        st.auctions,
		Ledger:      st.ledger,
		Holding:     domain.Address(v.GetString("accounts.harvestHolding")),
		Destination: harvestUsecase.NewBoardingDestination(st.ledger, st.carryovers),
		Unsold:      harvestUsecase.NewCarryoverUnsold(st.carryovers),
		Emitter:     sink,
		Clock:       time.Now,
	})

	c.WithFields(log.Fields{
		"storage":    v.GetString("storage"),
		"governance": governance.Symbol,
		"payment":    payment.Symbol,
		"assets":     len(assets),
		"rewards":    len(rewards),
	}).Info("engines ready")

	return &Services{
		Ledger: st.ledger,
		Events: st.events,
		Reader: burnEngine,
		BuyAndBurn: buyAndBurnUsecase.New(&buyAndBurnUsecase.BuyAndBurnUseCaseCfg{
			Engine:          burnEngine,
			Inventory:       tokenRepository.NewAccountInventory(st.ledger, treasury),
			Params:          params,
			Defaults:        burnDefaults,
			GovernanceToken: governance,
			Assets:          assets,
		}),
		Harvest: harvestUsecase.New(&harvestUsecase.HarvestUseCaseCfg{
			Engine:       harvestEngine,
			Carryover:    st.carryovers,
			Params:       params,
			Defaults:     harvestDefaults,
			Rewards:      harvestRepository.NewLedgerRewardSource(st.ledger),
			PaymentToken: payment,
			RewardTokens: rewards,
		}),
		Probes: st.probes,
		Redis:  st.redis,
		pool:   pool,
	}, nil
}
