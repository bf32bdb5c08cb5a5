package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/database/mongoclient"
	"github.com/x-xyz/goauction/domain/healthcheck"
	"github.com/x-xyz/goauction/domain/keys"
	"github.com/x-xyz/goauction/service/redis"
)

const pingTimeout = 2 * time.Second

type mongoProbe struct {
	client *mongoclient.Client
}

func NewMongoProbe(client *mongoclient.Client) healthcheck.Probe {
	return &mongoProbe{client}
}

func (im *mongoProbe) Name() string {
	return "mongo"
}

func (im *mongoProbe) Ping(c ctx.Ctx) error {
	tc, cancel := ctx.WithTimeout(c, pingTimeout)
	defer cancel()
	if err := im.client.Ping(tc, readpref.Primary()); err != nil {
		c.WithField("err", err).Error("ping mongo error")
		return err
	}
	return nil
}

type redisProbe struct {
	redis redis.Service
}

// NewRedisProbe writes a short lived key, reads only would pass on a read only replica
func NewRedisProbe(r redis.Service) healthcheck.Probe {
	return &redisProbe{r}
}

func (im *redisProbe) Name() string {
	return "redis"
}

func (im *redisProbe) Ping(c ctx.Ctx) error {
	tc, cancel := ctx.WithTimeout(c, pingTimeout)
	defer cancel()
	if err := im.redis.Set(tc, keys.RedisKey(keys.PfxHealthCheck, "probe"), []byte("1"), 30*time.Second); err != nil {
		c.WithField("err", err).Error("test redis set failed")
		return err
	}
	return nil
}
