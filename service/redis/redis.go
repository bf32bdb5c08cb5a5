package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/goauction/base/ctx"
)

// Forever means the key never expires
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = redis.ErrNil
	// ErrNoTTL is returned by TTL when the key exists without an expire
	ErrNoTTL = errors.New("key has no ttl")
	// ErrNotSet is returned by SetNX when the key already exists
	ErrNotSet = errors.New("key already exists")
	// ErrGapTime is returned when no pool serves the command
	ErrGapTime = errors.New("no redis pool available")
)

// Service wraps the redis commands used by the cache layer and keeper locks
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX fails with ErrNotSet if key exists
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, keys ...string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	Incrby(context ctx.Ctx, key string, val int) (int64, error)
	// TTL is in seconds
	TTL(context ctx.Ctx, key string) (int, error)
}
