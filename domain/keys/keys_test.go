package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedisKey(t *testing.T) {
	req := require.New(t)
	req.Equal("auctionParams:0xark:0xasset", RedisKey(PfxAuctionParams, "0xark", "0xasset"))
	req.Equal("a|b", CustomKey("|", "a", "b"))
}

func TestGetPrefix(t *testing.T) {
	req := require.New(t)
	req.Equal(PfxAuctionParams, GetPrefix(RedisKey(PfxAuctionParams, "x", "y")))
	req.Equal("", GetPrefix("plain"))
}
