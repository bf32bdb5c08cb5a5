package primitive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/service/cache/provider"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im *impl
}

func (ts *testsuite) SetupTest() {
	ts.im = NewPrimitive("test", 1).(*impl)
}

func (ts *testsuite) TearDownTest() {
	ts.im.cache.Clear()
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSetGet() {
	ts.NoError(ts.im.Set(mockCtx, "params:0xasset", []byte("v1"), time.Minute))

	v, ttl, err := ts.im.Get(mockCtx, "params:0xasset")
	ts.NoError(err)
	ts.Equal("v1", string(v))
	ts.True(ttl > 0 && ttl <= time.Minute)
}

func (ts *testsuite) TestGetForever() {
	ts.NoError(ts.im.Set(mockCtx, "k", []byte("v"), 0))

	_, ttl, err := ts.im.Get(mockCtx, "k")
	ts.NoError(err)
	ts.Equal(time.Duration(0), ttl)
}

func (ts *testsuite) TestNotFound() {
	_, _, err := ts.im.Get(mockCtx, "missing")
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestDel() {
	ts.NoError(ts.im.Set(mockCtx, "k", []byte("v"), time.Minute))
	ts.NoError(ts.im.Del(mockCtx, "k"))

	_, _, err := ts.im.Get(mockCtx, "k")
	ts.Equal(provider.ErrNotFound, err)

	// deleting a missing key is not an error
	ts.NoError(ts.im.Del(mockCtx, "k"))
}
