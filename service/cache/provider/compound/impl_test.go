package compound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/service/cache/provider"
	"github.com/x-xyz/goauction/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	local  provider.Provider
	shared provider.Provider
	im     *impl
}

func (ts *testsuite) SetupTest() {
	ts.local = primitive.NewPrimitive("local", 1)
	ts.shared = primitive.NewPrimitive("shared", 1)
	ts.im = NewCompound(ts.local, ts.shared).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSetWritesAllLayers() {
	ts.NoError(ts.im.Set(mockCtx, "k", []byte("v"), time.Minute))

	for _, lyr := range []provider.Provider{ts.local, ts.shared} {
		v, _, err := lyr.Get(mockCtx, "k")
		ts.NoError(err)
		ts.Equal("v", string(v))
	}
}

func (ts *testsuite) TestGetFillsFasterLayers() {
	ts.NoError(ts.shared.Set(mockCtx, "k", []byte("v"), time.Minute))
	_, _, err := ts.local.Get(mockCtx, "k")
	ts.Equal(provider.ErrNotFound, err)

	v, _, err := ts.im.Get(mockCtx, "k")
	ts.NoError(err)
	ts.Equal("v", string(v))

	v, _, err = ts.local.Get(mockCtx, "k")
	ts.NoError(err)
	ts.Equal("v", string(v))
}

func (ts *testsuite) TestMiss() {
	_, _, err := ts.im.Get(mockCtx, "missing")
	ts.Equal(provider.ErrNotFound, err)
}

func (ts *testsuite) TestDel() {
	ts.NoError(ts.im.Set(mockCtx, "k", []byte("v"), time.Minute))
	ts.NoError(ts.im.Del(mockCtx, "k"))

	_, _, err := ts.im.Get(mockCtx, "k")
	ts.Equal(provider.ErrNotFound, err)
}
