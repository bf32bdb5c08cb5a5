package usecase

import (
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/healthcheck"
)

type impl struct {
	probes []healthcheck.Probe
}

func New(probes ...healthcheck.Probe) healthcheck.Usecase {
	return &impl{probes: probes}
}

func (im *impl) Check(c ctx.Ctx) (map[string]string, error) {
	res := make(map[string]string, len(im.probes))
	var failed error
	for _, p := range im.probes {
		if err := p.Ping(c); err != nil {
			res[p.Name()] = err.Error()
			failed = healthcheck.ErrUnhealthy
			continue
		}
		res[p.Name()] = "ok"
	}
	return res, failed
}
