package healthcheck

import (
	"errors"

	"github.com/x-xyz/goauction/base/ctx"
)

var ErrUnhealthy = errors.New("unhealthy")

// Probe checks one backing service
type Probe interface {
	Name() string
	Ping(c ctx.Ctx) error
}

type Usecase interface {
	// Check runs every probe and reports per probe status, ErrUnhealthy when any failed
	Check(c ctx.Ctx) (map[string]string, error)
}
