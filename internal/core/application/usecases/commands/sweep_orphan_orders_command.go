package commands

import (
	"errors"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

const (
	DefaultOrphanGracePeriod = 10 * time.Minute
	DefaultOrphanSweepLimit  = 100
)

var ErrSweepOrphanOrdersCommandIsNotConstructed = errors.New(
	"SweepOrphanOrdersCommand must be created via NewSweepOrphanOrdersCommand constructor",
)

// SweepOrphanOrdersCommand removes orders whose creation was interrupted
// before all items were written. Only orders older than the grace period are
// considered so that creations still in flight are left alone.
type SweepOrphanOrdersCommand struct {
	gracePeriod time.Duration
	limit       int

	guard guard.ConstructorGuard
}

func NewSweepOrphanOrdersCommand(gracePeriod time.Duration, limit int) (SweepOrphanOrdersCommand, error) {
	if gracePeriod <= 0 {
		return SweepOrphanOrdersCommand{}, errs.NewValueIsInvalidError("gracePeriod")
	}
	if limit <= 0 {
		return SweepOrphanOrdersCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}
	return SweepOrphanOrdersCommand{gracePeriod: gracePeriod, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (c SweepOrphanOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSweepOrphanOrdersCommandIsNotConstructed)
}

func (c SweepOrphanOrdersCommand) GracePeriod() time.Duration { return c.gracePeriod }
func (c SweepOrphanOrdersCommand) Limit() int { return c.limit }
