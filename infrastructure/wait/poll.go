// Package wait implements the bounded wait-for-presence loop used by drivers
// that have no native waiting primitive.
package wait

import (
	"context"
	"errors"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

// DefaultInterval is the polling interval used when none is configured
const DefaultInterval = 100 * time.Millisecond

// Lookup looks an element up once
type Lookup func(ctx context.Context) (interfaces.Element, error)

// Poll - calls lookup until it returns an element, an error other than
// entities.ErrElementNotFound, or the timeout elapses. A non-positive timeout
// looks up exactly once.
func Poll(ctx context.Context, timeout, interval time.Duration, lookup Lookup) (interfaces.Element, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	el, err := lookup(ctx)
	if err == nil || !errors.Is(err, entities.ErrElementNotFound) || timeout <= 0 {
		return el, err
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, err
		case <-ticker.C:
		}

		el, err = lookup(ctx)
		if err == nil || !errors.Is(err, entities.ErrElementNotFound) {
			return el, err
		}
	}
}
