// Package latency simulates I/O delay for the in-memory mock store.
package latency

import (
	"context"
	"time"
)

// Wait blocks for d or until ctx is done, whichever comes first. A
// non-positive d returns immediately without consulting ctx.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
