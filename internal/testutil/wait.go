package testutil

import (
	"context"
	"time"
)

// WaitFor polls cond every poll until it returns true, timeout elapses or ctx
// is done. It reports whether cond succeeded.
func WaitFor(ctx context.Context, cond func() bool, timeout, poll time.Duration) bool {
	if cond() {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			if cond() {
				return true
			}
		}
	}
}
