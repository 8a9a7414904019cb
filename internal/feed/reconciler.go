package feed

import (
	"context"
	"log"
	"time"
)

// StartReconciler runs the counter reconciliation on a fixed interval until
// ctx is cancelled. It holds no request-path lock; each pass is a pair of
// set-based updates from ledger cardinality. A zero or negative interval
// disables the job.
func StartReconciler(ctx context.Context, svc FeedUsecase, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := svc.ReconcileCounts(ctx); err != nil {
					log.Printf("counter reconciliation failed: %v", err)
				}
			}
		}
	}()
}
