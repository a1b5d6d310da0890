// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RedemptionSweeper is the slice of the redemptions store the expiry job needs.
type RedemptionSweeper interface {
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

// RedemptionExpiryJob flips active redemptions whose voucher expiry has
// passed to expired. Reads also repair status lazily; the sweep keeps the
// collection honest for users who never come back.
func RedemptionExpiryJob(sweeper RedemptionSweeper, logger *zap.Logger) Job {
	return Job{
		Name: "redemption-expiry-sweep",
		Spec: "0 * * * *", // hourly
		Run: func(ctx context.Context) error {
			n, err := sweeper.ExpireDue(ctx, time.Now())
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("expired stale redemptions", zap.Int64("count", n))
			}
			return nil
		},
	}
}
