// Package rotate schedules access-log rotation on a cron expression.
package rotate

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"minihttpd/pkg/config"
	"minihttpd/pkg/logger"
)

// defaultCron rotates daily at 02:00.
const defaultCron = "0 2 * * *"

// Start starts the rotation scheduler if enabled. Returns a cancel func.
func Start(ctx context.Context, cfg *config.Config) (context.CancelFunc, error) {
	if !cfg.Rotation.Enabled {
		logger.Info("rotation_disabled")
		return func() {}, nil
	}

	cronExpr := cfg.Rotation.Cron
	if cronExpr == "" {
		cronExpr = defaultCron
	}
	if !gronx.IsValid(cronExpr) {
		logger.Error("rotation_invalid_cron", "cron", cfg.Rotation.Cron)
		return nil, fmt.Errorf("invalid rotation cron expression: %s", cfg.Rotation.Cron)
	}

	logger.Info("rotation_enabled", "cron", cronExpr)
	ctx2, cancel := context.WithCancel(ctx)
	go runScheduler(ctx2, cronExpr)
	return cancel, nil
}

// runScheduler computes the next tick for the cron expression and sleeps
// until then, supporting full cron syntax via gronx.
func runScheduler(ctx context.Context, cronExpr string) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("rotation_scheduler_stopping")
			return
		default:
		}

		now := time.Now().UTC()
		next, err := gronx.NextTickAfter(cronExpr, now, false)
		if err != nil {
			logger.Error("rotation_nexttick_failed", "cron", cronExpr, "error", err)
			select {
			case <-time.After(30 * time.Second):
			case <-ctx.Done():
				logger.Info("rotation_scheduler_stopping")
				return
			}
			continue
		}

		select {
		case <-time.After(time.Until(next)):
			RunOnce()
		case <-ctx.Done():
			logger.Info("rotation_scheduler_stopping")
			return
		}
	}
}

// RunOnce rotates the access log immediately. Exposed so operators and
// tests can trigger a rotation outside the schedule.
func RunOnce() {
	if err := logger.RotateAccess(); err != nil {
		logger.Error("rotation_run_error", "error", err)
		return
	}
	logger.Info("rotation_completed")
}
