package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartHealthMonitor pings the database with the given interval and logs
// availability changes. Vault operations report storage failures upward
// without retrying; this monitor gives operators the corresponding signal.
func StartHealthMonitor(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		healthy := true
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				err := db.PingContext(ctx)
				switch {
				case err != nil && healthy:
					healthy = false
					log.Error("storage unavailable", zap.Error(err))
				case err == nil && !healthy:
					healthy = true
					log.Info("storage available again")
				}
			}
		}
	}()
}
