package main

import (
	"context"
	"path/filepath"
	"time"

	"stickerbingo/internal/storage"
)

// storeConfigFromEnv reads the storage backend settings.
func storeConfigFromEnv(retention time.Duration) storage.Config {
	dataDir := getEnv("DATA_DIR", "data")
	return storage.Config{
		Driver:      getEnv("STORE_DRIVER", storage.DriverFile),
		DataDir:     dataDir,
		SQLitePath:  getEnv("SQLITE_PATH", filepath.Join(dataDir, "bingo.db")),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		MaxAge:      retention,
	}
}

// openStore opens the configured backend.
func openStore(ctx context.Context, cfg storage.Config) (storage.KV, error) {
	kv, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logInfo("Using %s store", cfg.Driver)
	return kv, nil
}

// cleanup runs one maintenance pass: idle sessions leave memory, stale
// records leave the store and refilled limiters are dropped.
func (app *App) cleanup(ctx context.Context, now time.Time) {
	if n := app.evictIdleSessions(now); n > 0 {
		logInfo("Evicted %d idle session%s", n, plural(n))
	}
	if n := app.pruneLimiters(now); n > 0 {
		logInfo("Pruned %d rate limiter%s", n, plural(n))
	}
	removed, err := app.Store.Cleanup(ctx, app.StoreRetention)
	if err != nil {
		logWarn("Store cleanup failed: %v", err)
		return
	}
	if removed > 0 {
		logInfo("Store cleanup removed %d stale record%s", removed, plural(removed))
	}
}

// runCleanupLoop calls cleanup every interval until ctx is done.
func (app *App) runCleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			app.cleanup(ctx, now)
		}
	}
}
