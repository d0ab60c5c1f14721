package cli

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/mqmweb/catalog/internal/core/services"
	"github.com/mqmweb/catalog/internal/logger"
)

// startBackground runs the catalog watcher and the reload schedule for
// long-running commands. The returned function stops both and waits for them.
func startBackground(ctx context.Context, schedule string) (func(), error) {
	var scheduler *services.Scheduler
	if schedule != "" {
		s, err := services.NewScheduler(schedule, catalogService)
		if err != nil {
			return nil, err
		}
		scheduler = s
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	if catalogWatcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := catalogWatcher.Watch(ctx, func() {
				logger.L().Info("catalog file changed", zap.String("action", "invalidate"))
				catalogService.Invalidate()
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("Catalog watcher stopped: %v", err)
			}
		}()
	}

	if scheduler != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("Reload scheduler stopped: %v", err)
			}
		}()
	}

	return func() {
		cancel()
		if catalogWatcher != nil {
			if err := catalogWatcher.Close(); err != nil {
				logger.Debug("Closing catalog watcher: %v", err)
			}
		}
		wg.Wait()
	}, nil
}
