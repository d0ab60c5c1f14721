package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/ports/driving"
	"github.com/mqmweb/catalog/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

var scheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler reloads the catalog on a cron schedule.
type Scheduler struct {
	catalog  driving.CatalogService
	schedule cron.Schedule
	cron     *cron.Cron
	now      func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	task    domain.ScheduledTask
}

// NewScheduler parses expr (standard five-field cron or a descriptor such
// as "@every 15m") and returns a scheduler that reloads catalog on it.
func NewScheduler(expr string, catalog driving.CatalogService) (*Scheduler, error) {
	schedule, err := scheduleParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: reload schedule %q: %w", domain.ErrInvalidInput, expr, err)
	}
	return &Scheduler{
		catalog:  catalog,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(scheduleParser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		now:      time.Now,
		task: domain.ScheduledTask{
			ID:       domain.TaskIDCatalogReload,
			Name:     "Catalog Reload",
			Schedule: expr,
		},
	}, nil
}

// Start begins the scheduler loop. This method blocks until Stop is called
// or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.task.NextRun = s.schedule.Next(s.now())
	s.mu.Unlock()

	id := s.cron.Schedule(s.schedule, cron.FuncJob(func() {
		s.RunNow(ctx)
	}))
	s.cron.Start()
	logger.Info("Scheduled catalog reload: %s", s.task.Schedule)

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-stopCh:
	}

	// Wait for a running reload to finish.
	<-s.cron.Stop().Done()
	s.cron.Remove(id)

	s.mu.Lock()
	if s.running {
		s.running = false
		close(s.stopCh)
	}
	s.mu.Unlock()
	return err
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	close(s.stopCh)
	return nil
}

// RunNow reloads the catalog immediately and records the outcome.
func (s *Scheduler) RunNow(ctx context.Context) domain.TaskResult {
	result := domain.TaskResult{
		TaskID:    domain.TaskIDCatalogReload,
		StartedAt: s.now(),
	}

	report, err := s.catalog.Reload(ctx)
	result.EndedAt = s.now()
	result.ItemsProcessed = report.ProductCount

	s.mu.Lock()
	s.task.LastRun = result.StartedAt
	s.task.NextRun = s.schedule.Next(result.EndedAt)
	if err != nil {
		result.Error = err.Error()
		s.task.LastError = result.Error
	} else {
		result.Success = true
		s.task.LastError = ""
		s.task.LastSuccess = result.EndedAt
	}
	s.mu.Unlock()

	if err != nil {
		logger.L().Warn("scheduled reload failed", zap.String("load_id", report.LoadID), zap.Error(err))
	} else {
		logger.L().Info("scheduled reload",
			zap.String("load_id", report.LoadID),
			zap.Int("products", report.ProductCount),
			zap.Duration("took", result.Duration()),
		)
	}
	return result
}

// Task returns the reload task's current state.
func (s *Scheduler) Task() domain.ScheduledTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.task
}
