package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mqmweb/catalog/internal/core/domain"
	"github.com/mqmweb/catalog/internal/core/ports/driven"
	"github.com/mqmweb/catalog/internal/logger"
)

const loadKey = "catalog"

// snapshot is one loaded catalog. It is never mutated after construction.
type snapshot struct {
	products []domain.Product
	bySlug   map[string]int
	report   domain.LoadReport
}

func newSnapshot(products []domain.Product, report domain.LoadReport) *snapshot {
	bySlug := make(map[string]int, len(products))
	for i, p := range products {
		if _, ok := bySlug[p.Slug]; !ok {
			bySlug[p.Slug] = i
		}
	}
	return &snapshot{products: products, bySlug: bySlug, report: report}
}

// CatalogStore loads the catalog once and serves it until invalidated.
//
// A failed load is memoised as an empty catalog; the failure is kept
// in the report and logged, never returned to readers.
type CatalogStore struct {
	source    driven.ProductSource
	validator driven.ProductValidator
	now       func() time.Time

	group singleflight.Group

	mu         sync.RWMutex
	snap       *snapshot
	generation uint64
	last       domain.LoadReport
}

// NewCatalogStore creates a store. Nothing is read until first use.
func NewCatalogStore(source driven.ProductSource, validator driven.ProductValidator) *CatalogStore {
	return &CatalogStore{
		source:    source,
		validator: validator,
		now:       time.Now,
	}
}

// Products returns a copy of every loaded product in catalog order.
func (s *CatalogStore) Products(ctx context.Context) []domain.Product {
	return domain.CloneProducts(s.current(ctx).products)
}

// Load discards the current snapshot, loads a new one and returns its report.
// Unlike Products, Load returns the load error.
func (s *CatalogStore) Load(ctx context.Context) (domain.LoadReport, error) {
	s.Invalidate()
	snap := s.current(ctx)
	return cloneReport(snap.report), snap.report.Err
}

// Invalidate drops the snapshot; the next read reloads the catalog.
func (s *CatalogStore) Invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.generation++
	s.mu.Unlock()
	s.group.Forget(loadKey)
	logger.Debug("Catalog invalidated")
}

// Report returns the report of the last completed load.
func (s *CatalogStore) Report() domain.LoadReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneReport(s.last)
}

// current returns the live snapshot, loading it if needed.
// Concurrent first callers share one load.
func (s *CatalogStore) current(ctx context.Context) *snapshot {
	s.mu.RLock()
	snap, gen := s.snap, s.generation
	s.mu.RUnlock()
	if snap != nil {
		return snap
	}

	v, _, _ := s.group.Do(loadKey, func() (any, error) {
		// A cancelled caller must not poison the shared result.
		loaded := s.load(context.WithoutCancel(ctx))

		s.mu.Lock()
		defer s.mu.Unlock()
		s.last = loaded.report
		if s.generation == gen {
			s.snap = loaded
		}
		return loaded, nil
	})
	return v.(*snapshot)
}

func (s *CatalogStore) load(ctx context.Context) *snapshot {
	logger.Section("Catalog Load")
	report := domain.LoadReport{
		LoadID:   uuid.NewString(),
		Origin:   s.source.Origin(),
		LoadedAt: s.now().UTC(),
		Warnings: []domain.ValidationWarning{},
	}
	log := logger.L().With(zap.String("load_id", report.LoadID), zap.String("origin", report.Origin))

	products, err := s.read(ctx, &report)
	if err != nil {
		report.Err = err
		log.Error("catalog load failed; serving an empty catalog", zap.Error(err))
		return newSnapshot([]domain.Product{}, report)
	}

	report.ProductCount = len(products)
	for _, w := range report.Warnings {
		log.Warn("catalog record warning",
			zap.Int("index", w.Index),
			zap.String("product_id", w.ProductID),
			zap.String("field", w.Field),
			zap.String("message", w.Message))
	}
	log.Info("catalog loaded",
		zap.Int("products", report.ProductCount),
		zap.Int("warnings", len(report.Warnings)),
		zap.String("checksum", report.Checksum))
	logger.Debug("Loaded %d products from %s", report.ProductCount, report.Origin)

	return newSnapshot(products, report)
}

func (s *CatalogStore) read(ctx context.Context, report *domain.LoadReport) ([]domain.Product, error) {
	raw, err := s.source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	report.Checksum = raw.Checksum

	products, warnings, err := s.validator.Validate(raw.Data)
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	report.Warnings = append(report.Warnings, warnings...)
	return products, nil
}

func cloneReport(r domain.LoadReport) domain.LoadReport {
	r.Warnings = slices.Clone(r.Warnings)
	if r.Warnings == nil {
		r.Warnings = []domain.ValidationWarning{}
	}
	return r
}
