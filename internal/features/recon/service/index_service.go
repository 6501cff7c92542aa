package service

import (
	"context"
	"fmt"
	"time"

	"github.com/impimediavillage/tree-sub001/internal/features/recon/domain"
	"github.com/impimediavillage/tree-sub001/internal/features/recon/ports"
)

// IndexService builds and queries the reconciliation index from the
// persisted orders. Reads are pure projections; nothing here mutates state.
type IndexService struct {
	repo      ports.Repository
	directory ports.DispensaryDirectory
	// now is injectable for tests.
	now func() time.Time
}

// NewIndexService creates a new IndexService.
func NewIndexService(repo ports.Repository, directory ports.DispensaryDirectory) *IndexService {
	return &IndexService{
		repo:      repo,
		directory: directory,
		now:       time.Now,
	}
}

// QueryResult is a filtered view of the index with its status summary.
type QueryResult struct {
	Items   []domain.ReconciliationItem `json:"items"`
	Summary domain.StatusBreakdown      `json:"summary"`
}

// Aggregates holds the breakdowns the finance dashboard renders.
type Aggregates struct {
	Summary      domain.StatusBreakdown    `json:"summary"`
	Monthly      []domain.PeriodBucket     `json:"monthly"`
	Weekly       []domain.PeriodBucket     `json:"weekly"`
	Dispensaries []domain.DispensaryBucket `json:"dispensaries"`
	Providers    []domain.ProviderBucket   `json:"providers"`
}

// Index builds the full reconciliation index from both order collections.
func (s *IndexService) Index(ctx context.Context) ([]domain.ReconciliationItem, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	poolOrders, err := s.repo.ListPoolOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pool orders: %w", err)
	}
	names, err := s.directory.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dispensary names: %w", err)
	}

	return BuildIndex(orders, poolOrders, names), nil
}

// Query builds the index, applies the filter and summarizes the result.
func (s *IndexService) Query(ctx context.Context, filter Filter) (*QueryResult, error) {
	index, err := s.Index(ctx)
	if err != nil {
		return nil, err
	}

	filtered := filter.Apply(index, s.now())
	return &QueryResult{
		Items:   filtered,
		Summary: SummarizeByStatus(filtered),
	}, nil
}

// Aggregate builds the index, applies the filter and computes every
// dashboard breakdown over the filtered items.
func (s *IndexService) Aggregate(ctx context.Context, filter Filter) (*Aggregates, error) {
	index, err := s.Index(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	filtered := filter.Apply(index, now)
	return &Aggregates{
		Summary:      SummarizeByStatus(filtered),
		Monthly:      MonthlyTotals(filtered, now),
		Weekly:       WeeklyTotals(filtered, now),
		Dispensaries: DispensaryTotals(filtered),
		Providers:    ProviderTotals(filtered),
	}, nil
}
