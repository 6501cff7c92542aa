package service

import (
	"testing"
	"time"

	"github.com/impimediavillage/tree-sub001/internal/features/recon/domain"
	shipping "github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSummarizeByStatus verifies per-status totals and counts.
func TestSummarizeByStatus(t *testing.T) {
	items := []domain.ReconciliationItem{
		{ShippingCost: 100, ReconciliationStatus: shipping.ReconPending},
		{ShippingCost: 50, ReconciliationStatus: shipping.ReconPending},
		{ShippingCost: 80, ReconciliationStatus: shipping.ReconProcessing},
		{ShippingCost: 200, ReconciliationStatus: shipping.ReconPaid},
		{ShippingCost: 30, ReconciliationStatus: shipping.ReconDisputed},
	}

	b := SummarizeByStatus(items)

	assert.Equal(t, 150.0, b.Pending.Total)
	assert.Equal(t, 2, b.Pending.Count)
	assert.Equal(t, 80.0, b.Processing.Total)
	assert.Equal(t, 1, b.Processing.Count)
	assert.Equal(t, 200.0, b.Paid.Total)
	assert.Equal(t, 1, b.Paid.Count)
	assert.Equal(t, 30.0, b.Disputed.Total)
	assert.Equal(t, 1, b.Disputed.Count)
}

// TestWeeklyTotals verifies Sunday-anchored bucketing over the trailing
// eight weeks, zero buckets included.
func TestWeeklyTotals(t *testing.T) {
	// 2024-01-10 is a Wednesday; its week starts Sunday 2024-01-07.
	now := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)
	items := []domain.ReconciliationItem{
		// Monday 2024-01-01 belongs to the week of Sunday 2023-12-31.
		{ShippingCost: 100, CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		// Monday 2024-01-08 belongs to the current week.
		{ShippingCost: 50, CreatedAt: time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC)},
	}

	buckets := WeeklyTotals(items, now)

	require.Len(t, buckets, 8)
	// Oldest first; the last bucket is the current week.
	last := buckets[7]
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), last.Start)
	assert.Equal(t, 50.0, last.Total)
	assert.Equal(t, 1, last.Count)

	prev := buckets[6]
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), prev.Start)
	assert.Equal(t, 100.0, prev.Total)

	for _, b := range buckets[:6] {
		assert.Zero(t, b.Total)
		assert.Zero(t, b.Count)
	}
}

// TestWeeklyTotals_SundayAnchor verifies a Sunday "now" starts its own week.
func TestWeeklyTotals_SundayAnchor(t *testing.T) {
	sunday := time.Date(2024, 1, 7, 8, 0, 0, 0, time.UTC)
	buckets := WeeklyTotals(nil, sunday)

	require.Len(t, buckets, 8)
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), buckets[7].Start)
}

// TestMonthlyTotals verifies trailing six calendar months, oldest first.
func TestMonthlyTotals(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	items := []domain.ReconciliationItem{
		{ShippingCost: 100, CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ShippingCost: 60, CreatedAt: time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)},
		// Outside the window.
		{ShippingCost: 999, CreatedAt: time.Date(2023, 9, 30, 0, 0, 0, 0, time.UTC)},
	}

	buckets := MonthlyTotals(items, now)

	require.Len(t, buckets, 6)
	assert.Equal(t, "Oct 2023", buckets[0].Label)
	assert.Equal(t, "Mar 2024", buckets[5].Label)
	assert.Equal(t, 100.0, buckets[5].Total)
	assert.Equal(t, 60.0, buckets[3].Total)
	assert.Zero(t, buckets[0].Total)
}

// TestDispensaryTotals verifies grouping and the total-descending sort.
func TestDispensaryTotals(t *testing.T) {
	items := []domain.ReconciliationItem{
		{DispensaryID: "disp-1", DispensaryName: "Green Leaf", ShippingCost: 40},
		{DispensaryID: "disp-2", DispensaryName: "Herbal House", ShippingCost: 100},
		{DispensaryID: "disp-1", DispensaryName: "Green Leaf", ShippingCost: 30},
	}

	buckets := DispensaryTotals(items)

	require.Len(t, buckets, 2)
	assert.Equal(t, "Herbal House", buckets[0].DispensaryName)
	assert.Equal(t, 100.0, buckets[0].Total)
	assert.Equal(t, 70.0, buckets[1].Total)
	assert.Equal(t, 2, buckets[1].Count)
}

// TestProviderTotals verifies per-provider averages.
func TestProviderTotals(t *testing.T) {
	items := []domain.ReconciliationItem{
		{Provider: shipping.ProviderPUDO, ShippingCost: 60},
		{Provider: shipping.ProviderPUDO, ShippingCost: 80},
		{Provider: shipping.ProviderCourier, ShippingCost: 120},
	}

	buckets := ProviderTotals(items)

	require.Len(t, buckets, 2)
	assert.Equal(t, shipping.ProviderPUDO, buckets[0].Provider)
	assert.Equal(t, 140.0, buckets[0].Total)
	assert.Equal(t, 70.0, buckets[0].Average)
	assert.Equal(t, 120.0, buckets[1].Average)
}
